package core

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/certverify/verification/internal/model"
)

// MaxBulkSize is the largest batch a single bulk request may carry. The HTTP
// boundary rejects larger batches; the coordinator also caps defensively.
const MaxBulkSize = 100

const reasonMissingKey = "Either certificateId or verificationCode must be provided"

// SetBulkConcurrency overrides the bulk worker bound. Zero keeps the default
// (a small multiple of available CPUs, independent of batch size).
func (s *VerificationService) SetBulkConcurrency(n int) {
	s.bulkJobs = n
}

func (s *VerificationService) bulkLimit() int {
	if s.bulkJobs > 0 {
		return s.bulkJobs
	}
	n := 4 * runtime.GOMAXPROCS(0)
	if n > 16 {
		n = 16
	}
	return n
}

// VerifyBulk fans a batch out to the orchestrator with bounded concurrency.
// Items are verified independently: one item's failure never aborts the rest.
// Results keep input order regardless of completion order, and echo both
// identifying fields the caller supplied. When an item carries both fields
// the certificate ID wins.
func (s *VerificationService) VerifyBulk(ctx context.Context, reqs []model.BulkRequest) model.BulkOutcome {
	if len(reqs) > MaxBulkSize {
		reqs = reqs[:MaxBulkSize]
	}

	results := make([]model.BulkItem, len(reqs))

	var g errgroup.Group
	g.SetLimit(s.bulkLimit())

	for i, req := range reqs {
		i, req := i, req
		item := model.BulkItem{
			CertificateID:    req.CertificateID,
			VerificationCode: req.VerificationCode,
		}

		// Cancellation stops dispatching new items; in-flight lookups
		// finish or time out on their own.
		if ctx.Err() != nil {
			item.Reason = reasonInternal
			results[i] = item
			continue
		}

		g.Go(func() error {
			var out model.Outcome
			switch {
			case req.CertificateID != "":
				out = s.VerifyByID(ctx, req.CertificateID)
			case req.VerificationCode != "":
				out = s.VerifyByCode(ctx, req.VerificationCode)
			default:
				out = invalid(model.MethodBulk, reasonMissingKey, nil, nil)
			}
			item.Valid = out.Valid
			item.Reason = out.Reason
			results[i] = item
			return nil
		})
	}

	g.Wait()

	outcome := model.BulkOutcome{
		TotalRequested: len(reqs),
		Results:        results,
	}
	for _, r := range results {
		if r.Valid {
			outcome.ValidCertificates++
		} else {
			outcome.InvalidCertificates++
		}
	}
	return outcome
}
