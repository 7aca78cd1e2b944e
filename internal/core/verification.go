package core

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/certverify/verification/internal/model"
	"github.com/certverify/verification/internal/registry"
)

// CertificateLookup is the read-only certificate service contract.
// Implementations return an error matching registry.ErrNotFound when the
// record does not exist; any other error is treated as a transport failure.
type CertificateLookup interface {
	ByID(ctx context.Context, id string) (*model.Certificate, error)
	ByCode(ctx context.Context, code string) (*model.Certificate, error)
}

// AuthorityLookup is the read-only university registry contract.
type AuthorityLookup interface {
	ByID(ctx context.Context, id string) (*model.Authority, error)
}

// SignatureVerifyFunc validates a signature over a certificate content hash
// against a PEM public key. Injected so the cryptographic primitive is wired
// explicitly at startup instead of reached through a package global.
type SignatureVerifyFunc func(contentHash, signatureB64, publicKeyPEM string) bool

// Outcome reasons. These strings are part of the API contract.
const (
	reasonNotFound       = "Certificate not found"
	reasonNotFoundByCode = "Certificate not found with provided verification code"
	reasonSuspended      = "Certificate is currently suspended"
	reasonNotActive      = "Certificate is not in active status"
	reasonAuthorityGone  = "Issuing authority not found"
	reasonUnregistered   = "Issuing authority is not registered"
	reasonBadSignature   = "Digital signature verification failed"
	reasonInternal       = "Verification failed due to internal error"
)

// VerificationService decides whether a certificate is authentic, composing
// the two collaborator lookups with the signature check. It is the last line
// of defense: its entry points always return an outcome, never an error or a
// panic.
type VerificationService struct {
	certs    CertificateLookup
	auths    AuthorityLookup
	verify   SignatureVerifyFunc
	recorder *VerificationLogService
	logger   zerolog.Logger
	bulkJobs int
}

func NewVerificationService(certs CertificateLookup, auths AuthorityLookup, verify SignatureVerifyFunc, recorder *VerificationLogService, logger zerolog.Logger) *VerificationService {
	return &VerificationService{
		certs:    certs,
		auths:    auths,
		verify:   verify,
		recorder: recorder,
		logger:   logger,
	}
}

// VerifyByID verifies a certificate by its stable identifier.
func (s *VerificationService) VerifyByID(ctx context.Context, id string) (out model.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Str("certificate_id", id).Msg("verification panicked")
			out = s.internalError(model.MethodID)
		}
		s.record(ctx, id, model.MethodID, out, start)
	}()

	cert, err := s.certs.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return invalid(model.MethodID, reasonNotFound, nil, nil)
		}
		s.logger.Error().Err(err).Str("certificate_id", id).Msg("certificate lookup failed")
		return s.internalError(model.MethodID)
	}

	return s.resolve(ctx, cert, model.MethodID)
}

// VerifyByCode verifies a certificate by its short human-entered code.
func (s *VerificationService) VerifyByCode(ctx context.Context, code string) (out model.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Str("verification_code", code).Msg("verification panicked")
			out = s.internalError(model.MethodCode)
		}
		s.record(ctx, code, model.MethodCode, out, start)
	}()

	cert, err := s.certs.ByCode(ctx, code)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return invalid(model.MethodCode, reasonNotFoundByCode, nil, nil)
		}
		s.logger.Error().Err(err).Str("verification_code", code).Msg("certificate lookup failed")
		return s.internalError(model.MethodCode)
	}

	return s.resolve(ctx, cert, model.MethodCode)
}

// resolve runs the status, authority and signature checks for a certificate
// that has already been fetched. Status short-circuits before any signature
// work is done.
func (s *VerificationService) resolve(ctx context.Context, cert *model.Certificate, method string) model.Outcome {
	switch cert.Status {
	case model.CertStatusActive:
	case model.CertStatusRevoked:
		reason := cert.RevocationReason
		if reason == "" {
			reason = "Not specified"
		}
		return invalid(method, "Certificate has been revoked. Reason: "+reason, cert, nil)
	case model.CertStatusSuspended:
		return invalid(method, reasonSuspended, cert, nil)
	default:
		return invalid(method, reasonNotActive, cert, nil)
	}

	auth, err := s.auths.ByID(ctx, cert.AuthorityID)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return invalid(method, reasonAuthorityGone, cert, nil)
		}
		s.logger.Error().Err(err).Str("authority_id", cert.AuthorityID).Msg("authority lookup failed")
		return s.internalError(method)
	}

	if !auth.Registered {
		return invalid(method, reasonUnregistered, cert, auth)
	}

	if !s.verify(cert.ContentHash, cert.Signature, auth.PublicKeyPEM) {
		return invalid(method, reasonBadSignature, cert, auth)
	}

	return model.Outcome{
		Valid:       true,
		Certificate: cert,
		Authority:   auth,
		Method:      method,
		Timestamp:   time.Now().UTC(),
	}
}

func (s *VerificationService) internalError(method string) model.Outcome {
	return model.Outcome{
		Valid:     false,
		Method:    method,
		Timestamp: time.Now().UTC(),
		Reason:    reasonInternal,
	}
}

func invalid(method, reason string, cert *model.Certificate, auth *model.Authority) model.Outcome {
	return model.Outcome{
		Valid:       false,
		Certificate: cert,
		Authority:   auth,
		Method:      method,
		Timestamp:   time.Now().UTC(),
		Reason:      reason,
	}
}

// record writes the verification log entry and updates the result counter.
// Log failures never influence the outcome.
func (s *VerificationService) record(ctx context.Context, key, method string, out model.Outcome, start time.Time) {
	result := model.LogResultInvalid
	switch {
	case out.Valid:
		result = model.LogResultValid
	case out.Reason == reasonInternal:
		result = model.LogResultError
	}
	verificationResults.WithLabelValues(method, result).Inc()

	if out.Certificate != nil {
		key = out.Certificate.ID
	}
	s.recorder.Record(ctx, model.VerificationLog{
		CertificateKey: key,
		Method:         method,
		VerifierIP:     VerifierIPFromContext(ctx),
		Result:         result,
		ErrorMessage:   out.Reason,
		ResponseTimeMS: time.Since(start).Milliseconds(),
	})
}
