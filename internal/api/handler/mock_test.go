package handler

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/certverify/verification/internal/core"
	"github.com/certverify/verification/internal/model"
	"github.com/certverify/verification/internal/registry"
)

// fakeCertLookup implements core.CertificateLookup over an in-memory map.
type fakeCertLookup struct {
	certs map[string]*model.Certificate
	err   error
}

func (f *fakeCertLookup) ByID(_ context.Context, id string) (*model.Certificate, error) {
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.certs[id]; ok {
		return c, nil
	}
	return nil, registry.ErrNotFound
}

func (f *fakeCertLookup) ByCode(_ context.Context, code string) (*model.Certificate, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.certs {
		if c.VerificationCode == code {
			return c, nil
		}
	}
	return nil, registry.ErrNotFound
}

// fakeAuthLookup implements core.AuthorityLookup over an in-memory map.
type fakeAuthLookup struct {
	auths map[string]*model.Authority
}

func (f *fakeAuthLookup) ByID(_ context.Context, id string) (*model.Authority, error) {
	if a, ok := f.auths[id]; ok {
		return a, nil
	}
	return nil, registry.ErrNotFound
}

// newVerificationHandler wires a handler to an in-memory world with one
// registered authority and a signature check stub.
func newVerificationHandler(certs map[string]*model.Certificate, sigOK bool) *Verification {
	auths := &fakeAuthLookup{auths: map[string]*model.Authority{
		"uni-1": {ID: "uni-1", Name: "Test University", Registered: true},
	}}
	svc := core.NewVerificationService(
		&fakeCertLookup{certs: certs},
		auths,
		func(string, string, string) bool { return sigOK },
		nil,
		zerolog.Nop(),
	)
	return NewVerification(svc, nil)
}

// brokenLookupService simulates an unreachable certificate service.
func brokenLookupService() *core.VerificationService {
	return core.NewVerificationService(
		&fakeCertLookup{err: errors.New("connection refused")},
		&fakeAuthLookup{},
		func(string, string, string) bool { return true },
		nil,
		zerolog.Nop(),
	)
}
