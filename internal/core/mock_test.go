package core

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/certverify/verification/internal/model"
)

// mockCertLookup implements CertificateLookup for tests.
type mockCertLookup struct {
	mock.Mock
}

func (m *mockCertLookup) ByID(ctx context.Context, id string) (*model.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Certificate), args.Error(1)
}

func (m *mockCertLookup) ByCode(ctx context.Context, code string) (*model.Certificate, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Certificate), args.Error(1)
}

// mockAuthLookup implements AuthorityLookup for tests.
type mockAuthLookup struct {
	mock.Mock
}

func (m *mockAuthLookup) ByID(ctx context.Context, id string) (*model.Authority, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Authority), args.Error(1)
}

// funcCertLookup backs concurrency-heavy tests where mock bookkeeping gets
// in the way.
type funcCertLookup struct {
	byID   func(ctx context.Context, id string) (*model.Certificate, error)
	byCode func(ctx context.Context, code string) (*model.Certificate, error)
}

func (f *funcCertLookup) ByID(ctx context.Context, id string) (*model.Certificate, error) {
	return f.byID(ctx, id)
}

func (f *funcCertLookup) ByCode(ctx context.Context, code string) (*model.Certificate, error) {
	return f.byCode(ctx, code)
}

type funcAuthLookup struct {
	byID func(ctx context.Context, id string) (*model.Authority, error)
}

func (f *funcAuthLookup) ByID(ctx context.Context, id string) (*model.Authority, error) {
	return f.byID(ctx, id)
}
