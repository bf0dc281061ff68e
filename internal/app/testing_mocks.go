//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/stretchr/testify/mock"
)

// MockVerificationRepository is a mock implementation of VerificationRepository
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, record *fips.VerificationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockVerificationRepository) List(ctx context.Context, query *fips.VerificationQuery) ([]*fips.VerificationRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fips.VerificationRecord), args.Error(1)
}

func (m *MockVerificationRepository) GetByID(ctx context.Context, id string) (*fips.VerificationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fips.VerificationRecord), args.Error(1)
}
