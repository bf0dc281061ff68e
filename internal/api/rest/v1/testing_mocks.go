//go:build unit
// +build unit

package v1

import (
	"context"
	"crypto"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/stretchr/testify/mock"
)

// MockModuleService is a mock implementation of fips.ModuleService
type MockModuleService struct {
	mock.Mock
}

func (m *MockModuleService) Status(ctx context.Context) (*fips.ModuleStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fips.ModuleStatus), args.Error(1)
}

func (m *MockModuleService) Algorithms(ctx context.Context) []fips.Algorithm {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]fips.Algorithm)
}

// MockDigestService is a mock implementation of fips.DigestService
type MockDigestService struct {
	mock.Mock
}

func (m *MockDigestService) Digest(ctx context.Context, algorithm string, data []byte) ([]byte, error) {
	args := m.Called(ctx, algorithm, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockRandomService is a mock implementation of fips.RandomService
type MockRandomService struct {
	mock.Mock
}

func (m *MockRandomService) Generate(ctx context.Context, n int) ([]byte, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockVerificationService is a mock implementation of fips.VerificationService
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Verify(ctx context.Context, algorithm string, publicKey crypto.PublicKey, message, signature []byte) (*fips.VerificationRecord, error) {
	args := m.Called(ctx, algorithm, publicKey, message, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fips.VerificationRecord), args.Error(1)
}

func (m *MockVerificationService) List(ctx context.Context, query *fips.VerificationQuery) ([]*fips.VerificationRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fips.VerificationRecord), args.Error(1)
}

func (m *MockVerificationService) GetByID(ctx context.Context, id string) (*fips.VerificationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fips.VerificationRecord), args.Error(1)
}
