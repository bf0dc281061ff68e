//go:build unit
// +build unit

package cryptography

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"hash"
	"math/big"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/stretchr/testify/mock"
)

// MockModule is a mock implementation of fips.Module
type MockModule struct {
	mock.Mock
}

func (m *MockModule) Mode() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockModule) SetMode(enabled bool) error {
	args := m.Called(enabled)
	return args.Error(0)
}

func (m *MockModule) Info() fips.ModuleInfo {
	args := m.Called()
	return args.Get(0).(fips.ModuleInfo)
}

func (m *MockModule) ReferenceFingerprint() [fips.FingerprintSize]byte {
	args := m.Called()
	return args.Get(0).([fips.FingerprintSize]byte)
}

func (m *MockModule) IncoreFingerprint() ([fips.FingerprintSize]byte, error) {
	args := m.Called()
	return args.Get(0).([fips.FingerprintSize]byte), args.Error(1)
}

func (m *MockModule) NewDigest(id fips.DigestID) (hash.Hash, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(hash.Hash), args.Error(1)
}

func (m *MockModule) DigestSize(id fips.DigestID) (int, error) {
	args := m.Called(id)
	return args.Int(0), args.Error(1)
}

func (m *MockModule) NewRSAPublicKey(n, e *big.Int) (*rsa.PublicKey, error) {
	args := m.Called(n, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rsa.PublicKey), args.Error(1)
}

func (m *MockModule) VerifyRSA(key *rsa.PublicKey, msg []byte, params fips.RSAParams, sig []byte) error {
	args := m.Called(key, msg, params, sig)
	return args.Error(0)
}

func (m *MockModule) NewECPublicKey(curve fips.CurveID, x, y *big.Int) (*ecdsa.PublicKey, error) {
	args := m.Called(curve, x, y)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ecdsa.PublicKey), args.Error(1)
}

func (m *MockModule) VerifyECDSA(key *ecdsa.PublicKey, msg []byte, digest fips.DigestID, r, s *big.Int) (fips.Outcome, error) {
	args := m.Called(key, msg, digest, r, s)
	return args.Get(0).(fips.Outcome), args.Error(1)
}

func (m *MockModule) RandBytes(out []byte) error {
	args := m.Called(out)
	return args.Error(0)
}
