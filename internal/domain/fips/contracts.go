package fips

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"hash"
	"math/big"
)

// Module is the validated cryptographic module the bridge fronts.
// The bridge never implements cryptography itself; every primitive is delegated to a Module.
type Module interface {
	// Mode reports whether the module is in its validated operating mode.
	Mode() bool
	// SetMode requests a transition of the operating mode.
	SetMode(enabled bool) error
	// Info returns the module build metadata.
	Info() ModuleInfo
	// ReferenceFingerprint returns the integrity fingerprint embedded at build time.
	ReferenceFingerprint() [FingerprintSize]byte
	// IncoreFingerprint recomputes the integrity fingerprint over the module image.
	IncoreFingerprint() ([FingerprintSize]byte, error)

	// NewDigest returns fresh streaming state for the digest identified by id.
	NewDigest(id DigestID) (hash.Hash, error)
	// DigestSize returns the output length of the digest identified by id.
	DigestSize(id DigestID) (int, error)

	// NewRSAPublicKey builds an RSA public key from its modulus and public exponent.
	NewRSAPublicKey(n, e *big.Int) (*rsa.PublicKey, error)
	// VerifyRSA verifies sig over msg. A nil error means the signature is valid.
	VerifyRSA(key *rsa.PublicKey, msg []byte, params RSAParams, sig []byte) error

	// NewECPublicKey builds a public key on the named curve from affine coordinates.
	NewECPublicKey(curve CurveID, x, y *big.Int) (*ecdsa.PublicKey, error)
	// VerifyECDSA verifies the (r, s) signature over msg and reports 1, 0 or -1.
	VerifyECDSA(key *ecdsa.PublicKey, msg []byte, digest DigestID, r, s *big.Int) (Outcome, error)

	// RandBytes fills out from the module's DRBG.
	RandBytes(out []byte) error
}

// ContextBridge drives module contexts through opaque handles.
// Every Init that returns a non-null handle must be paired with exactly one Destroy.
type ContextBridge interface {
	DigestInit(id DigestID) (Handle, error)
	DigestUpdate(h Handle, buf []byte, off, n int) error
	DigestFinal(h Handle) ([]byte, error)
	DigestReset(h Handle) error
	DigestSize(h Handle) (int, error)
	DigestDestroy(h Handle) error

	RSAVerifyInit(modulus, exponent []byte) (Handle, error)
	RSAVerifyFinal(h Handle, message []byte, digest DigestID, padding Padding, signature []byte) (Outcome, error)
	RSADestroy(h Handle) error

	ECVerifyInit(curve CurveID, x, y []byte) (Handle, error)
	ECVerifyFinal(h Handle, message []byte, digest DigestID, signature []byte) (Outcome, error)
	ECDestroy(h Handle) error

	Generate(n int) ([]byte, error)
}

// ModeReporter exposes the operating mode, build metadata and integrity fingerprints of the module.
type ModeReporter interface {
	Enabled() bool
	Version() string
	CFlags() string
	BuiltOn() string
	Platform() string
	Dir() string
	ReferenceSignature() []byte
	ComputedSignature() ([]byte, error)
	VerifyIntegrity() error
}

// DigestService computes message digests by algorithm name.
type DigestService interface {
	// Digest hashes data with the named algorithm and returns the digest.
	Digest(ctx context.Context, algorithm string, data []byte) ([]byte, error)
}

// RandomService draws bytes from the module DRBG.
type RandomService interface {
	// Generate returns n bytes of DRBG output.
	Generate(ctx context.Context, n int) ([]byte, error)
}

// VerificationService verifies signatures and keeps an audit trail of every verification.
type VerificationService interface {
	// Verify checks signature over message with publicKey under the named signature algorithm.
	// A completed verification is returned as a record even when the signature is invalid;
	// the error is reserved for failures that prevented the verification from running.
	Verify(ctx context.Context, algorithm string, publicKey crypto.PublicKey, message, signature []byte) (*VerificationRecord, error)

	// List retrieves verification records considering a query filter when set.
	List(ctx context.Context, query *VerificationQuery) ([]*VerificationRecord, error)

	// GetByID retrieves a single verification record.
	GetByID(ctx context.Context, id string) (*VerificationRecord, error)
}

// ModuleService reports module status and the registered algorithms.
type ModuleService interface {
	// Status returns the module metadata, operating mode and fingerprints.
	Status(ctx context.Context) (*ModuleStatus, error)
	// Algorithms lists every registered algorithm name.
	Algorithms(ctx context.Context) []Algorithm
}

// VerificationRepository defines the persistence operations for verification records
type VerificationRepository interface {
	Create(ctx context.Context, record *VerificationRecord) error
	List(ctx context.Context, query *VerificationQuery) ([]*VerificationRecord, error)
	GetByID(ctx context.Context, id string) (*VerificationRecord, error)
}
