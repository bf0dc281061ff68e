package fipsmodule

import (
	"crypto"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/fips140"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"hash"
	"math"
	"math/big"

	// digest implementations registered with crypto.Hash
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
)

var digests = map[fips.DigestID]crypto.Hash{
	fips.DigestSHA1:       crypto.SHA1,
	fips.DigestSHA224:     crypto.SHA224,
	fips.DigestSHA256:     crypto.SHA256,
	fips.DigestSHA384:     crypto.SHA384,
	fips.DigestSHA512:     crypto.SHA512,
	fips.DigestSHA512_224: crypto.SHA512_224,
	fips.DigestSHA512_256: crypto.SHA512_256,
}

type curve struct {
	ec  elliptic.Curve
	dh  ecdh.Curve
	len int
}

var curves = map[fips.CurveID]curve{
	fips.CurveP256: {ec: elliptic.P256(), dh: ecdh.P256(), len: 32},
	fips.CurveP384: {ec: elliptic.P384(), dh: ecdh.P384(), len: 48},
	fips.CurveP521: {ec: elliptic.P521(), dh: ecdh.P521(), len: 66},
}

// Module is the native Go FIPS 140-3 module.
type Module struct {
	imagePath string
	reference [fips.FingerprintSize]byte
}

// Option configures a Module.
type Option func(*Module)

// WithImagePath sets the file the in-core fingerprint is computed over.
// By default it is the running executable.
func WithImagePath(path string) Option {
	return func(m *Module) {
		m.imagePath = path
	}
}

// WithReferenceFingerprint overrides the reference fingerprint embedded at build time.
func WithReferenceFingerprint(fp []byte) Option {
	return func(m *Module) {
		copy(m.reference[:], fp)
	}
}

// New creates a Module.
func New(opts ...Option) *Module {
	m := &Module{
		reference: embeddedFingerprint(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mode reports whether the process runs in FIPS 140-3 mode.
func (m *Module) Mode() bool {
	return fips140.Enabled()
}

// SetMode succeeds only when enabled equals the current mode.
func (m *Module) SetMode(enabled bool) error {
	current := fips140.Enabled()
	if enabled == current {
		return nil
	}
	if enabled {
		return fmt.Errorf("%w: restart the process with GODEBUG=fips140=on", fips.ErrModeUnavailable)
	}
	return fmt.Errorf("%w: FIPS mode cannot be left once enabled", fips.ErrModeUnavailable)
}

func (m *Module) hash(id fips.DigestID) (crypto.Hash, error) {
	h, ok := digests[id]
	if !ok || !h.Available() {
		return 0, fmt.Errorf("%w: digest %d", fips.ErrUnknownAlgorithm, id)
	}
	return h, nil
}

// NewDigest returns a fresh hash for id.
func (m *Module) NewDigest(id fips.DigestID) (hash.Hash, error) {
	h, err := m.hash(id)
	if err != nil {
		return nil, err
	}
	return h.New(), nil
}

// DigestSize returns the output size of id.
func (m *Module) DigestSize(id fips.DigestID) (int, error) {
	h, err := m.hash(id)
	if err != nil {
		return 0, err
	}
	return h.Size(), nil
}

func (m *Module) sum(id fips.DigestID, msg []byte) (crypto.Hash, []byte, error) {
	h, err := m.hash(id)
	if err != nil {
		return 0, nil, err
	}
	state := h.New()
	state.Write(msg)
	return h, state.Sum(nil), nil
}

// NewRSAPublicKey builds an RSA public key. The exponent must fit a positive 31-bit integer.
func (m *Module) NewRSAPublicKey(n, e *big.Int) (*rsa.PublicKey, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, errors.New("modulus must be positive")
	}
	if e == nil || !e.IsInt64() || e.Int64() < 2 || e.Int64() > math.MaxInt32 {
		return nil, errors.New("public exponent out of range")
	}
	return &rsa.PublicKey{N: new(big.Int).Set(n), E: int(e.Int64())}, nil
}

// VerifyRSA verifies sig over msg. rsa.ErrVerification is returned for a mismatching signature.
func (m *Module) VerifyRSA(key *rsa.PublicKey, msg []byte, params fips.RSAParams, sig []byte) error {
	h, digest, err := m.sum(params.Digest, msg)
	if err != nil {
		return err
	}

	switch params.Padding {
	case fips.PaddingPKCS1v15:
		return rsa.VerifyPKCS1v15(key, h, digest, sig)
	case fips.PaddingPSS:
		return rsa.VerifyPSS(key, h, digest, sig, &rsa.PSSOptions{SaltLength: params.SaltLength, Hash: h})
	default:
		return fmt.Errorf("unsupported padding mode %d", params.Padding)
	}
}

// NewECPublicKey builds a public key from affine coordinates after checking the point is on the curve.
func (m *Module) NewECPublicKey(id fips.CurveID, x, y *big.Int) (*ecdsa.PublicKey, error) {
	c, ok := curves[id]
	if !ok {
		return nil, fmt.Errorf("%w: curve %d", fips.ErrUnknownAlgorithm, id)
	}
	if x == nil || y == nil || x.Sign() < 0 || y.Sign() < 0 {
		return nil, errors.New("invalid affine coordinates")
	}
	if (x.BitLen()+7)/8 > c.len || (y.BitLen()+7)/8 > c.len {
		return nil, errors.New("affine coordinate exceeds field size")
	}

	point := make([]byte, 1+2*c.len)
	point[0] = 4
	x.FillBytes(point[1 : 1+c.len])
	y.FillBytes(point[1+c.len:])
	if _, err := c.dh.NewPublicKey(point); err != nil {
		return nil, fmt.Errorf("point rejected: %w", err)
	}

	return &ecdsa.PublicKey{
		Curve: c.ec,
		X:     new(big.Int).Set(x),
		Y:     new(big.Int).Set(y),
	}, nil
}

// VerifyECDSA verifies the (r, s) signature over msg hashed with digest.
func (m *Module) VerifyECDSA(key *ecdsa.PublicKey, msg []byte, digest fips.DigestID, r, s *big.Int) (fips.Outcome, error) {
	if key == nil || r == nil || s == nil {
		return fips.OutcomeError, errors.New("missing key or signature component")
	}
	_, sum, err := m.sum(digest, msg)
	if err != nil {
		return fips.OutcomeError, err
	}
	if ecdsa.Verify(key, sum, r, s) {
		return fips.OutcomeValid, nil
	}
	return fips.OutcomeInvalid, nil
}

// RandBytes fills out from the module DRBG.
func (m *Module) RandBytes(out []byte) error {
	if _, err := rand.Read(out); err != nil {
		return fmt.Errorf("DRBG failure: %w", err)
	}
	return nil
}
