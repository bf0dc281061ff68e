package app

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/pkg/logger"
)

// Signature engine errors
var (
	ErrSigningUnsupported = errors.New("signing is not supported by this provider")
	ErrInvalidKey         = errors.New("invalid public key")
	ErrNotInitialized     = errors.New("signature engine not initialized for verification")
)

// Signature is a verify-only signature engine. It implements io.Writer for the message.
// Close must be called to release the key context.
type Signature struct {
	bridge    fips.ContextBridge
	logger    logger.Logger
	name      string
	algorithm signatureAlgorithm

	handle  fips.Handle
	message bytes.Buffer
}

// Name returns the canonical algorithm name.
func (s *Signature) Name() string {
	return s.name
}

// Family returns the context family verifications of this engine run in.
func (s *Signature) Family() string {
	return s.algorithm.family
}

// curveFor returns the curve paired with the engine's digest.
func (s *Signature) curveFor() (fips.CurveID, string, error) {
	switch s.algorithm.digest {
	case fips.DigestSHA256:
		return fips.CurveP256, "P-256", nil
	case fips.DigestSHA384:
		return fips.CurveP384, "P-384", nil
	default:
		return 0, "", fmt.Errorf("%w: unsupported curve, only P-256 (with SHA-256) and P-384 (with SHA-384) are supported", ErrInvalidKey)
	}
}

// InitVerify binds publicKey to the engine, replacing any previously bound key.
func (s *Signature) InitVerify(publicKey crypto.PublicKey) error {
	if err := s.Close(); err != nil {
		return err
	}

	var (
		h   fips.Handle
		err error
	)
	switch s.algorithm.family {
	case fips.FamilyRSA:
		key, ok := publicKey.(*rsa.PublicKey)
		if !ok || key == nil || key.N == nil {
			return fmt.Errorf("%w: not an RSA public key", ErrInvalidKey)
		}
		h, err = s.bridge.RSAVerifyInit(key.N.Bytes(), big.NewInt(int64(key.E)).Bytes())
	case fips.FamilyEC:
		key, ok := publicKey.(*ecdsa.PublicKey)
		if !ok || key == nil || key.X == nil || key.Y == nil {
			return fmt.Errorf("%w: not an EC public key", ErrInvalidKey)
		}
		curve, curveName, cerr := s.curveFor()
		if cerr != nil {
			return cerr
		}
		if key.Curve == nil || key.Curve.Params().Name != curveName {
			return fmt.Errorf("%w: %s requires a %s key", ErrInvalidKey, s.name, curveName)
		}
		h, err = s.bridge.ECVerifyInit(curve, key.X.Bytes(), key.Y.Bytes())
	default:
		return fmt.Errorf("%w: %s", fips.ErrUnknownAlgorithm, s.name)
	}
	if err != nil {
		return err
	}

	s.handle = h
	s.message.Reset()
	return nil
}

// InitSign always fails.
func (s *Signature) InitSign(crypto.PrivateKey) error {
	return ErrSigningUnsupported
}

// Sign always fails.
func (s *Signature) Sign() ([]byte, error) {
	return nil, ErrSigningUnsupported
}

// Write appends p to the message to be verified.
func (s *Signature) Write(p []byte) (int, error) {
	if s.handle == fips.NullHandle {
		return 0, ErrNotInitialized
	}
	return s.message.Write(p)
}

// Verify checks signature over the accumulated message and clears the message.
// A bad signature returns false with a fips.ErrSignatureMismatch error.
func (s *Signature) Verify(signature []byte) (bool, error) {
	if s.handle == fips.NullHandle {
		return false, ErrNotInitialized
	}
	defer func() {
		clear(s.message.Bytes())
		s.message.Reset()
	}()

	var (
		outcome fips.Outcome
		err     error
	)
	switch s.algorithm.family {
	case fips.FamilyRSA:
		outcome, err = s.bridge.RSAVerifyFinal(s.handle, s.message.Bytes(), s.algorithm.digest, s.algorithm.padding, signature)
	case fips.FamilyEC:
		outcome, err = s.bridge.ECVerifyFinal(s.handle, s.message.Bytes(), s.algorithm.digest, signature)
	}
	if err != nil {
		s.logger.Warn(s.name, " verification failed: ", err)
		return false, err
	}
	return outcome == fips.OutcomeValid, nil
}

// Close releases the bound key context, if any.
func (s *Signature) Close() error {
	if s.handle == fips.NullHandle {
		return nil
	}
	var err error
	switch s.algorithm.family {
	case fips.FamilyRSA:
		err = s.bridge.RSADestroy(s.handle)
	case fips.FamilyEC:
		err = s.bridge.ECDestroy(s.handle)
	}
	s.handle = fips.NullHandle
	clear(s.message.Bytes())
	s.message.Reset()
	return err
}
