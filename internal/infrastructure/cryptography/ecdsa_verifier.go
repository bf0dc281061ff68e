package cryptography

import (
	"bytes"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

type ecContext struct {
	curve fips.CurveID
	key   *ecdsa.PublicKey
}

func (c *ecContext) destroy() {
	if c.key != nil {
		zeroBigInt(c.key.X)
		zeroBigInt(c.key.Y)
		c.key.Curve = nil
	}
	c.key = nil
	c.curve = 0
}

// ECVerifyInit creates an EC verify context for the named curve from big-endian affine coordinates.
// A point that is not on the curve fails with fips.ErrConversion; an unknown curve with fips.ErrAllocation.
func (b *Bridge) ECVerifyInit(curve fips.CurveID, x, y []byte) (fips.Handle, error) {
	ctx := &ecContext{curve: curve}
	h, err := b.ecKeys.Alloc(ctx)
	if err != nil {
		return fips.NullHandle, err
	}

	if err := b.buildECKey(ctx, x, y); err != nil {
		_, _ = b.ecKeys.Release(h)
		ctx.destroy()
		b.logger.Error(err.Error())
		return fips.NullHandle, err
	}

	b.metrics.HandleAllocated(fips.FamilyEC)
	return h, nil
}

func (b *Bridge) buildECKey(ctx *ecContext, xBytes, yBytes []byte) error {
	x, err := BytesToBigInt(xBytes)
	if err != nil {
		return fips.NewError(fips.KindConversion, "ecdsa.init", "invalid x coordinate", err)
	}
	y, err := BytesToBigInt(yBytes)
	if err != nil {
		zeroBigInt(x)
		return fips.NewError(fips.KindConversion, "ecdsa.init", "invalid y coordinate", err)
	}

	key, err := b.module.NewECPublicKey(ctx.curve, x, y)
	if err != nil {
		zeroBigInt(x)
		zeroBigInt(y)
		if errors.Is(err, fips.ErrUnknownAlgorithm) {
			return fips.NewError(fips.KindAllocation, "ecdsa.init", fmt.Sprintf("cannot construct curve %d", ctx.curve), err)
		}
		return fips.NewError(fips.KindConversion, "ecdsa.init", "module rejected affine coordinates", err)
	}
	ctx.key = key
	return nil
}

// ECVerifyFinal verifies a DER encoded ECDSA signature over message.
// A bad signature fails with fips.ErrSignatureMismatch, a malformed signature or module failure
// with fips.ErrOperation; both return OutcomeInvalid.
func (b *Bridge) ECVerifyFinal(h fips.Handle, message []byte, digest fips.DigestID, signature []byte) (fips.Outcome, error) {
	ctx, err := b.ecKeys.Resolve(h)
	if err != nil {
		return fips.OutcomeInvalid, b.rejectHandle(fips.FamilyEC, err)
	}
	if err := b.checkMode("ecdsa.verify"); err != nil {
		return fips.OutcomeInvalid, err
	}

	msg := bytes.Clone(message)
	sig := bytes.Clone(signature)
	defer clear(msg)
	defer clear(sig)

	outcome := fips.OutcomeError
	var cause error
	r, s, err := decodeSignature(sig)
	if err != nil {
		cause = err
	} else {
		outcome, cause = b.module.VerifyECDSA(ctx.key, msg, digest, r, s)
		zeroBigInt(r)
		zeroBigInt(s)
	}
	b.metrics.VerificationCompleted(fips.FamilyEC, int32(outcome))

	switch {
	case outcome == fips.OutcomeValid && cause == nil:
		return fips.OutcomeValid, nil
	case outcome == fips.OutcomeInvalid && cause == nil:
		return fips.OutcomeInvalid, fips.NewError(fips.KindSignatureMismatch, "ecdsa.verify", "bad signature", nil)
	default:
		if cause == nil {
			cause = fmt.Errorf("module returned outcome %d", outcome)
		}
		verr := fips.NewError(fips.KindOperation, "ecdsa.verify", "verification failed", cause)
		b.logger.Error(verr.Error())
		return fips.OutcomeInvalid, verr
	}
}

// ECDestroy releases the context and scrubs its key material.
func (b *Bridge) ECDestroy(h fips.Handle) error {
	ctx, err := b.ecKeys.Release(h)
	if err != nil {
		return b.rejectHandle(fips.FamilyEC, err)
	}
	ctx.destroy()
	b.metrics.HandleReleased(fips.FamilyEC)
	return nil
}

// decodeSignature parses the ASN.1 SEQUENCE { r INTEGER, s INTEGER } signature encoding.
func decodeSignature(sig []byte) (*big.Int, *big.Int, error) {
	var (
		r, s  = new(big.Int), new(big.Int)
		inner cryptobyte.String
	)
	input := cryptobyte.String(sig)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, nil, errors.New("malformed DER signature")
	}
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return nil, nil, errors.New("signature components must be positive")
	}
	return r, s, nil
}
