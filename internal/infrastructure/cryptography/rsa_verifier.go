package cryptography

import (
	"bytes"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
)

type rsaContext struct {
	key *rsa.PublicKey
}

func (c *rsaContext) destroy() {
	if c.key != nil {
		zeroBigInt(c.key.N)
		c.key.E = 0
	}
	c.key = nil
}

// RSAVerifyInit creates an RSA verify context from a big-endian modulus and public exponent.
func (b *Bridge) RSAVerifyInit(modulus, exponent []byte) (fips.Handle, error) {
	ctx := &rsaContext{}
	h, err := b.rsaKeys.Alloc(ctx)
	if err != nil {
		return fips.NullHandle, err
	}

	if err := b.buildRSAKey(ctx, modulus, exponent); err != nil {
		_, _ = b.rsaKeys.Release(h)
		ctx.destroy()
		b.logger.Error(err.Error())
		return fips.NullHandle, err
	}

	b.metrics.HandleAllocated(fips.FamilyRSA)
	return h, nil
}

func (b *Bridge) buildRSAKey(ctx *rsaContext, modulus, exponent []byte) error {
	n, err := BytesToBigInt(modulus)
	if err != nil {
		return fips.NewError(fips.KindConversion, "rsa.init", "invalid modulus", err)
	}
	e, err := BytesToBigInt(exponent)
	if err != nil {
		zeroBigInt(n)
		return fips.NewError(fips.KindConversion, "rsa.init", "invalid public exponent", err)
	}
	defer zeroBigInt(e)

	key, err := b.module.NewRSAPublicKey(n, e)
	if err != nil {
		zeroBigInt(n)
		return fips.NewError(fips.KindConversion, "rsa.init", "module rejected public key", err)
	}
	ctx.key = key
	return nil
}

// RSAVerifyFinal verifies signature over message with the context's key.
// On a bad signature it returns OutcomeInvalid together with a fips.ErrSignatureMismatch error;
// the error is authoritative.
func (b *Bridge) RSAVerifyFinal(h fips.Handle, message []byte, digest fips.DigestID, padding fips.Padding, signature []byte) (fips.Outcome, error) {
	ctx, err := b.rsaKeys.Resolve(h)
	if err != nil {
		return fips.OutcomeInvalid, b.rejectHandle(fips.FamilyRSA, err)
	}
	if err := b.checkMode("rsa.verify"); err != nil {
		return fips.OutcomeInvalid, err
	}

	params := fips.RSAParams{Digest: digest, Padding: padding}
	switch padding {
	case fips.PaddingPKCS1v15:
	case fips.PaddingPSS:
		size, err := b.module.DigestSize(digest)
		if err != nil {
			return fips.OutcomeInvalid, fips.NewError(fips.KindOperation, "rsa.verify",
				fmt.Sprintf("unsupported digest %d", digest), err)
		}
		params.SaltLength = size
	default:
		return fips.OutcomeInvalid, fips.NewError(fips.KindOperation, "rsa.verify",
			fmt.Sprintf("unsupported padding mode %d", padding), nil)
	}

	msg := bytes.Clone(message)
	sig := bytes.Clone(signature)
	defer clear(msg)
	defer clear(sig)

	err = b.module.VerifyRSA(ctx.key, msg, params, sig)
	switch {
	case err == nil:
		b.metrics.VerificationCompleted(fips.FamilyRSA, int32(fips.OutcomeValid))
		return fips.OutcomeValid, nil
	case errors.Is(err, rsa.ErrVerification):
		b.metrics.VerificationCompleted(fips.FamilyRSA, int32(fips.OutcomeInvalid))
		return fips.OutcomeInvalid, fips.NewError(fips.KindSignatureMismatch, "rsa.verify", "bad signature", err)
	default:
		b.metrics.VerificationCompleted(fips.FamilyRSA, int32(fips.OutcomeError))
		verr := fips.NewError(fips.KindOperation, "rsa.verify", "verification failed", err)
		b.logger.Error(verr.Error())
		return fips.OutcomeInvalid, verr
	}
}

// RSADestroy releases the context and scrubs its key material.
func (b *Bridge) RSADestroy(h fips.Handle) error {
	ctx, err := b.rsaKeys.Release(h)
	if err != nil {
		return b.rejectHandle(fips.FamilyRSA, err)
	}
	ctx.destroy()
	b.metrics.HandleReleased(fips.FamilyRSA)
	return nil
}
