package cryptography

import (
	"bytes"
	"fmt"
	"hash"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
)

type digestContext struct {
	id    fips.DigestID
	size  int
	state hash.Hash
}

func (c *digestContext) destroy() {
	if c.state != nil {
		c.state.Reset()
	}
	c.state = nil
	c.id = 0
	c.size = 0
}

// DigestInit creates a streaming digest context for the algorithm id.
func (b *Bridge) DigestInit(id fips.DigestID) (fips.Handle, error) {
	state, err := b.module.NewDigest(id)
	if err != nil {
		return fips.NullHandle, fips.NewError(fips.KindAllocation, "digest.init",
			fmt.Sprintf("cannot create context for digest %d", id), err)
	}
	size, err := b.module.DigestSize(id)
	if err != nil || size > fips.MaxDigestSize {
		return fips.NullHandle, fips.NewError(fips.KindAllocation, "digest.init",
			fmt.Sprintf("unsupported output size for digest %d", id), err)
	}

	ctx := &digestContext{id: id, size: size, state: state}
	h, err := b.digests.Alloc(ctx)
	if err != nil {
		ctx.destroy()
		return fips.NullHandle, err
	}

	b.metrics.HandleAllocated(fips.FamilyDigest)
	return h, nil
}

// DigestUpdate appends buf[off:off+n] to the running digest.
func (b *Bridge) DigestUpdate(h fips.Handle, buf []byte, off, n int) error {
	ctx, err := b.digests.Resolve(h)
	if err != nil {
		return b.rejectHandle(fips.FamilyDigest, err)
	}
	if off < 0 || n < 0 || off > len(buf) || n > len(buf)-off {
		return fips.NewError(fips.KindConversion, "digest.update",
			fmt.Sprintf("range [%d:%d+%d] outside buffer of %d bytes", off, off, n, len(buf)), nil)
	}

	if _, err := ctx.state.Write(buf[off : off+n]); err != nil {
		return fips.NewError(fips.KindOperation, "digest.update", "digest update failed", err)
	}
	return nil
}

// DigestFinal completes the digest and returns a copy of it. The context is left ready for a new message.
func (b *Bridge) DigestFinal(h fips.Handle) ([]byte, error) {
	ctx, err := b.digests.Resolve(h)
	if err != nil {
		return nil, b.rejectHandle(fips.FamilyDigest, err)
	}

	var scratch [fips.MaxDigestSize]byte
	defer clear(scratch[:])

	sum := ctx.state.Sum(scratch[:0])
	if len(sum) != ctx.size {
		err := fips.NewError(fips.KindOperation, "digest.final",
			fmt.Sprintf("finalize produced %d bytes, want %d", len(sum), ctx.size), nil)
		b.logger.Error(err.Error())
		return nil, err
	}
	out := bytes.Clone(sum)
	ctx.state.Reset()

	return out, nil
}

// DigestReset restarts the context with a fresh state for its original algorithm.
func (b *Bridge) DigestReset(h fips.Handle) error {
	ctx, err := b.digests.Resolve(h)
	if err != nil {
		return b.rejectHandle(fips.FamilyDigest, err)
	}

	state, err := b.module.NewDigest(ctx.id)
	if err != nil {
		return fips.NewError(fips.KindAllocation, "digest.reset",
			fmt.Sprintf("cannot re-create context for digest %d", ctx.id), err)
	}
	ctx.state.Reset()
	ctx.state = state
	return nil
}

// DigestSize returns the output size of the context's algorithm.
func (b *Bridge) DigestSize(h fips.Handle) (int, error) {
	ctx, err := b.digests.Resolve(h)
	if err != nil {
		return 0, b.rejectHandle(fips.FamilyDigest, err)
	}
	return ctx.size, nil
}

// DigestDestroy releases the context and scrubs its state.
func (b *Bridge) DigestDestroy(h fips.Handle) error {
	ctx, err := b.digests.Release(h)
	if err != nil {
		return b.rejectHandle(fips.FamilyDigest, err)
	}
	ctx.destroy()
	b.metrics.HandleReleased(fips.FamilyDigest)
	return nil
}
