package app

import (
	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
)

const (
	// digestBufferSize is the size of the staging buffer small writes are collected in.
	digestBufferSize = 512
	// digestCopyMax is the largest write that is staged rather than passed straight through.
	digestCopyMax = 16
)

// MessageDigest is a streaming digest engine backed by one bridge digest context.
// It implements io.Writer. Close must be called to release the context.
type MessageDigest struct {
	bridge fips.ContextBridge
	name   string
	handle fips.Handle
	size   int

	buffer [digestBufferSize]byte
	offset int
}

func newMessageDigest(bridge fips.ContextBridge, name string, id fips.DigestID) (*MessageDigest, error) {
	h, err := bridge.DigestInit(id)
	if err != nil {
		return nil, err
	}
	size, err := bridge.DigestSize(h)
	if err != nil {
		_ = bridge.DigestDestroy(h)
		return nil, err
	}
	return &MessageDigest{bridge: bridge, name: name, handle: h, size: size}, nil
}

// Name returns the canonical algorithm name.
func (d *MessageDigest) Name() string {
	return d.name
}

// Size returns the digest length in bytes.
func (d *MessageDigest) Size() int {
	return d.size
}

func (d *MessageDigest) flush() error {
	if d.offset == 0 {
		return nil
	}
	err := d.bridge.DigestUpdate(d.handle, d.buffer[:], 0, d.offset)
	clear(d.buffer[:d.offset])
	d.offset = 0
	return err
}

// Write adds p to the running digest.
func (d *MessageDigest) Write(p []byte) (int, error) {
	if len(p) > digestCopyMax || d.offset+len(p) >= digestBufferSize {
		if err := d.flush(); err != nil {
			return 0, err
		}
		if len(p) > 0 {
			if err := d.bridge.DigestUpdate(d.handle, p, 0, len(p)); err != nil {
				return 0, err
			}
		}
		return len(p), nil
	}

	copy(d.buffer[d.offset:], p)
	d.offset += len(p)
	return len(p), nil
}

// WriteByte adds c to the running digest.
func (d *MessageDigest) WriteByte(c byte) error {
	d.buffer[d.offset] = c
	d.offset++
	if d.offset == digestBufferSize {
		return d.flush()
	}
	return nil
}

// Digest completes the digest and returns it. The engine is ready for a new message afterwards.
func (d *MessageDigest) Digest() ([]byte, error) {
	if err := d.flush(); err != nil {
		return nil, err
	}
	return d.bridge.DigestFinal(d.handle)
}

// Reset discards buffered input and restarts the digest.
func (d *MessageDigest) Reset() error {
	clear(d.buffer[:d.offset])
	d.offset = 0
	return d.bridge.DigestReset(d.handle)
}

// Close releases the digest context. Calling Close more than once is a no-op.
func (d *MessageDigest) Close() error {
	if d.handle == fips.NullHandle {
		return nil
	}
	clear(d.buffer[:])
	d.offset = 0
	err := d.bridge.DigestDestroy(d.handle)
	d.handle = fips.NullHandle
	return err
}
