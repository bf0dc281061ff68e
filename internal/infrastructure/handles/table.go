package handles

import (
	"fmt"
	"math"
	"sync"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
)

// DefaultCapacity is the slot limit used when a table is created with a non-positive capacity.
const DefaultCapacity = 4096

type slot[T any] struct {
	generation uint32
	live       bool
	value      T
}

// Table is a fixed-capacity arena of contexts addressed by fips.Handle.
// It is safe for concurrent use; the contexts it stores are not.
type Table[T any] struct {
	mu       sync.Mutex
	name     string
	capacity int
	slots    []slot[T]
	free     []uint32
	live     int
}

// NewTable creates an empty table. name is used in error messages.
func NewTable[T any](name string, capacity int) *Table[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table[T]{
		name:     name,
		capacity: capacity,
	}
}

func encode(index uint32, generation uint32) fips.Handle {
	return fips.Handle(uint64(generation)<<32 | uint64(index+1))
}

func decode(h fips.Handle) (index uint32, generation uint32, ok bool) {
	low := uint32(uint64(h) & math.MaxUint32)
	if low == 0 {
		return 0, 0, false
	}
	return low - 1, uint32(uint64(h) >> 32), true
}

// Alloc stores value in a free slot and returns its handle.
func (t *Table[T]) Alloc(value T) (fips.Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var index uint32
	switch {
	case len(t.free) > 0:
		index = t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
	case len(t.slots) < t.capacity:
		t.slots = append(t.slots, slot[T]{})
		index = uint32(len(t.slots) - 1)
	default:
		return fips.NullHandle, fips.NewError(fips.KindAllocation, t.name+".alloc",
			fmt.Sprintf("no free slot (capacity %d)", t.capacity), nil)
	}

	s := &t.slots[index]
	s.live = true
	s.value = value
	t.live++

	return encode(index, s.generation), nil
}

func (t *Table[T]) lookup(h fips.Handle, op string) (*slot[T], error) {
	index, generation, ok := decode(h)
	if !ok {
		return nil, fips.NewError(fips.KindContextNotFound, t.name+"."+op, "null handle", nil)
	}
	if int(index) >= len(t.slots) {
		return nil, fips.NewError(fips.KindContextNotFound, t.name+"."+op, "handle out of range", nil)
	}
	s := &t.slots[index]
	if !s.live || s.generation != generation {
		return nil, fips.NewError(fips.KindContextNotFound, t.name+"."+op, "stale handle", nil)
	}
	return s, nil
}

// Resolve returns the context referenced by h.
// Null, out-of-range, released and stale handles fail with fips.ErrContextNotFound.
func (t *Table[T]) Resolve(h fips.Handle) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.lookup(h, "resolve")
	if err != nil {
		var zero T
		return zero, err
	}
	return s.value, nil
}

// Release frees the slot referenced by h and returns the context it held so the caller can scrub it.
// The slot's generation is bumped; a slot whose generation would wrap is retired for good.
func (t *Table[T]) Release(h fips.Handle) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	s, err := t.lookup(h, "release")
	if err != nil {
		return zero, err
	}

	value := s.value
	s.value = zero
	s.live = false
	t.live--

	index, _, _ := decode(h)
	if s.generation < math.MaxUint32 {
		s.generation++
		t.free = append(t.free, index)
	}

	return value, nil
}

// Len returns the number of live handles.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live
}

// Name returns the table name.
func (t *Table[T]) Name() string {
	return t.name
}
