// Package storage implements the abstract ordered digit container
// (spec.md §3's DataStorage, L1): an in-memory "cached" variant with
// O(1) random access, and a disk-backed variant that is sequential
// only. Both are built by a Builder, owned for the duration of one
// operation, and dropped when the result is downgraded or reused
// (spec.md §3's ownership model — no cycles, strictly hierarchical).
package storage

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// word is the type-set a cachedStorage's backing slice may be
// instantiated over: the three machine representations spec.md §6.3
// names for an NTT element (32-bit int, 64-bit long, 64-bit double
// used as an integer surrogate).
type word interface {
	constraints.Integer | constraints.Float
}

// ElementKind identifies one of the three NTT word-size surrogates
// spec.md §6.3 names. It selects the concrete word type NewCached
// instantiates cachedStorage's backing slice with; it does not select
// a different prime triple (see DESIGN.md).
type ElementKind int

const (
	Int32 ElementKind = iota
	Int64
	Float64Surrogate
)

func (k ElementKind) String() string {
	switch k {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float64Surrogate:
		return "float64-surrogate"
	default:
		return "unknown"
	}
}

// Kind distinguishes cached (in-memory) from disk-backed storages.
type Kind int

const (
	CachedKind Kind = iota
	DiskKind
)

// Mode selects what an Iterator may do with the slice of digits it
// was handed.
type Mode int

const (
	Read Mode = iota
	Write
	ReadWrite
)

// DataStorage is an ordered container of fixed-width machine-word
// digits (spec.md §3). Implementations are cachedStorage (O(1) random
// access) and diskStorage (sequential-only, block-prefetched).
type DataStorage interface {
	// Size returns the total digit count.
	Size() int
	// Kind reports whether this storage is cached or disk-backed.
	Kind() Kind
	// IsCached is the capability bit the parallel scheduler and the
	// factor-3/six-step strategies consult before parallelizing.
	IsCached() bool
	// Iterator returns a sequential cursor over [start, end) in the
	// requested mode.
	Iterator(mode Mode, start, end int) (Iterator, error)
	// CopyFrom copies the first n digits of src into this storage.
	CopyFrom(src DataStorage, n int) error
}

// Iterator is a sequential cursor produced by DataStorage.Iterator. A
// given Iterator is only ever used in the mode it was created with;
// calling Set on a Read iterator or Get on a Write iterator is a
// programming error the implementation does not need to guard against
// beyond what Go's type system already enforces through Mode.
type Iterator interface {
	// Next advances the cursor and reports whether a digit remains.
	Next() bool
	// Get returns the digit at the current position (Read/ReadWrite).
	Get() uint64
	// Set writes the digit at the current position (Write/ReadWrite).
	Set(v uint64)
	// Pos returns the current index within the storage's own window,
	// not the [start,end) window the iterator was given.
	Pos() int
}

// ErrOutOfRange is returned by Iterator when start/end fall outside
// the storage's bounds.
type ErrOutOfRange struct {
	Size, Start, End int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("storage: range [%d,%d) out of bounds for size %d", e.Start, e.End, e.Size)
}
