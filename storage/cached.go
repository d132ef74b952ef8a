package storage

import "sync"

// cachedStorage is the in-memory DataStorage variant: O(1) random
// access over a flat []T buffer, guarded by a mutex the way
// gpu.GPUMatrix guards its backing slice. T is whichever of the three
// NTT word types (ElementKind) the caller requested; every digit
// still crosses the DataStorage/Iterator boundary as a uint64,
// narrowed or widened on the way in and out.
type cachedStorage[T word] struct {
	mu   sync.RWMutex
	data []T
}

// NewCached allocates a cached storage of the given digit size, zero
// initialized, backed by the word type kind names.
func NewCached(kind ElementKind, size int) DataStorage {
	switch kind {
	case Int32:
		return &cachedStorage[int32]{data: make([]int32, size)}
	case Float64Surrogate:
		return &cachedStorage[float64]{data: make([]float64, size)}
	case Int64:
		fallthrough
	default:
		return &cachedStorage[int64]{data: make([]int64, size)}
	}
}

// WrapCached returns a cached DataStorage backed directly by data, with
// no copy. The factor-3 decorator uses this to hand each of its three
// column slices to its inner Strategy as an ordinary DataStorage;
// those slices are always native
// uint64 residue buffers regardless of the outer storage's ElementKind.
func WrapCached(data []uint64) DataStorage {
	return &cachedStorage[uint64]{data: data}
}

func (c *cachedStorage[T]) Size() int      { return len(c.data) }
func (c *cachedStorage[T]) Kind() Kind     { return CachedKind }
func (c *cachedStorage[T]) IsCached() bool { return true }

func (c *cachedStorage[T]) Iterator(mode Mode, start, end int) (Iterator, error) {
	if start < 0 || end > len(c.data) || start > end {
		return nil, &ErrOutOfRange{Size: len(c.data), Start: start, End: end}
	}
	return &cachedIterator[T]{storage: c, mode: mode, pos: start - 1, start: start, end: end}, nil
}

func (c *cachedStorage[T]) CopyFrom(src DataStorage, n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, err := src.Iterator(Read, 0, n)
	if err != nil {
		return err
	}
	for i := 0; i < n && it.Next(); i++ {
		c.data[i] = T(it.Get())
	}
	for i := n; i < len(c.data); i++ {
		c.data[i] = 0
	}
	return nil
}

// atRaw returns the digit at index i without going through an
// iterator, the random-access capability that distinguishes cached
// storage from disk-backed storage.
func (c *cachedStorage[T]) atRaw(i int) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return uint64(c.data[i])
}

// setAtRaw writes the digit at index i.
func (c *cachedStorage[T]) setAtRaw(i int, v uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[i] = T(v)
}

// randomAccess is implemented by every cachedStorage[T] instantiation;
// At/SetAt type-assert against this instead of a concrete type so they
// work across all three ElementKind backings.
type randomAccess interface {
	atRaw(i int) uint64
	setAtRaw(i int, v uint64)
}

// At reports the digit at index i for any DataStorage that supports
// random access; it returns false for disk-backed storages, per
// spec.md §6.1's "uncached may be sequential only".
func At(d DataStorage, i int) (uint64, bool) {
	c, ok := d.(randomAccess)
	if !ok {
		return 0, false
	}
	return c.atRaw(i), true
}

// SetAt writes the digit at index i for a cached DataStorage; it
// reports false for disk-backed storages.
func SetAt(d DataStorage, i int, v uint64) bool {
	c, ok := d.(randomAccess)
	if !ok {
		return false
	}
	c.setAtRaw(i, v)
	return true
}

type cachedIterator[T word] struct {
	storage    *cachedStorage[T]
	mode       Mode
	pos        int
	start, end int
}

func (it *cachedIterator[T]) Next() bool {
	it.pos++
	return it.pos < it.end
}

func (it *cachedIterator[T]) Get() uint64 {
	it.storage.mu.RLock()
	defer it.storage.mu.RUnlock()
	return uint64(it.storage.data[it.pos])
}

func (it *cachedIterator[T]) Set(v uint64) {
	it.storage.mu.Lock()
	defer it.storage.mu.Unlock()
	it.storage.data[it.pos] = T(v)
}

func (it *cachedIterator[T]) Pos() int { return it.pos }
