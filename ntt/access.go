package ntt

import "github.com/apflow/bigntt/storage"

// readAll materializes a cached storage into a plain slice for
// in-place butterfly work; table and six-step strategies need random
// access that the Iterator contract alone does not promise.
func readAll(s storage.DataStorage) ([]uint64, bool) {
	n := s.Size()
	data := make([]uint64, n)
	for i := 0; i < n; i++ {
		v, ok := storage.At(s, i)
		if !ok {
			return nil, false
		}
		data[i] = v
	}
	return data, true
}

// writeAll copies data back into a cached storage.
func writeAll(s storage.DataStorage, data []uint64) bool {
	for i, v := range data {
		if !storage.SetAt(s, i, v) {
			return false
		}
	}
	return true
}

// readSeq reads an entire storage sequentially through its Iterator,
// the only access pattern disk-backed storage promises (spec.md §6.1:
// "uncached may be sequential only"). The two-pass strategy uses this
// as its block-prefetch read.
func readSeq(s storage.DataStorage) ([]uint64, error) {
	n := s.Size()
	it, err := s.Iterator(storage.Read, 0, n)
	if err != nil {
		return nil, err
	}
	data := make([]uint64, n)
	for i := 0; i < n && it.Next(); i++ {
		data[i] = it.Get()
	}
	return data, nil
}

// writeSeq writes data back to a storage sequentially through its
// Iterator.
func writeSeq(s storage.DataStorage, data []uint64) error {
	it, err := s.Iterator(storage.Write, 0, len(data))
	if err != nil {
		return err
	}
	for _, v := range data {
		if !it.Next() {
			break
		}
		it.Set(v)
	}
	return nil
}
