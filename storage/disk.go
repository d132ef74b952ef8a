package storage

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// diskStorage is the disk-backed DataStorage variant used by the
// two-pass FNT strategy once a transform's working set exceeds the
// memory budget (spec.md §4.2). It is scratch space only — never a
// durable artifact (spec.md §6.5) — and supports sequential access
// only, matching the "uncached may be sequential only" contract.
type diskStorage struct {
	path string
	size int
	file *os.File
}

// diskName derives a stable, collision-resistant scratch-file name
// from an operation id and a modulus index, the same
// hash-a-buffer-for-a-stable-key idiom primitives.PRNGKey uses for
// session key derivation.
func diskName(opID string, modulusIdx int) string {
	h := blake3.New()
	_, _ = h.Write([]byte(opID))
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], uint64(modulusIdx))
	_, _ = h.Write(idx[:])
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// NewDisk creates a disk-backed storage of the given digit size under
// dir, named deterministically from opID and modulusIdx so repeated
// passes over the same operation reuse the same scratch file path.
func NewDisk(dir, opID string, modulusIdx, size int) (DataStorage, error) {
	path := filepath.Join(dir, diskName(opID, modulusIdx)+".fnt")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("storage: create disk scratch: %w", err)
	}
	if err := f.Truncate(int64(size) * 8); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("storage: size disk scratch: %w", err)
	}
	return &diskStorage{path: path, size: size, file: f}, nil
}

func (d *diskStorage) Size() int      { return d.size }
func (d *diskStorage) Kind() Kind     { return DiskKind }
func (d *diskStorage) IsCached() bool { return false }

func (d *diskStorage) Iterator(mode Mode, start, end int) (Iterator, error) {
	if start < 0 || end > d.size || start > end {
		return nil, &ErrOutOfRange{Size: d.size, Start: start, End: end}
	}
	return &diskIterator{storage: d, mode: mode, pos: start - 1, start: start, end: end}, nil
}

func (d *diskStorage) CopyFrom(src DataStorage, n int) error {
	it, err := src.Iterator(Read, 0, n)
	if err != nil {
		return err
	}
	w, err := d.Iterator(Write, 0, d.size)
	if err != nil {
		return err
	}
	for i := 0; i < n && it.Next() && w.Next(); i++ {
		w.Set(it.Get())
	}
	for w.Next() {
		w.Set(0)
	}
	return nil
}

// Close releases the underlying scratch file, removing it from disk:
// disk-backed storage is never a durable artifact (spec.md §6.5).
func (d *diskStorage) Close() error {
	err := d.file.Close()
	os.Remove(d.path)
	return err
}

type diskIterator struct {
	storage    *diskStorage
	mode       Mode
	pos        int
	start, end int
	buf        [8]byte
}

func (it *diskIterator) Next() bool {
	it.pos++
	return it.pos < it.end
}

func (it *diskIterator) Get() uint64 {
	if _, err := it.storage.file.ReadAt(it.buf[:], int64(it.pos)*8); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(it.buf[:])
}

func (it *diskIterator) Set(v uint64) {
	binary.LittleEndian.PutUint64(it.buf[:], v)
	_, _ = it.storage.file.WriteAt(it.buf[:], int64(it.pos)*8)
}

func (it *diskIterator) Pos() int { return it.pos }
