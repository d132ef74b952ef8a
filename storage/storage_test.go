package storage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedStorageIterateRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		size int
		vals []uint64
	}{
		{"small", 4, []uint64{1, 2, 3, 4}},
		{"single", 1, []uint64{42}},
		{"empty", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCached(Int32, tt.size)
			w, err := s.Iterator(Write, 0, tt.size)
			require.NoError(t, err)
			for _, v := range tt.vals {
				require.True(t, w.Next())
				w.Set(v)
			}

			r, err := s.Iterator(Read, 0, tt.size)
			require.NoError(t, err)
			var got []uint64
			for r.Next() {
				got = append(got, r.Get())
			}
			assert.Equal(t, tt.vals, got)
			assert.True(t, s.IsCached())
			assert.Equal(t, CachedKind, s.Kind())
		})
	}
}

func TestCachedStorageOutOfRange(t *testing.T) {
	s := NewCached(Int32, 4)
	_, err := s.Iterator(Read, 2, 10)
	require.Error(t, err)
	var oor *ErrOutOfRange
	require.ErrorAs(t, err, &oor)
}

func TestCopyFromZeroPadsRemainder(t *testing.T) {
	src := NewCached(Int32, 2)
	w, _ := src.Iterator(Write, 0, 2)
	w.Next()
	w.Set(7)
	w.Next()
	w.Set(8)

	dst := NewCached(Int32, 5)
	require.NoError(t, dst.CopyFrom(src, 2))

	r, _ := dst.Iterator(Read, 0, 5)
	var got []uint64
	for r.Next() {
		got = append(got, r.Get())
	}
	assert.Equal(t, []uint64{7, 8, 0, 0, 0}, got)
}

func TestDiskStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDisk(dir, "op-1", 0, 4)
	require.NoError(t, err)
	defer s.(*diskStorage).Close()

	w, err := s.Iterator(Write, 0, 4)
	require.NoError(t, err)
	for _, v := range []uint64{10, 20, 30, 40} {
		require.True(t, w.Next())
		w.Set(v)
	}

	r, err := s.Iterator(Read, 0, 4)
	require.NoError(t, err)
	var got []uint64
	for r.Next() {
		got = append(got, r.Get())
	}
	assert.Equal(t, []uint64{10, 20, 30, 40}, got)
	assert.False(t, s.IsCached())
}

func TestDiskNameIsDeterministic(t *testing.T) {
	a := diskName("op-1", 2)
	b := diskName("op-1", 2)
	c := diskName("op-1", 3)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestBuilderFactorySelectsByElementKind(t *testing.T) {
	f := NewBuilderFactory(t.TempDir())
	b32 := f.Builder(Int32)
	b64 := f.Builder(Int64)
	require.NotNil(t, b32)
	require.NotNil(t, b64)

	cached := b32.CreateCachedDataStorage(8)
	assert.Equal(t, 8, cached.Size())
}

func TestCachedStorageRoundTripsAcrossElementKinds(t *testing.T) {
	vals := []uint64{1, 2, 3, 4, 5}
	var results [][]uint64
	for _, kind := range []ElementKind{Int32, Int64, Float64Surrogate} {
		s := NewCached(kind, len(vals))
		w, err := s.Iterator(Write, 0, len(vals))
		require.NoError(t, err)
		for _, v := range vals {
			require.True(t, w.Next())
			w.Set(v)
		}

		r, err := s.Iterator(Read, 0, len(vals))
		require.NoError(t, err)
		var got []uint64
		for r.Next() {
			got = append(got, r.Get())
		}
		assert.Equalf(t, vals, got, "kind %s", kind)
		results = append(results, got)
	}

	// Every ElementKind round trips the same digit sequence regardless
	// of the backing word type it stores them in.
	for i := 1; i < len(results); i++ {
		if diff := cmp.Diff(results[0], results[i]); diff != "" {
			t.Errorf("kind %d round trip diverged from Int32 (-want +got):\n%s", i, diff)
		}
	}
}

func TestAtAndSetAtRequireCachedStorage(t *testing.T) {
	cached := NewCached(Int32, 2)
	ok := SetAt(cached, 0, 99)
	require.True(t, ok)
	v, ok := At(cached, 0)
	require.True(t, ok)
	assert.Equal(t, uint64(99), v)

	dir := t.TempDir()
	disk, err := NewDisk(dir, "op", 0, 2)
	require.NoError(t, err)
	defer disk.(*diskStorage).Close()
	_, ok = At(disk, 0)
	assert.False(t, ok)
}
