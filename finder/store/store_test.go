package store

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleValues() []int64 {
	vals := make([]int64, 0, 20000)
	for i := int64(0); i < 20003; i++ {
		if i%7 == 3 {
			continue
		}
		vals = append(vals, i)
	}
	return vals
}

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{N: 1 << 40, Count: 12, Missing: 5, Seed: 42}
	b, err := EncodeHeader(&h)
	require.NoError(t, err)
	require.Len(t, b, HeaderSize)

	got, err := DecodeHeader(b)
	require.NoError(t, err)
	assert.Equal(t, Magic, string(got.Magic[:]))
	assert.Equal(t, FormatVersion, got.Version)
	assert.Equal(t, uint16(ValueWidth), got.ValueWidth)
	assert.Equal(t, int64(1<<40), got.N)
	assert.Equal(t, int64(12), got.Count)
	assert.Equal(t, int64(5), got.Missing)
	assert.Equal(t, int64(42), got.Seed)
}

func TestDecodeHeaderRejects(t *testing.T) {
	h := Header{N: 10}
	good, err := EncodeHeader(&h)
	require.NoError(t, err)

	_, err = DecodeHeader(good[:10])
	assert.True(t, errors.Is(err, ErrTruncated))

	bad := bytes.Clone(good)
	copy(bad, "XXXX")
	_, err = DecodeHeader(bad)
	assert.True(t, errors.Is(err, ErrBadHeader))

	bad = bytes.Clone(good)
	bad[4] = 9 // version
	_, err = DecodeHeader(bad)
	assert.True(t, errors.Is(err, ErrBadHeader))

	zeroN := Header{}
	b, err := EncodeHeader(&zeroN)
	require.NoError(t, err)
	_, err = DecodeHeader(b)
	assert.True(t, errors.Is(err, ErrBadHeader))
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.gpsc")
	vals := sampleValues()
	vals = append(vals, math.MaxInt64, -1) // stored verbatim, validity is the finder's concern

	require.NoError(t, WriteFileAtomic(path, Header{N: 20003, Missing: -1, Seed: 7}, vals))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	ds, err := ReadFile(path)
	require.NoError(t, err)
	defer ds.Close()
	assert.Equal(t, int64(len(vals)), ds.Header().Count)
	assert.Equal(t, int64(7), ds.Header().Seed)
	assert.Equal(t, vals, ds.Values())
}

func TestOpenMmap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.gpsc")
	vals := sampleValues()
	require.NoError(t, WriteFileAtomic(path, Header{N: 20003, Missing: 20003 - int64(len(vals))}, vals))

	ds, err := OpenMmap(path)
	require.NoError(t, err)
	assert.Equal(t, vals, ds.Values())
	assert.Equal(t, int64(20003), ds.Header().N)
	assert.Len(t, ds.Bytes(), HeaderSize+len(vals)*ValueWidth)
	require.NoError(t, ds.Close())
	assert.Nil(t, ds.Values())
	require.NoError(t, ds.Close())
}

func TestOpenMmapEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gpsc")
	require.NoError(t, WriteFile(path, Header{N: 3, Missing: 3}, nil))

	ds, err := OpenMmap(path)
	require.NoError(t, err)
	defer ds.Close()
	assert.Empty(t, ds.Values())
	assert.Equal(t, int64(3), ds.Header().N)
}

func TestTruncatedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.gpsc")
	require.NoError(t, WriteFile(path, Header{N: 100}, []int64{1, 2, 3, 4}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw[:len(raw)-5], 0o644))

	_, err = OpenMmap(path)
	assert.True(t, errors.Is(err, ErrTruncated))
	_, err = ReadFile(path)
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestHugeCountHeader(t *testing.T) {
	// 2^61 values of 8 bytes wrap to a zero payload size
	b, err := EncodeHeader(&Header{N: 10, Count: 1 << 61})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "huge.gpsc")
	require.NoError(t, os.WriteFile(path, b, 0o644))

	_, err = OpenMmap(path)
	assert.True(t, errors.Is(err, ErrTruncated))
	_, err = ReadFile(path)
	assert.True(t, errors.Is(err, ErrTruncated))
}
