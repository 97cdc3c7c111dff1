package store

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Dataset is a loaded present array with its header.
type Dataset interface {
	Header() *Header
	// Values returns the present values. For mmap-backed datasets the slice is
	// valid until Close and must not be modified.
	Values() []int64
	Close() error
}

// heapDataset holds values decoded onto the heap.
type heapDataset struct {
	h      *Header
	values []int64
}

func (d *heapDataset) Header() *Header { return d.h }
func (d *heapDataset) Values() []int64 { return d.values }
func (d *heapDataset) Close() error    { return nil }

// writeChunk is the number of values encoded per buffered write.
const writeChunk = 8192

// Write encodes h and values to w. h.Count is set to len(values).
func Write(w io.Writer, h Header, values []int64) error {
	h.Count = int64(len(values))
	hb, err := EncodeHeader(&h)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(w, 1<<16)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	buf := make([]byte, writeChunk*ValueWidth)
	for len(values) > 0 {
		n := min(len(values), writeChunk)
		for i, v := range values[:n] {
			binary.LittleEndian.PutUint64(buf[i*ValueWidth:], uint64(v))
		}
		if _, err := bw.Write(buf[:n*ValueWidth]); err != nil {
			return err
		}
		values = values[n:]
	}
	return bw.Flush()
}

// WriteFile writes a dataset to path.
func WriteFile(path string, h Header, values []int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, h, values); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// WriteFileAtomic writes the dataset to path+".tmp", then renames it over path.
// On Windows, the target must not exist for Rename to succeed; remove it first.
func WriteFileAtomic(path string, h Header, values []int64) error {
	tmp := path + ".tmp"
	if err := WriteFile(tmp, h, values); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	_ = os.Remove(path) // ignore error if not exists
	return os.Rename(tmp, path)
}

// ReadFile decodes the dataset at path onto the heap.
func ReadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	r := bufio.NewReaderSize(f, 1<<16)
	hb := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, hb); err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrTruncated)
	}
	h, err := DecodeHeader(hb)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := payloadSize(h, st.Size()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	values := make([]int64, h.Count)
	buf := make([]byte, writeChunk*ValueWidth)
	for off := 0; off < len(values); {
		n := min(len(values)-off, writeChunk)
		if _, err := io.ReadFull(r, buf[:n*ValueWidth]); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for i := 0; i < n; i++ {
			values[off+i] = int64(binary.LittleEndian.Uint64(buf[i*ValueWidth:]))
		}
		off += n
	}
	return &heapDataset{h: h, values: values}, nil
}
