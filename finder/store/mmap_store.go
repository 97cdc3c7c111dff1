package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

var _ Dataset = (*MmapDataset)(nil)

// MmapDataset is a Dataset backed by an mmap'd file.
type MmapDataset struct {
	f      *os.File
	data   mmap.MMap
	h      *Header
	values []int64
}

// OpenMmap opens a dataset file and maps it read-only. On little-endian hosts
// Values aliases the mapping; otherwise the values are decoded into a copy.
func OpenMmap(path string) (*MmapDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	s := &MmapDataset{f: f, data: m}
	if err := s.init(); err != nil {
		s.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *MmapDataset) init() error {
	h, err := DecodeHeader(s.data)
	if err != nil {
		return err
	}
	size, err := payloadSize(h, int64(len(s.data)))
	if err != nil {
		return err
	}
	s.h = h
	if h.Count == 0 {
		return nil
	}
	payload := s.data[HeaderSize : HeaderSize+size]
	if littleEndian() {
		// 页对齐映射，头部 64 字节，因此 payload 满足 8 字节对齐
		s.values = unsafe.Slice((*int64)(unsafe.Pointer(&payload[0])), h.Count)
		return nil
	}
	s.values = make([]int64, h.Count)
	for i := range s.values {
		s.values[i] = int64(binary.LittleEndian.Uint64(payload[i*ValueWidth:]))
	}
	return nil
}

func littleEndian() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}

// Header returns the decoded header.
func (s *MmapDataset) Header() *Header { return s.h }

// Values returns the present values. The slice is valid until Close.
func (s *MmapDataset) Values() []int64 { return s.values }

// Bytes returns the full mapped file.
func (s *MmapDataset) Bytes() []byte { return s.data }

// Close unmaps the file and closes it.
func (s *MmapDataset) Close() error {
	s.values = nil
	if s.data != nil {
		if err := s.data.Unmap(); err != nil {
			return err
		}
		s.data = nil
	}
	if s.f != nil {
		err := s.f.Close()
		s.f = nil
		return err
	}
	return nil
}
