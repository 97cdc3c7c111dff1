package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// HeaderSize is the fixed header size.
	HeaderSize = 64

	// Magic identifies a gapscan dataset file.
	Magic = "GPSC"

	// FormatVersion is the current file format version.
	FormatVersion uint16 = 1

	// ValueWidth is the byte width of one stored value.
	ValueWidth = 8
)

var (
	// ErrBadHeader indicates a file that is not a dataset of this version.
	ErrBadHeader = errors.New("store: bad header")
	// ErrTruncated indicates a file shorter than its header claims.
	ErrTruncated = errors.New("store: truncated file")
)

// Header holds the dataset metadata.
type Header struct {
	Magic      [4]byte
	Version    uint16
	ValueWidth uint16
	N          int64 // domain size, values lie in [0, N)
	Count      int64 // number of stored values
	Missing    int64 // K, the number of absent values, or -1 if unknown
	Seed       int64 // generator seed, 0 if not generated
	Reserved   [24]byte
}

// EncodeHeader writes the header to a byte slice of HeaderSize bytes.
func EncodeHeader(h *Header) ([]byte, error) {
	if h == nil {
		return nil, errors.New("header is nil")
	}
	copy(h.Magic[:], Magic)
	h.Version = FormatVersion
	h.ValueWidth = ValueWidth
	var w bytes.Buffer
	w.Grow(HeaderSize)
	if err := binary.Write(&w, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// DecodeHeader reads the header from src and checks magic, version and width.
func DecodeHeader(src []byte) (*Header, error) {
	if len(src) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(src))
	}
	var h Header
	if err := binary.Read(bytes.NewReader(src[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	switch {
	case string(h.Magic[:]) != Magic:
		return nil, fmt.Errorf("%w: magic %q", ErrBadHeader, h.Magic[:])
	case h.Version != FormatVersion:
		return nil, fmt.Errorf("%w: version %d", ErrBadHeader, h.Version)
	case h.ValueWidth != ValueWidth:
		return nil, fmt.Errorf("%w: value width %d", ErrBadHeader, h.ValueWidth)
	case h.N < 1 || h.Count < 0:
		return nil, fmt.Errorf("%w: n=%d count=%d", ErrBadHeader, h.N, h.Count)
	}
	return &h, nil
}

// payloadSize returns the byte length of the values section, checking src holds it.
func payloadSize(h *Header, fileSize int64) (int64, error) {
	avail := fileSize - HeaderSize
	if h.Count > avail/ValueWidth {
		return 0, fmt.Errorf("%w: %d values, have %d bytes", ErrTruncated, h.Count, avail)
	}
	return h.Count * ValueWidth, nil
}
