// Package store provides the dataset file format and mmap-backed reader used by
// finder.FindInFile, cmd/gapscan and the storage bench stage.
//
// The file format consists of:
//   - Header (64 bytes): magic, version, value width, N, count, missing, seed
//   - Values: count little-endian int64 present values, in file order
package store
