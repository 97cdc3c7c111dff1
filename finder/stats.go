package finder

import "time"

// Stats describes the work done by one Find call.
type Stats struct {
	FullRanges         int64 // ranges found complete
	EmptyRanges        int64 // ranges with no present value, emitted wholesale
	ChecksumRecoveries int64 // single-miss ranges resolved by checksum
	BitmapResolves     int64 // small ranges resolved by bitmap
	Subdivisions       int64 // ranges split into children
	Gathers            int64 // subdivisions that copied their elements into a subset
	ElementsScanned    int64 // elements read across all passes
	MaxDepth           int
	Buckets            int // buckets of the global pre-pass, 0 when disabled
	Workers            int // goroutines used for bucket resolution
	BitmapBytes        int // bitmap memory held across resolvers, 0 when no range used it
	Duration           time.Duration
}

// Ranges returns the number of ranges classified.
func (s Stats) Ranges() int64 {
	return s.FullRanges + s.EmptyRanges + s.ChecksumRecoveries + s.BitmapResolves + s.Subdivisions
}

func (s *Stats) merge(o Stats) {
	s.FullRanges += o.FullRanges
	s.EmptyRanges += o.EmptyRanges
	s.ChecksumRecoveries += o.ChecksumRecoveries
	s.BitmapResolves += o.BitmapResolves
	s.Subdivisions += o.Subdivisions
	s.Gathers += o.Gathers
	s.ElementsScanned += o.ElementsScanned
	s.MaxDepth = max(s.MaxDepth, o.MaxDepth)
}
