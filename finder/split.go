package finder

// split cuts [lo, hi] into contiguous slices of equal width; the last slice
// absorbs the remainder. Children are disjoint and cover the parent exactly.
type split struct {
	lo, hi int64
	width  int64
	n      int
}

func newSplit(lo, hi, fanout int64) split {
	size := hi - lo + 1
	width := size / fanout
	if size%fanout != 0 {
		width++
	}
	n := size / width
	if size%width != 0 {
		n++
	}
	return split{lo: lo, hi: hi, width: width, n: int(n)}
}

// child returns the bounds of slice i.
func (s split) child(i int) (from, to int64) {
	from = s.lo + int64(i)*s.width
	if s.hi-from < s.width {
		return from, s.hi
	}
	return from, from + s.width - 1
}

// indexOf maps an offset from lo to its slice.
func (s split) indexOf(offset uint64) int {
	return int(offset / uint64(s.width))
}
