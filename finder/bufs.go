package finder

// frameBufs holds one resolver's reusable buffers: the bounded bitmap and, per
// recursion depth, the child-count and subset slices. Siblings at one depth
// share a slot; a child only touches deeper slots, so the parent's stay intact.
type frameBufs struct {
	bitmap  *bitmap
	counts  [][]int64
	subsets [][]int64
}

func newFrameBufs(bitmapBits int) *frameBufs {
	return &frameBufs{
		bitmap:  newBitmap(int64(bitmapBits)),
		counts:  make([][]int64, 0, 16),
		subsets: make([][]int64, 0, 16),
	}
}

// countsAt returns a zeroed slice of n counters for depth.
func (b *frameBufs) countsAt(depth, n int) []int64 {
	for len(b.counts) <= depth {
		b.counts = append(b.counts, nil)
	}
	if cap(b.counts[depth]) < n {
		b.counts[depth] = make([]int64, n)
	}
	c := b.counts[depth][:n]
	clear(c)
	return c
}

// subsetAt returns an empty slice with room for n values for depth.
func (b *frameBufs) subsetAt(depth, n int) []int64 {
	for len(b.subsets) <= depth {
		b.subsets = append(b.subsets, nil)
	}
	if cap(b.subsets[depth]) < n {
		b.subsets[depth] = make([]int64, 0, n)
	}
	return b.subsets[depth][:0]
}
