package finder

import "math/bits"

// bitmap is a fixed-capacity presence marker. Resolvers reset and refill the same
// words for every small range instead of allocating per range.
type bitmap struct {
	words []uint64
}

func newBitmap(nbits int64) *bitmap {
	if nbits < 1 {
		nbits = 1
	}
	return &bitmap{words: make([]uint64, (nbits+63)/64)}
}

// reset clears the words covering bits [0, n).
func (b *bitmap) reset(n int64) {
	clear(b.words[:(n+63)/64])
}

// set marks bit i and reports whether it was already marked.
func (b *bitmap) set(i int64) bool {
	w, m := i>>6, uint64(1)<<(uint(i)&63)
	was := b.words[w]&m != 0
	b.words[w] |= m
	return was
}

// appendUnset appends base+i for every unmarked bit i < n, in ascending order.
func (b *bitmap) appendUnset(dst []int64, base, n int64) []int64 {
	nw := (n + 63) / 64
	for w := int64(0); w < nw; w++ {
		free := ^b.words[w]
		if w == nw-1 && n%64 != 0 {
			free &= uint64(1)<<(uint(n)%64) - 1
		}
		for free != 0 {
			dst = append(dst, base+w*64+int64(bits.TrailingZeros64(free)))
			free &= free - 1
		}
	}
	return dst
}
