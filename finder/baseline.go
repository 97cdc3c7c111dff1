package finder

import (
	"fmt"
)

// BruteForceBudget bounds n*len(present) for the quadratic baselines.
const BruteForceBudget = int64(1e10)

// FindReference resolves missing values with a bitmap over the whole domain.
// It costs N bits and is the oracle the partitioning kernel is tested against.
func FindReference(n int64, present []int64) ([]int64, error) {
	k, err := checkDomain(n, present)
	if err != nil {
		return nil, err
	}
	seen := newBitmap(n)
	for _, x := range present {
		if x < 0 || x >= n {
			return nil, integrityFault(0, n-1, int64(len(present)), fmt.Sprintf("value %d outside the domain", x))
		}
		if seen.set(x) {
			return nil, integrityFault(0, n-1, int64(len(present)), fmt.Sprintf("value %d present more than once", x))
		}
	}
	return seen.appendUnset(make([]int64, 0, k), 0, n), nil
}

// FindBruteForce tests every value of the domain with a linear scan of present.
func FindBruteForce(n int64, present []int64) ([]int64, error) {
	k, err := checkBudget(n, present)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, k)
	for i := int64(0); i < n; i++ {
		found := false
		for _, x := range present {
			if x == i {
				found = true
				break
			}
		}
		if !found {
			out = append(out, i)
		}
	}
	return checkTotal(n, present, out, k)
}

// FindHashAssisted is FindBruteForce with a look-ahead cache: while scanning
// for i, values in (i, i+P] are remembered (up to P of them, P = n/25) so
// later iterations can skip the scan.
func FindHashAssisted(n int64, present []int64) ([]int64, error) {
	k, err := checkBudget(n, present)
	if err != nil {
		return nil, err
	}
	p := n / 25
	seen := make(map[int64]struct{}, p)
	out := make([]int64, 0, k)
	for i := int64(0); i < n; i++ {
		if _, ok := seen[i]; ok {
			delete(seen, i)
			continue
		}
		found := false
		for _, x := range present {
			if x == i {
				found = true
				break
			}
			if int64(len(seen)) < p && x > i && x <= i+p {
				seen[x] = struct{}{}
			}
		}
		if !found {
			out = append(out, i)
		}
	}
	return checkTotal(n, present, out, k)
}

func checkBudget(n int64, present []int64) (int64, error) {
	k, err := checkDomain(n, present)
	if err != nil {
		return 0, err
	}
	if m := int64(len(present)); m > 0 && n > BruteForceBudget/m {
		return 0, fmt.Errorf("%w: n=%d present=%d", ErrBudgetExceeded, n, m)
	}
	return k, nil
}

// checkTotal rejects a result whose size disagrees with the counts, which is how
// duplicates and out-of-domain values show up in the scanning baselines.
func checkTotal(n int64, present, out []int64, k int64) ([]int64, error) {
	if int64(len(out)) != k {
		return nil, integrityFault(0, n-1, int64(len(present)),
			fmt.Sprintf("found %d missing values, expected %d", len(out), k))
	}
	return out, nil
}
