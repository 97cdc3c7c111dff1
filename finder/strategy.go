package finder

import "fmt"

// Strategy is a named way to find missing values, as run by the bench harness.
type Strategy struct {
	Name string
	Find func(n int64, present []int64) ([]int64, error)
	// Budget caps N*K for sweeps; 0 means unbounded.
	Budget int64
}

// Strategies lists the baselines followed by the kernel presets, slowest first.
func Strategies() []Strategy {
	return []Strategy{
		{Name: "brute", Find: FindBruteForce, Budget: 100_000},
		{Name: "hashed", Find: FindHashAssisted, Budget: 10_000_000},
		{Name: "reference", Find: FindReference},
		{Name: "halving", Find: New(HalvingConfig()).Find, Budget: 100_000_000},
		{Name: "bisect", Find: New(BisectConfig()).Find},
		{Name: "quad", Find: New(QuadConfig()).Find},
		{Name: "wide", Find: New(WideConfig()).Find},
		{Name: "bucketed", Find: func(n int64, present []int64) ([]int64, error) {
			return New(BucketedConfig(n)).Find(n, present)
		}},
		{Name: "hybrid", Find: defaultFinder.Find},
	}
}

// StrategyByName returns the strategy registered under name.
func StrategyByName(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if s.Name == name {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("unknown strategy %q", name)
}

// Allowed reports whether the strategy accepts an (n, k) instance under its budget.
func (s Strategy) Allowed(n, k int64) bool {
	if s.Budget == 0 || k == 0 {
		return true
	}
	return n <= s.Budget/k
}
