// Package gen 提供压测用缺失值数据集生成
package gen

import (
	"math/rand"
	"slices"
)

// Dataset 生成 [0, n) 中随机去掉 k 个不同值后的数据集。
// present 为打乱顺序的剩余值，missing 为升序排列的被去掉的值；同一 seed 结果可复现。
func Dataset(n, k, seed int64) (present, missing []int64) {
	if n <= 0 {
		return nil, nil
	}
	k = max(0, min(k, n))
	rng := rand.New(rand.NewSource(seed))
	all := make([]int64, n)
	for i := range all {
		all[i] = int64(i)
	}
	// 部分 Fisher-Yates：前 k 个位置即为无重复的随机样本
	for i := int64(0); i < k; i++ {
		j := i + rng.Int63n(n-i)
		all[i], all[j] = all[j], all[i]
	}
	missing = slices.Clone(all[:k])
	slices.Sort(missing)
	present = all[k:]
	rng.Shuffle(len(present), func(i, j int) { present[i], present[j] = present[j], present[i] })
	return present, missing
}

// Corrupt 返回 present 的副本，把第 i 个值替换为另一个已存在的值，制造一次重复。
func Corrupt(present []int64, i int) []int64 {
	out := slices.Clone(present)
	if len(out) < 2 {
		return out
	}
	i %= len(out)
	out[i] = out[(i+1)%len(out)]
	return out
}
