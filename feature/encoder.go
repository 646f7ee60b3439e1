package feature

import "sort"

// OneHotEncoder One-Hot 编码（独热编码）
// 将标签集合转换为二进制向量，每个标签对应一个维度。
//
// 维度顺序在构建时按字典序固定一次，同一目录快照内所有商品共享，
// 保证多次构建、多次运行得到相同的列布局。
type OneHotEncoder struct {
	Categories []string       // 字典序的标签全集
	index      map[string]int // 标签 → 列号
}

// NewOneHotEncoder 以全部商品的标签集合构建编码器，重复标签只计一次。
func NewOneHotEncoder(tagSets [][]string) *OneHotEncoder {
	seen := make(map[string]struct{})
	for _, tags := range tagSets {
		for _, t := range tags {
			seen[t] = struct{}{}
		}
	}
	cats := make([]string, 0, len(seen))
	for t := range seen {
		cats = append(cats, t)
	}
	sort.Strings(cats)

	idx := make(map[string]int, len(cats))
	for i, c := range cats {
		idx[c] = i
	}
	return &OneHotEncoder{Categories: cats, index: idx}
}

// Dim 返回编码后的维度数。
func (e *OneHotEncoder) Dim() int {
	return len(e.Categories)
}

// Encode 编码一个标签集合；未知标签被忽略。
func (e *OneHotEncoder) Encode(tags []string) []float64 {
	out := make([]float64, len(e.Categories))
	for _, t := range tags {
		if i, ok := e.index[t]; ok {
			out[i] = 1
		}
	}
	return out
}

// AppendEncoded 把编码结果追加到 dst 后返回，避免多一次分配。
func (e *OneHotEncoder) AppendEncoded(dst []float64, tags []string) []float64 {
	start := len(dst)
	for range e.Categories {
		dst = append(dst, 0)
	}
	for _, t := range tags {
		if i, ok := e.index[t]; ok {
			dst[start+i] = 1
		}
	}
	return dst
}
