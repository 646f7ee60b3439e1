package location

import (
	"sort"
	"strings"
)

// Normalize 归一化地点文本：去首尾空白、转小写；空白串归一为 ""。
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Index 是 归一化键 → 商品位置列表 的只读索引，桶内保持目录顺序。
type Index struct {
	buckets map[string][]int
	keys    []string // 字典序，不含 ""
}

// NewIndex 按 key(i) 为 [0, n) 的每个位置建桶。
func NewIndex(n int, key func(i int) string) *Index {
	idx := &Index{buckets: make(map[string][]int)}
	for i := 0; i < n; i++ {
		k := Normalize(key(i))
		idx.buckets[k] = append(idx.buckets[k], i)
	}
	idx.keys = make([]string, 0, len(idx.buckets))
	for k := range idx.buckets {
		if k == "" {
			continue
		}
		idx.keys = append(idx.keys, k)
	}
	sort.Strings(idx.keys)
	return idx
}

// Lookup 精确查找已归一化的键。
func (x *Index) Lookup(key string) ([]int, bool) {
	if x == nil {
		return nil, false
	}
	b, ok := x.buckets[key]
	return b, ok
}

// Keys 返回可作为匹配目标的键（字典序，不含 ""）。调用方不得修改返回值。
func (x *Index) Keys() []string {
	if x == nil {
		return nil
	}
	return x.keys
}

// Len 返回桶数（含 "" 桶）。
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.buckets)
}
