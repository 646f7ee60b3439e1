package rank

import "github.com/rushteam/craftrec/feature"

// Dot 返回向量 q 与语料第 i 行的内容相似度。
func Dot(q feature.SparseVector, v *feature.Vectorizer, i int) float64 {
	if q.Len() == 0 {
		return 0
	}
	return feature.Dot(q, v.Row(i))
}
