package location

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/rushteam/craftrec/core"
)

// Matcher 把自由文本地点解析为索引键。
type Matcher struct {
	// Cutoff 是最低接受相似度，<=0 时使用 core.FuzzyMatchCutoff
	Cutoff float64
}

func NewMatcher(cutoff float64) *Matcher {
	return &Matcher{Cutoff: cutoff}
}

// Match 解析 key：空串直接判为未命中；先精确查找，再对全部键做模糊匹配，
// 只接受相似度最高且 >= Cutoff 的那一个键。
func (m *Matcher) Match(key string, idx *Index) (string, bool) {
	k := Normalize(key)
	if k == "" || idx == nil {
		return "", false
	}
	if _, ok := idx.Lookup(k); ok {
		return k, true
	}

	cutoff := core.FuzzyMatchCutoff
	if m != nil && m.Cutoff > 0 {
		cutoff = m.Cutoff
	}

	target := runes(k)
	best, bestRatio := "", -1.0
	for _, cand := range idx.Keys() {
		sm := difflib.NewMatcher(runes(cand), target)
		// RealQuickRatio/QuickRatio 都是 Ratio 的上界，先用它们剪枝
		if sm.RealQuickRatio() < cutoff || sm.QuickRatio() < cutoff {
			continue
		}
		r := sm.Ratio()
		if r >= cutoff && r > bestRatio {
			best, bestRatio = cand, r
		}
	}
	if bestRatio < 0 {
		return "", false
	}
	return best, true
}

// Ratio 返回两个已归一化字符串的相似度，取值 [0,1]。
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
