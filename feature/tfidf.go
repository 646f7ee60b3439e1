package feature

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenRegex 匹配至少两个字符的词（字母、数字、下划线）
var tokenRegex = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize 小写化后切词，并去掉停用词。
func Tokenize(text string) []string {
	raw := tokenRegex.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, w := range raw {
		if IsStopWord(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// SparseVector 是按列号升序存储的稀疏向量。
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len 返回非零元个数。
func (v SparseVector) Len() int { return len(v.Indices) }

// Dot 计算两个稀疏向量的点积。两者都已 L2 归一化时即为余弦相似度。
func Dot(a, b SparseVector) float64 {
	var s float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			s += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return s
}

// Vectorizer 是固定词表的 TF-IDF 内容向量器，构建后只读。
//
//   - 词表：按文档频率降序取前 MaxFeatures 个词，文档频率相同按字典序
//   - IDF：ln((1+n)/(1+df)) + 1
//   - 每行向量做 L2 归一化
//
// 语料为空或词表为空时向量器处于禁用状态，Enabled 返回 false。
type Vectorizer struct {
	vocab map[string]int
	terms []string
	idf   []float64
	rows  []SparseVector
}

// NewVectorizer 用语料拟合词表并计算语料矩阵。maxFeatures <= 0 表示不限制。
func NewVectorizer(docs []string, maxFeatures int) *Vectorizer {
	v := &Vectorizer{}
	if len(docs) == 0 {
		return v
	}

	tokens := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokens[i] = Tokenize(doc)
		seen := make(map[string]struct{}, len(tokens[i]))
		for _, t := range tokens[i] {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	if len(df) == 0 {
		return v
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	// 列号按字典序分配，与选词顺序无关
	sort.Strings(terms)

	n := float64(len(docs))
	v.terms = terms
	v.vocab = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, t := range terms {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	v.rows = make([]SparseVector, len(docs))
	for i := range tokens {
		v.rows[i] = v.transform(tokens[i])
	}
	return v
}

// Enabled 报告向量器是否可用。
func (v *Vectorizer) Enabled() bool {
	return v != nil && len(v.terms) > 0
}

// VocabularySize 返回词表大小。
func (v *Vectorizer) VocabularySize() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Terms 返回按列号排列的词表。调用方不得修改返回值。
func (v *Vectorizer) Terms() []string {
	if v == nil {
		return nil
	}
	return v.terms
}

// Row 返回第 i 个文档的向量。
func (v *Vectorizer) Row(i int) SparseVector {
	return v.rows[i]
}

// Rows 返回语料矩阵的行数。
func (v *Vectorizer) Rows() int {
	if v == nil {
		return 0
	}
	return len(v.rows)
}

// Vectorize 把任意文本映射到已拟合的向量空间；不在词表里的词被忽略。
func (v *Vectorizer) Vectorize(text string) SparseVector {
	if !v.Enabled() {
		return SparseVector{}
	}
	return v.transform(Tokenize(text))
}

// Mean 返回若干行的算术平均（不再归一化）。rows 可以重复，重复的行按次数计权。
func (v *Vectorizer) Mean(rows []int) SparseVector {
	if len(rows) == 0 {
		return SparseVector{}
	}
	acc := make(map[int]float64)
	for _, r := range rows {
		row := v.rows[r]
		for k, col := range row.Indices {
			acc[col] += row.Values[k]
		}
	}
	out := SparseVector{
		Indices: make([]int, 0, len(acc)),
		Values:  make([]float64, 0, len(acc)),
	}
	for col := range acc {
		out.Indices = append(out.Indices, col)
	}
	sort.Ints(out.Indices)
	n := float64(len(rows))
	for _, col := range out.Indices {
		out.Values = append(out.Values, acc[col]/n)
	}
	return out
}

// Similarities 返回 q 与语料每一行的点积。
func (v *Vectorizer) Similarities(q SparseVector) []float64 {
	out := make([]float64, len(v.rows))
	if q.Len() == 0 {
		return out
	}
	for i, row := range v.rows {
		out[i] = Dot(q, row)
	}
	return out
}

func (v *Vectorizer) transform(tokens []string) SparseVector {
	tf := make(map[int]float64)
	for _, t := range tokens {
		if col, ok := v.vocab[t]; ok {
			tf[col]++
		}
	}
	if len(tf) == 0 {
		return SparseVector{}
	}
	out := SparseVector{
		Indices: make([]int, 0, len(tf)),
		Values:  make([]float64, 0, len(tf)),
	}
	for col := range tf {
		out.Indices = append(out.Indices, col)
	}
	sort.Ints(out.Indices)

	var norm float64
	for _, col := range out.Indices {
		w := tf[col] * v.idf[col]
		out.Values = append(out.Values, w)
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for k := range out.Values {
		out.Values[k] /= norm
	}
	return out
}
