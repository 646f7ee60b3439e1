package feature

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SimilarityMatrix 是 N×N 对称余弦相似度矩阵，对角线为 1，构建后只读。
//
// 时间 O(N²·D)、空间 O(N²)，是大目录下构建期的主要开销。
type SimilarityMatrix struct {
	n    int
	data []float64
}

// NewSimilarityMatrix 计算 rows 两两之间的余弦相似度。
// 每行一个任务，最多 workers 个并发；第 i 行任务只写 (i, j>=i) 及其对称位置，互不重叠。
// workers <= 0 时使用 GOMAXPROCS。
func NewSimilarityMatrix(ctx context.Context, rows [][]float64, workers int) (*SimilarityMatrix, error) {
	n := len(rows)
	m := &SimilarityMatrix{n: n, data: make([]float64, n*n)}
	if n == 0 {
		return m, nil
	}

	norms := make([]float64, n)
	for i, row := range rows {
		var s float64
		for _, v := range row {
			s += v * v
		}
		norms[i] = math.Sqrt(s)
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m.data[i*n+i] = 1
			for j := i + 1; j < n; j++ {
				var sim float64
				if norms[i] > 0 && norms[j] > 0 {
					var dot float64
					for k, v := range rows[i] {
						dot += v * rows[j][k]
					}
					sim = dot / (norms[i] * norms[j])
				}
				m.data[i*n+j] = sim
				m.data[j*n+i] = sim
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// Len 返回矩阵阶数。
func (m *SimilarityMatrix) Len() int {
	if m == nil {
		return 0
	}
	return m.n
}

// At 返回第 i 行第 j 列。
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row 返回第 i 行（只读视图）。
func (m *SimilarityMatrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n]
}
