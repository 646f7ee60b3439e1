package feature

// MinMaxNormalizer Min-Max 归一化
// 公式: x' = (x - min) / (max - min)
// 特点: 将每一列独立缩放到 [0, 1] 区间；极差为 0 的列全部映射为 0
type MinMaxNormalizer struct {
	Min []float64 // 每列最小值
	Max []float64 // 每列最大值
}

// FitMinMax 按列统计 rows 的最小/最大值。rows 为空时返回零维归一化器。
func FitMinMax(rows [][]float64) *MinMaxNormalizer {
	if len(rows) == 0 {
		return &MinMaxNormalizer{}
	}
	dim := len(rows[0])
	n := &MinMaxNormalizer{
		Min: make([]float64, dim),
		Max: make([]float64, dim),
	}
	copy(n.Min, rows[0])
	copy(n.Max, rows[0])
	for _, row := range rows[1:] {
		for j, v := range row {
			if v < n.Min[j] {
				n.Min[j] = v
			}
			if v > n.Max[j] {
				n.Max[j] = v
			}
		}
	}
	return n
}

// NormalizeValueWithKey 归一化第 col 列的单个值
func (n *MinMaxNormalizer) NormalizeValueWithKey(col int, value float64) float64 {
	rangeVal := n.Max[col] - n.Min[col]
	if rangeVal > 0 {
		return (value - n.Min[col]) / rangeVal
	}
	return 0
}

// Transform 原地归一化一行。
func (n *MinMaxNormalizer) Transform(row []float64) {
	for j := range row {
		row[j] = n.NormalizeValueWithKey(j, row[j])
	}
}

// MinMaxScale 拟合并原地归一化全部行，返回拟合出的归一化器。
func MinMaxScale(rows [][]float64) *MinMaxNormalizer {
	n := FitMinMax(rows)
	for _, row := range rows {
		n.Transform(row)
	}
	return n
}
