package core

// 打分权重常量表。测试直接断言这些值，修改需同步评估线上效果。
const (
	// 个性化打分
	WeightPersonalPopularity = 0.25 // popularity/100 的系数
	WeightPersonalCategory   = 0.15 // 兴趣标签 Jaccard 的系数
	WeightPersonalFeature    = 0.20 // 与点击商品的平均特征相似度的系数
	BonusPersonalCity        = 0.30 // 偏好城市命中
	BonusPersonalState       = 0.15 // 偏好省份命中（城市未命中时）

	// 地点/搜索打分
	BonusLocationCity        = 0.6  // 匹配城市命中
	BonusLocationState       = 0.35 // 匹配省份命中（城市未命中时）
	WeightQueryContent       = 0.3  // 查询词与商品的内容相似度系数
	WeightLocationPopularity = 0.1  // popularity/100 的系数

	// FuzzyMatchCutoff 是地点模糊匹配的最低相似度
	FuzzyMatchCutoff = 0.6
)

// 默认规模参数
const (
	DefaultTopK        = 24   // 推荐结果条数
	DefaultSimilarTopK = 6    // 相似商品条数
	DefaultClickWindow = 50   // 个性化使用的最近点击数
	MaxVocabulary      = 1500 // 内容向量词表上限
)

// Weights 是可配置的打分权重，零值无意义，请从 DefaultWeights 开始修改。
type Weights struct {
	PersonalPopularity float64 `koanf:"personal_popularity" json:"personal_popularity"`
	PersonalCategory   float64 `koanf:"personal_category" json:"personal_category"`
	PersonalFeature    float64 `koanf:"personal_feature" json:"personal_feature"`
	PersonalCity       float64 `koanf:"personal_city" json:"personal_city"`
	PersonalState      float64 `koanf:"personal_state" json:"personal_state"`

	LocationCity       float64 `koanf:"location_city" json:"location_city"`
	LocationState      float64 `koanf:"location_state" json:"location_state"`
	QueryContent       float64 `koanf:"query_content" json:"query_content"`
	LocationPopularity float64 `koanf:"location_popularity" json:"location_popularity"`
}

// DefaultWeights 返回常量表对应的权重。
func DefaultWeights() Weights {
	return Weights{
		PersonalPopularity: WeightPersonalPopularity,
		PersonalCategory:   WeightPersonalCategory,
		PersonalFeature:    WeightPersonalFeature,
		PersonalCity:       BonusPersonalCity,
		PersonalState:      BonusPersonalState,
		LocationCity:       BonusLocationCity,
		LocationState:      BonusLocationState,
		QueryContent:       WeightQueryContent,
		LocationPopularity: WeightLocationPopularity,
	}
}
