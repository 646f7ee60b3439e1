package core

// Product 是目录中的商品，目录加载后不可变。
type Product struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	City        string   `json:"city" yaml:"city"`
	State       string   `json:"state" yaml:"state"`
	Price       float64  `json:"price" yaml:"price" validate:"gte=0"`
	Popularity  int      `json:"popularity" yaml:"popularity" validate:"gte=0,lte=100"`
}

// HasTag 判断商品是否带有某个标签（精确匹配）。
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TagSet 返回标签集合。
func (p *Product) TagSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Tags))
	for _, t := range p.Tags {
		set[t] = struct{}{}
	}
	return set
}
