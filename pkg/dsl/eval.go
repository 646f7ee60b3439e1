package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/craftrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("product", cel.MapType(cel.StringType, cel.DynType)),
		)
	})
	return celEnv, celEnvErr
}

// Rule 是作用于商品的布尔规则，使用 CEL (Common Expression Language) 编写。
// 目录加载时用它剔除运营不希望上架的商品，不是面向用户的查询语言。
//
// 可用字段：product.id / name / description / tags / city / state / price / popularity
//
// 示例：
//   - `product.price == 0.0` → 剔除零价商品
//   - `"discontinued" in product.tags` → 剔除下架标签
//   - `product.popularity < 5 && product.city == ""` → 冷门且无地点
type Rule struct {
	expr string
	prg  cel.Program
}

// NewRule 编译表达式；表达式必须返回 bool。空表达式返回 (nil, nil)。
func NewRule(expr string) (*Rule, error) {
	if expr == "" {
		return nil, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if t := ast.OutputType(); !t.IsExactType(cel.BoolType) && !t.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression must return bool, got %s", ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Rule{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (r *Rule) String() string {
	if r == nil {
		return ""
	}
	return r.expr
}

// Match 对单个商品求值。nil 规则永远不命中。
func (r *Rule) Match(p *core.Product) (bool, error) {
	if r == nil || p == nil {
		return false, nil
	}
	out, _, err := r.prg.Eval(map[string]any{"product": buildInput(p)})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(p *core.Product) map[string]any {
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"tags":        tags,
		"city":        p.City,
		"state":       p.State,
		"price":       p.Price,
		"popularity":  int64(p.Popularity),
	}
}
