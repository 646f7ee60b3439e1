package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/pkg/dsl"
	"github.com/rushteam/craftrec/pkg/logging"
)

// Source 提供目录商品列表。引擎只读，不回写。
type Source interface {
	Name() string
	Load(ctx context.Context) ([]core.Product, error)
}

// StaticSource 是内存中的固定商品列表，用于测试和嵌入式使用。
type StaticSource []core.Product

func (s StaticSource) Name() string { return "static" }

func (s StaticSource) Load(context.Context) ([]core.Product, error) {
	out := make([]core.Product, len(s))
	copy(out, s)
	return out, nil
}

// FileSource 从 JSON（数组）或 YAML（列表）文件加载目录，按扩展名选择解析器。
// 每个商品都做字段校验；ExcludeExpr 命中的商品在加载时剔除。
type FileSource struct {
	Path string

	// ExcludeExpr 是可选的 CEL 规则，见 dsl.Rule
	ExcludeExpr string

	validate *validator.Validate
}

// NewFileSource 创建文件目录源，规则编译失败时返回错误。
func NewFileSource(path, excludeExpr string) (*FileSource, error) {
	if _, err := dsl.NewRule(excludeExpr); err != nil {
		return nil, fmt.Errorf("catalog: exclude rule: %w", err)
	}
	return &FileSource{Path: path, ExcludeExpr: excludeExpr, validate: validator.New()}, nil
}

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) Load(ctx context.Context) ([]core.Product, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", s.Path, err)
	}
	products, err := Decode(filepath.Ext(s.Path), data)
	if err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", s.Path, err)
	}

	validate := s.validate
	if validate == nil {
		validate = validator.New()
	}
	rule, err := dsl.NewRule(s.ExcludeExpr)
	if err != nil {
		return nil, fmt.Errorf("catalog: exclude rule: %w", err)
	}

	log := logging.Component("catalog")
	out := products[:0]
	for i := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := &products[i]
		if err := validate.Struct(p); err != nil {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
				fmt.Sprintf("catalog: product %d: %v", p.ID, err))
		}
		excluded, err := rule.Match(p)
		if err != nil {
			return nil, fmt.Errorf("catalog: exclude rule on product %d: %w", p.ID, err)
		}
		if excluded {
			log.Debug().Int64("product_id", p.ID).Str("rule", rule.String()).Msg("product excluded")
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// Decode 按扩展名（.json / .yaml / .yml）解析商品列表。
func Decode(ext string, data []byte) ([]core.Product, error) {
	var products []core.Product
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json", "":
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	return products, nil
}

// Load 从 src 读取商品并构建快照。
func Load(ctx context.Context, src Source, opts Options) (*Snapshot, error) {
	products, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Build(ctx, products, opts)
}
