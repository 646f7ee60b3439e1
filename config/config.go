// Package config 加载服务配置。
//
// 优先级（高 → 低）：环境变量 CRAFTREC_* > YAML 配置文件 > 内置默认值。
//
//	server:
//	  addr: ":8000"
//	catalog:
//	  path: data/products.json
//	  exclude_expr: '"discontinued" in product.tags'
//	store:
//	  backend: sqlite
//	  sqlite_path: craftrec.db
//	recommend:
//	  top_k: 24
//	  weights:
//	    location_city: 0.6
//	log:
//	  level: info
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/pkg/logging"
	"github.com/rushteam/craftrec/store"
)

// Config 是完整的服务配置。
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Store     store.Config    `koanf:"store"`
	Recommend RecommendConfig `koanf:"recommend"`
	Log       logging.Config  `koanf:"log"`
}

// ServerConfig 是 HTTP 服务配置。
type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`

	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit 是每个 IP 在 RateWindow 内允许的请求数，0 表示不限流
	RateLimit  int           `koanf:"rate_limit" validate:"gte=0"`
	RateWindow time.Duration `koanf:"rate_window" validate:"gte=0"`
}

// CatalogConfig 是目录加载配置。
type CatalogConfig struct {
	// Path 是 JSON 或 YAML 目录文件；文件不存在时以空目录启动
	Path string `koanf:"path" validate:"required"`

	// ExcludeExpr 是加载时剔除商品的 CEL 规则，可为空
	ExcludeExpr string `koanf:"exclude_expr"`

	// Watch 为 true 时监听文件变化并热加载
	Watch    bool          `koanf:"watch"`
	Debounce time.Duration `koanf:"debounce" validate:"gte=0"`

	MaxFeatures int `koanf:"max_features" validate:"gte=0"`
	Workers     int `koanf:"workers" validate:"gte=0"`
}

// RecommendConfig 是推荐参数。
type RecommendConfig struct {
	TopK        int          `koanf:"top_k" validate:"gt=0"`
	SimilarTopK int          `koanf:"similar_top_k" validate:"gt=0"`
	ClickWindow int          `koanf:"click_window" validate:"gt=0"`
	FuzzyCutoff float64      `koanf:"fuzzy_cutoff" validate:"gt=0,lte=1"`
	Weights     core.Weights `koanf:"weights"`
}

// Default 返回内置默认配置。
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimit:       600,
			RateWindow:      time.Minute,
		},
		Catalog: CatalogConfig{
			Path:        "data/products.json",
			Watch:       true,
			Debounce:    500 * time.Millisecond,
			MaxFeatures: core.MaxVocabulary,
		},
		Store: store.Config{
			Backend:        "sqlite",
			SQLitePath:     "craftrec.db",
			RedisAddr:      "127.0.0.1:6379",
			RedisKeyPrefix: "craftrec",
		},
		Recommend: RecommendConfig{
			TopK:        core.DefaultTopK,
			SimilarTopK: core.DefaultSimilarTopK,
			ClickWindow: core.DefaultClickWindow,
			FuzzyCutoff: core.FuzzyMatchCutoff,
			Weights:     core.DefaultWeights(),
		},
		Log: logging.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

var validate = validator.New()

// Validate 校验配置。
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Store.Backend {
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("config: store.sqlite_path is required for the sqlite backend")
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("config: store.redis_addr is required for the redis backend")
		}
	}
	return nil
}
