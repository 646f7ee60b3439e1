package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix 是环境变量前缀。
const EnvPrefix = "CRAFTREC_"

// DefaultPaths 是未显式指定配置文件时依次查找的路径，取第一个存在的。
var DefaultPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/craftrec/config.yaml",
}

// 含嵌套结构的配置节，环境变量中第二段需要再拆一层
var nestedSections = map[string][]string{
	"recommend": {"weights"},
}

// Load 按 默认值 → 配置文件 → 环境变量 的顺序加载并校验配置。
// path 为空时在 DefaultPaths 中查找，都不存在则跳过文件层；
// 显式指定的 path 不存在时返回错误。
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envKey 把环境变量名转换为配置路径：
//
//	CRAFTREC_STORE_BACKEND                  → store.backend
//	CRAFTREC_RECOMMEND_TOP_K                → recommend.top_k
//	CRAFTREC_RECOMMEND_WEIGHTS_LOCATION_CITY → recommend.weights.location_city
//
// 无法识别配置节的变量返回空串，被 koanf 忽略。
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" {
		return ""
	}
	switch section {
	case "server", "catalog", "store", "recommend", "log":
	default:
		return ""
	}
	for _, sub := range nestedSections[section] {
		if field, found := strings.CutPrefix(rest, sub+"_"); found && field != "" {
			return section + "." + sub + "." + field
		}
	}
	return section + "." + rest
}
