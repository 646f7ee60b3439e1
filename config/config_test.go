package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rushteam/craftrec/core"
)

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CRAFTREC_STORE_BACKEND", "store.backend"},
		{"CRAFTREC_STORE_SQLITE_PATH", "store.sqlite_path"},
		{"CRAFTREC_RECOMMEND_TOP_K", "recommend.top_k"},
		{"CRAFTREC_RECOMMEND_WEIGHTS_LOCATION_CITY", "recommend.weights.location_city"},
		{"CRAFTREC_SERVER_ADDR", "server.addr"},
		{"CRAFTREC_LOG_LEVEL", "log.level"},
		{"CRAFTREC_UNKNOWN_THING", ""},
		{"CRAFTREC_STORE", ""},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Recommend.TopK != core.DefaultTopK || cfg.Recommend.Weights != core.DefaultWeights() {
		t.Errorf("recommend = %+v", cfg.Recommend)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Store.Backend != "sqlite" {
		t.Errorf("backend = %q", cfg.Store.Backend)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "craftrec.yaml")
	data := []byte(`
server:
  addr: ":9000"
  read_timeout: 3s
catalog:
  path: /srv/products.yaml
  exclude_expr: 'product.price > 1000.0'
store:
  backend: memory
recommend:
  top_k: 10
  weights:
    location_city: 0.9
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CRAFTREC_RECOMMEND_TOP_K", "12")
	t.Setenv("CRAFTREC_STORE_BACKEND", "redis")
	t.Setenv("CRAFTREC_STORE_REDIS_ADDR", "redis:6379")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Catalog.Path != "/srv/products.yaml" || cfg.Catalog.ExcludeExpr == "" {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.Recommend.TopK != 12 {
		t.Errorf("env should win: top_k = %d", cfg.Recommend.TopK)
	}
	if cfg.Recommend.Weights.LocationCity != 0.9 {
		t.Errorf("location_city = %v", cfg.Recommend.Weights.LocationCity)
	}
	// 文件中未出现的权重保留默认值
	if cfg.Recommend.Weights.LocationState != core.BonusLocationState {
		t.Errorf("location_state = %v", cfg.Recommend.Weights.LocationState)
	}
	if cfg.Store.Backend != "redis" || cfg.Store.RedisAddr != "redis:6379" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"CRAFTREC_STORE_BACKEND": "mongo"}},
		{"zero top_k", map[string]string{"CRAFTREC_RECOMMEND_TOP_K": "0"}},
		{"cutoff above one", map[string]string{"CRAFTREC_RECOMMEND_FUZZY_CUTOFF": "1.5"}},
		{"bad log level", map[string]string{"CRAFTREC_LOG_LEVEL": "loud"}},
		{"sqlite without path", map[string]string{"CRAFTREC_STORE_SQLITE_PATH": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("want error for missing explicit file")
	}
}
