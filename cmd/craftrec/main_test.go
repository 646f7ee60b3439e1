package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"

	"github.com/rushteam/craftrec/recommend"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "products.json")
	if err := os.WriteFile(catalogPath, []byte(`[
		{"id":1,"name":"Blue Vase","description":"pottery","tags":["pottery"],"city":"Jaipur","state":"Rajasthan","price":50,"popularity":80},
		{"id":2,"name":"Marble Inlay","description":"marble","tags":["marble"],"city":"Agra","state":"Uttar Pradesh","price":200,"popularity":90}
	]`), 0o600); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "catalog:\n  path: " + catalogPath + "\n  watch: false\nstore:\n  backend: memory\nlog:\n  level: disabled\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func runCmd(t *testing.T, args ...string) (*recommend.Response, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var resp recommend.Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	return &resp, nil
}

func TestRecommendCmd(t *testing.T) {
	cfg := writeFixture(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"recommend"}, "global"},
		{[]string{"recommend", "--city", "jaipur"}, "location"},
		{[]string{"recommend", "--similar-to", "1"}, "similar"},
		{[]string{"recommend", "-q", "marble"}, "global_search"},
	}
	for _, tt := range tests {
		resp, err := runCmd(t, append([]string{"--config", cfg}, tt.args...)...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if resp.Source != tt.want {
			t.Errorf("%v: source = %s, want %s", tt.args, resp.Source, tt.want)
		}
	}
}

func TestRecommendCmd_MissingCatalog(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "catalog:\n  path: " + filepath.Join(dir, "missing.json") + "\nstore:\n  backend: memory\nlog:\n  level: disabled\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	resp, err := runCmd(t, "--config", cfgPath, "recommend")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Source != "global" || len(resp.Products) != 0 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestRecommendCmd_BadConfig(t *testing.T) {
	if _, err := runCmd(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "recommend"); err == nil {
		t.Error("want error for missing config file")
	}
}
