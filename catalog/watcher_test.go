package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeCatalog(t *testing.T, path string, n int) {
	t.Helper()
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf(`{"id":%d,"name":"Item %d","description":"pottery","tags":["pottery"],"city":"Jaipur","state":"Rajasthan","price":10,"popularity":%d}`, i+1, i+1, i)
	}
	if err := os.WriteFile(path, []byte("["+strings.Join(rows, ",")+"]"), 0o600); err != nil {
		t.Fatal(err)
	}
}

// saveByRename 模拟编辑器保存：先写临时文件，再 rename 覆盖目标。
func saveByRename(t *testing.T, path string, n int) {
	t.Helper()
	tmp := path + ".tmp"
	writeCatalog(t, tmp, n)
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
}

func waitFor(t *testing.T, what string, cond func() bool, touch func()) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		if touch != nil {
			touch()
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	writeCatalog(t, path, 1)

	src, err := NewFileSource(path, "")
	if err != nil {
		t.Fatal(err)
	}
	h := NewHolder(nil)
	r := &Reloader{Source: src, Holder: h}
	if _, err := r.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- (&Watcher{Path: path, Reloader: r, Debounce: 20 * time.Millisecond}).Run(ctx)
	}()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run = %v", err)
		}
	}()

	// 监听注册是异步的，重复保存直到生效
	waitFor(t, "rename save", func() bool { return h.Current().Len() == 2 },
		func() { saveByRename(t, path, 2) })

	writeCatalog(t, path, 3)
	waitFor(t, "plain write", func() bool { return h.Current().Len() == 3 }, nil)

	stable := h.Current()
	writeCatalog(t, filepath.Join(dir, "other.json"), 5)
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if h.Current() != stable {
		t.Errorf("snapshot replaced after bad write or sibling change: len=%d", h.Current().Len())
	}

	// 修复文件后恢复加载
	writeCatalog(t, path, 4)
	waitFor(t, "recovery", func() bool { return h.Current().Len() == 4 }, nil)
}

func TestWatcher_MissingDir(t *testing.T) {
	w := &Watcher{Path: filepath.Join(t.TempDir(), "nope", "products.json"), Reloader: &Reloader{Holder: NewHolder(nil)}}
	if err := w.Run(context.Background()); err == nil {
		t.Error("want error when directory does not exist")
	}
}
