package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rushteam/craftrec/pkg/logging"
)

// Reloader 重新加载目录并原子替换 Holder 中的快照。
// 新快照在当前 goroutine 中完整构建，构建失败时保留旧快照。
type Reloader struct {
	Source  Source
	Holder  *Holder
	Options Options

	// OnSwap 在新快照发布后调用，可为 nil
	OnSwap func(s *Snapshot, took time.Duration)
}

// Reload 执行一次加载 + 构建 + 替换。
func (r *Reloader) Reload(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	s, err := Load(ctx, r.Source, r.Options)
	if err != nil {
		return nil, err
	}
	r.Holder.Swap(s)
	if r.OnSwap != nil {
		r.OnSwap(s, time.Since(start))
	}
	return s, nil
}

// Watcher 监听目录文件变化并触发 Reload。
// 监听的是文件所在目录，以兼容编辑器"写临时文件再 rename"的保存方式。
type Watcher struct {
	Path     string
	Reloader *Reloader

	// Debounce 合并短时间内的多次事件，默认 500ms
	Debounce time.Duration
}

// Run 阻塞直到 ctx 结束。
func (w *Watcher) Run(ctx context.Context) error {
	log := logging.Component("catalog.watcher")

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: create watcher: %w", err)
	}
	defer fw.Close()

	target, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("catalog: resolve %s: %w", w.Path, err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", filepath.Dir(target), err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	log.Info().Str("path", target).Msg("watching catalog")
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		case <-timer.C:
			s, err := w.Reloader.Reload(ctx)
			if err != nil {
				log.Error().Err(err).Msg("catalog reload failed, keeping previous snapshot")
				continue
			}
			log.Info().Uint64("version", s.Version()).Int("products", s.Len()).Msg("catalog reloaded")
		}
	}
}
