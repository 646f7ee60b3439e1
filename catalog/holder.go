package catalog

import "sync/atomic"

// Holder 保存当前生效的快照。读方通过 Current 取得一个完整快照后只用它完成整个请求，
// 写方通过 Swap 一次性发布完全构建好的新快照，读方只会看到全旧或全新。
type Holder struct {
	cur atomic.Pointer[Snapshot]
}

// NewHolder 创建 Holder；s 为 nil 时使用空快照。
func NewHolder(s *Snapshot) *Holder {
	if s == nil {
		s = Empty()
	}
	h := &Holder{}
	h.cur.Store(s)
	return h
}

// Current 返回当前快照，永不为 nil。
func (h *Holder) Current() *Snapshot {
	return h.cur.Load()
}

// Swap 发布新快照并返回旧快照。nil 被忽略。
func (h *Holder) Swap(s *Snapshot) *Snapshot {
	if s == nil {
		return h.cur.Load()
	}
	return h.cur.Swap(s)
}
