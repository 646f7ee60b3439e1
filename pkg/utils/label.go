// Package utils 放置跨包共享的小工具。
package utils

import "strings"

// Label 是附着在请求或候选上的可解释标记，例如命中的城市键、作答策略名。
// Value 是标记值，Source 是写入它的阶段（recall / rank / location ...）。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"`
}

// MergeLabel 合并同名 Label：Value 以 '|' 累积，Source 以 ',' 累积，已存在的片段不重复追加。
// 任一方 Value 为空时直接返回另一方。
func MergeLabel(existing, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}
	return Label{
		Value:  appendPart(existing.Value, incoming.Value, "|"),
		Source: appendPart(existing.Source, incoming.Source, ","),
	}
}

func appendPart(list, part, sep string) string {
	switch {
	case part == "":
		return list
	case list == "":
		return part
	}
	for _, p := range strings.Split(list, sep) {
		if p == part {
			return list
		}
	}
	return list + sep + part
}

// LabelFields 把 Label 表展开为 key → Value，用作日志字段。
func LabelFields(labels map[string]Label) map[string]any {
	out := make(map[string]any, len(labels))
	for k, l := range labels {
		out[k] = l.Value
	}
	return out
}
