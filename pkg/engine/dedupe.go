package engine

import (
	"strings"

	"github.com/iWorld-y/stream_radar/pkg/model"
)

// DedupeKey 标题小写后只保留 ASCII 字母和数字，纯中文标题的 key 为空串
func DedupeKey(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Dedupe 按标题去重，保留首次出现的条目，顺序不变
func Dedupe(items []model.ScoredItem) []model.ScoredItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]model.ScoredItem, 0, len(items))
	for _, item := range items {
		key := DedupeKey(item.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
