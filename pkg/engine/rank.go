package engine

import (
	"sort"

	"github.com/iWorld-y/stream_radar/pkg/model"
)

// DefaultQuota 每个分类默认保留的条数
const DefaultQuota = 3

// Rank 按分类分组、按分数稳定降序排序并截断到 quota。
// 每个已知分类都会出现在结果中，未知分类的条目被丢弃。
func Rank(items []model.ScoredItem, categories []model.Category, quota int) map[model.Category][]model.ScoredItem {
	if quota <= 0 {
		quota = DefaultQuota
	}

	groups := make(map[model.Category][]model.ScoredItem, len(categories))
	for _, c := range categories {
		groups[c] = []model.ScoredItem{}
	}
	for _, item := range items {
		if _, ok := groups[item.Category]; !ok {
			continue
		}
		groups[item.Category] = append(groups[item.Category], item)
	}

	for c, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Score > group[j].Score
		})
		if len(group) > quota {
			group = group[:quota]
		}
		groups[c] = group
	}
	return groups
}
