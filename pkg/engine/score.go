package engine

import (
	"unicode"

	"github.com/iWorld-y/stream_radar/pkg/model"
	"github.com/iWorld-y/stream_radar/pkg/taxonomy"
)

const (
	regionGlobal = "Global"
	regionCN     = "CN"
	typeGeneral  = "General"
)

// Score 计算条目得分，结果只取决于文本、信源等级和关键词表。
//
//	权威权重 + min(关键词命中数*单次分, 上限) + 时效分 + 技术信号分(一次) - 噪音词命中数*惩罚分
//
// 结果可能为负数。
func Score(text string, category model.Category, tier model.Tier, tax *taxonomy.Taxonomy) int {
	s := tax.Scoring
	score := tax.Weight(tier)

	bonus := taxonomy.CountMatches(text, tax.Keywords(category)) * s.PerMatchPoints
	if bonus > s.KeywordCap {
		bonus = s.KeywordCap
	}
	score += bonus

	score += s.RecencyBonus

	if taxonomy.ContainsAny(text, tax.TechSignals) {
		score += s.TechSignalBonus
	}

	score -= taxonomy.CountMatches(text, tax.Noise) * s.NoisePenalty
	return score
}

// Region 信源配置了区域则直接使用，否则标题含汉字视为国内
func Region(item model.RawItem) string {
	if item.SourceRegion != "" {
		return item.SourceRegion
	}
	for _, r := range item.Title {
		if unicode.Is(unicode.Han, r) {
			return regionCN
		}
	}
	return regionGlobal
}

// Type 第一个命中的主题，没有命中为 General
func Type(text string, tax *taxonomy.Taxonomy) string {
	if t := tax.TopicOf(text); t != "" {
		return t
	}
	return typeGeneral
}
