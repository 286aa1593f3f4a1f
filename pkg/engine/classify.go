package engine

import (
	"github.com/iWorld-y/stream_radar/pkg/model"
	"github.com/iWorld-y/stream_radar/pkg/taxonomy"
)

// precedence 分类优先级，先命中者胜出，不跨级累计
var precedence = []model.Category{
	model.CategoryCompetitor,
	model.CategoryTechnology,
	model.CategoryIndustry,
}

// Classify 根据关键词为条目确定分类，text 需为小写的标题+摘要。
// 匹配是子串包含而非分词，短关键词误命中属于可接受的行为。
func Classify(text string, defaultCategory model.Category, tax *taxonomy.Taxonomy) model.Category {
	for _, c := range precedence {
		if taxonomy.ContainsAny(text, tax.Keywords(c)) {
			return c
		}
	}
	if !defaultCategory.Valid() {
		return model.CategoryIndustry
	}
	return defaultCategory
}
