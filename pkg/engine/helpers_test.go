package engine

import (
	"github.com/iWorld-y/stream_radar/pkg/model"
	"github.com/iWorld-y/stream_radar/pkg/taxonomy"
)

// smallTaxonomy 关键词少且互不包含，便于手算得分
func smallTaxonomy() *taxonomy.Taxonomy {
	tax := taxonomy.Taxonomy{
		Categories: map[model.Category][]string{
			model.CategoryTechnology: {"widevine", "cdm", "hevc", "av1", "codec", "playready", "fairplay"},
			model.CategoryCompetitor: {"streamfab"},
			model.CategoryIndustry:   {"netflix"},
		},
		TechSignals: []string{"patch", "update"},
		Noise:       []string{"webinar", "marketing"},
		Weights: map[model.Tier]int{
			model.TierS: 30, model.TierA: 25, model.TierB: 15, model.TierC: 5,
		},
		Topics:  []taxonomy.Topic{{Name: "DRM", Keywords: []string{"widevine"}}},
		Scoring: taxonomy.DefaultScoring(),
	}.Normalize()
	return &tax
}

func defaultTaxonomy() *taxonomy.Taxonomy {
	tax := taxonomy.Default().Normalize()
	return &tax
}

func scored(title string, c model.Category, score int) model.ScoredItem {
	return model.ScoredItem{
		RawItem:  model.RawItem{Title: title, Link: "https://example.com/" + title},
		Category: c,
		Score:    score,
	}
}
