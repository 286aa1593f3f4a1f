package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iWorld-y/stream_radar/pkg/model"
)

func TestScore(t *testing.T) {
	tax := smallTaxonomy()

	tests := []struct {
		name     string
		text     string
		category model.Category
		tier     model.Tier
		want     int
	}{
		{"weight + 2 keywords + recency + signal", "widevine cdm patch", model.CategoryTechnology, model.TierS, 30 + 10 + 15 + 15},
		{"keyword bonus capped", "widevine cdm hevc av1 codec playready fairplay", model.CategoryTechnology, model.TierB, 15 + 25 + 15},
		{"signal counted once", "netflix patch update", model.CategoryIndustry, model.TierA, 25 + 5 + 15 + 15},
		{"noise per keyword", "netflix marketing webinar", model.CategoryIndustry, model.TierC, 5 + 5 + 15 - 100},
		{"unknown tier uses default weight", "nothing relevant", model.CategoryIndustry, model.Tier("Z"), 5 + 15},
		{"only keywords of own category count", "streamfab widevine", model.CategoryCompetitor, model.TierA, 25 + 5 + 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.text, tt.category, tt.tier, tax))
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	tax := defaultTaxonomy()
	text := "widevine l3 vulnerability patched in new cdm release"
	first := Score(text, model.CategoryTechnology, model.TierS, tax)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(text, model.CategoryTechnology, model.TierS, tax))
	}
}

func TestScore_MonotonicInKeywords(t *testing.T) {
	tax := smallTaxonomy()
	base := Score("widevine", model.CategoryTechnology, model.TierA, tax)
	more := Score("widevine hevc", model.CategoryTechnology, model.TierA, tax)
	assert.Greater(t, more, base)

	capped := Score("widevine cdm hevc av1 codec", model.CategoryTechnology, model.TierA, tax)
	beyond := Score("widevine cdm hevc av1 codec playready", model.CategoryTechnology, model.TierA, tax)
	assert.Equal(t, capped, beyond)
}

func TestRegionAndType(t *testing.T) {
	tax := defaultTaxonomy()

	assert.Equal(t, "US", Region(model.RawItem{Title: "版权诉讼", SourceRegion: "US"}))
	assert.Equal(t, "CN", Region(model.RawItem{Title: "爱奇艺更新 DRM"}))
	assert.Equal(t, "Global", Region(model.RawItem{Title: "Netflix raises prices"}))

	assert.Equal(t, "DRM", Type("widevine l3 patched", tax))
	assert.Equal(t, "General", Type("weather in shanghai", tax))
}
