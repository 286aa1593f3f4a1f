package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseImpactLevel(t *testing.T) {
	tests := []struct {
		in   string
		want ImpactLevel
		ok   bool
	}{
		{"High", ImpactHigh, true},
		{" medium ", ImpactMedium, true},
		{"低", ImpactLow, true},
		{"高", ImpactHigh, true},
		{"critical", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseImpactLevel(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestEnrichedItem_Transitions(t *testing.T) {
	scored := ScoredItem{RawItem: RawItem{Title: "t", Link: "l"}, Category: CategoryIndustry, Region: "CN", Type: "General"}

	pending := NewEnrichedItem(scored)
	assert.Equal(t, StatePending, pending.State)
	assert.Equal(t, "Waiting for analysis...", pending.Analysis.Summary)

	analyzing := pending.Analyzing()
	assert.Equal(t, StateAnalyzing, analyzing.State)
	assert.Equal(t, pending.Analysis, analyzing.Analysis, "placeholders kept while analyzing")
	assert.Equal(t, StatePending, pending.State, "original value untouched")

	done := analyzing.WithAnalysis(Analysis{ImpactLevel: ImpactHigh, Summary: "s", PotentialImpact: "p", ActionSuggestion: "a"}, StateBackend)
	assert.Equal(t, StateBackend, done.State)
	assert.Equal(t, StateAnalyzing, analyzing.State)

	relabeled := done.WithClassification("US", "")
	assert.Equal(t, "US", relabeled.Region)
	assert.Equal(t, "General", relabeled.Type)
}

func TestDigest(t *testing.T) {
	d := NewDigest()
	assert.Len(t, d, len(Categories))
	assert.Equal(t, 0, d.Total())

	d[CategoryCompetitor] = []EnrichedItem{{ScoredItem: ScoredItem{RawItem: RawItem{Title: "c"}}}}
	d[CategoryTechnology] = []EnrichedItem{{ScoredItem: ScoredItem{RawItem: RawItem{Title: "t"}}}}

	assert.Equal(t, 2, d.Total())
	flat := d.Flatten()
	assert.Equal(t, "t", flat[0].Title, "flatten follows category order")
	assert.Equal(t, "c", flat[1].Title)
}

func TestRawItem_Text(t *testing.T) {
	item := RawItem{Title: "Widevine L3", ContentSnippet: "New CDM"}
	assert.Equal(t, "widevine l3 new cdm", item.Text())
}
