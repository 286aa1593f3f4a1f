package taxonomy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iWorld-y/stream_radar/pkg/model"
)

// ErrInvalidTaxonomy 关键词表不合法
var ErrInvalidTaxonomy = errors.New("invalid taxonomy")

// Scoring 打分公式中的常量
type Scoring struct {
	DefaultWeight   int `yaml:"default_weight"`
	PerMatchPoints  int `yaml:"per_match_points"`
	KeywordCap      int `yaml:"keyword_cap"`
	RecencyBonus    int `yaml:"recency_bonus"`
	TechSignalBonus int `yaml:"tech_signal_bonus"`
	NoisePenalty    int `yaml:"noise_penalty"`
}

// Topic 主题分组，用于条目类型标注和规则分析模板选择
type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy 关键词分类体系
type Taxonomy struct {
	Categories  map[model.Category][]string `yaml:"categories"`
	TechSignals []string                    `yaml:"tech_signals"`
	Noise       []string                    `yaml:"noise"`
	Weights     map[model.Tier]int          `yaml:"weights"`
	Topics      []Topic                     `yaml:"topics"`
	Scoring     Scoring                     `yaml:"scoring"`
}

// Weight 等级对应的权重，未知等级返回默认权重
func (t *Taxonomy) Weight(tier model.Tier) int {
	if w, ok := t.Weights[tier]; ok {
		return w
	}
	return t.Scoring.DefaultWeight
}

// Keywords 分类对应的关键词
func (t *Taxonomy) Keywords(c model.Category) []string {
	return t.Categories[c]
}

// TopicOf 返回第一个命中的主题名，没有命中返回空串
func (t *Taxonomy) TopicOf(text string) string {
	for _, topic := range t.Topics {
		if ContainsAny(text, topic.Keywords) {
			return topic.Name
		}
	}
	return ""
}

// Normalize 返回关键词全部小写、去空白后的副本，打分常量原样保留
func (t Taxonomy) Normalize() Taxonomy {
	out := Taxonomy{
		Categories:  make(map[model.Category][]string, len(t.Categories)),
		TechSignals: lowerAll(t.TechSignals),
		Noise:       lowerAll(t.Noise),
		Weights:     make(map[model.Tier]int, len(t.Weights)),
		Topics:      make([]Topic, 0, len(t.Topics)),
		Scoring:     t.Scoring,
	}
	for c, kws := range t.Categories {
		out.Categories[c] = lowerAll(kws)
	}
	for tier, w := range t.Weights {
		out.Weights[model.Tier(strings.ToUpper(string(tier)))] = w
	}
	for _, topic := range t.Topics {
		out.Topics = append(out.Topics, Topic{Name: topic.Name, Keywords: lowerAll(topic.Keywords)})
	}
	return out
}

// Validate 启动时校验，运行中不再检查
func (t *Taxonomy) Validate() error {
	for _, c := range model.Categories {
		kws := t.Categories[c]
		if len(kws) == 0 {
			return fmt.Errorf("%w: category %q has no keywords", ErrInvalidTaxonomy, c)
		}
		for _, kw := range kws {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("%w: empty keyword in category %q", ErrInvalidTaxonomy, c)
			}
		}
	}
	for c := range t.Categories {
		if !c.Valid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidTaxonomy, c)
		}
	}
	for tier := range t.Weights {
		if !tier.Valid() {
			return fmt.Errorf("%w: unknown tier %q", ErrInvalidTaxonomy, tier)
		}
	}
	for _, kw := range append(append([]string{}, t.TechSignals...), t.Noise...) {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w: empty signal or noise keyword", ErrInvalidTaxonomy)
		}
	}
	for _, topic := range t.Topics {
		if topic.Name == "" || len(topic.Keywords) == 0 {
			return fmt.Errorf("%w: topic %q must have a name and keywords", ErrInvalidTaxonomy, topic.Name)
		}
	}
	if t.Scoring.PerMatchPoints < 0 || t.Scoring.KeywordCap < 0 || t.Scoring.NoisePenalty < 0 {
		return fmt.Errorf("%w: scoring constants must not be negative", ErrInvalidTaxonomy)
	}
	return nil
}

// CountMatches 统计命中的不同关键词个数（子串匹配，text 需已小写）
func CountMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// ContainsAny 是否命中任一关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
