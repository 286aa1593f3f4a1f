package model

import (
	"strings"
	"time"
)

// Tier 信源权威等级，S 最高，C 最低
type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// Valid 判断等级是否合法
func (t Tier) Valid() bool {
	switch t {
	case TierS, TierA, TierB, TierC:
		return true
	}
	return false
}

// Category 资讯分类（封闭集合）
type Category string

const (
	CategoryTechnology Category = "Technology Update"
	CategoryIndustry   Category = "Industry News"
	CategoryCompetitor Category = "Competitor Intelligence"
)

// Categories 分类的固定顺序，排序、推送都按这个顺序
var Categories = []Category{CategoryTechnology, CategoryIndustry, CategoryCompetitor}

// Valid 判断分类是否属于已知集合
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// SourceKind 信源抓取方式
type SourceKind string

const (
	KindRSS     SourceKind = "rss"
	KindTavily  SourceKind = "tavily"
	KindSearXNG SourceKind = "searxng"
)

// Source 信源配置，进程启动时加载，之后只读
type Source struct {
	Name            string     `yaml:"name"`
	URL             string     `yaml:"url"`
	Kind            SourceKind `yaml:"kind"`
	Query           string     `yaml:"query"` // 搜索类信源使用
	DefaultCategory Category   `yaml:"default_category"`
	Tier            Tier       `yaml:"tier"`
	Region          string     `yaml:"region"`
	Description     string     `yaml:"description"`
}

// RawItem 抓取到的原始条目，创建后不再修改
type RawItem struct {
	Title                 string
	Link                  string
	PublishedAt           time.Time
	ContentSnippet        string
	SourceName            string
	SourceDefaultCategory Category
	SourceTier            Tier
	SourceRegion          string
}

// Text 标题与摘要拼接后的小写文本，分类和打分都基于它
func (r RawItem) Text() string {
	return strings.ToLower(r.Title + " " + r.ContentSnippet)
}

// ScoredItem 分类打分后的条目
type ScoredItem struct {
	RawItem
	Category Category
	Score    int
	Region   string
	Type     string
}

// ImpactLevel 影响等级
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "High"
	ImpactMedium ImpactLevel = "Medium"
	ImpactLow    ImpactLevel = "Low"
)

// Valid 判断影响等级是否合法
func (l ImpactLevel) Valid() bool {
	return l == ImpactHigh || l == ImpactMedium || l == ImpactLow
}

// ParseImpactLevel 兼容英文和中文（高/中/低）两种写法
func ParseImpactLevel(s string) (ImpactLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "高":
		return ImpactHigh, true
	case "medium", "mid", "中":
		return ImpactMedium, true
	case "low", "低":
		return ImpactLow, true
	}
	return "", false
}

// AnalysisState 条目分析所处的状态：pending -> (analyzing) -> backend | fallback。
// analyzing 只在配置了 LLM 后端时出现，backend 和 fallback 为终态。
type AnalysisState string

const (
	StatePending   AnalysisState = "pending"
	StateAnalyzing AnalysisState = "analyzing"
	StateBackend   AnalysisState = "backend"
	StateFallback  AnalysisState = "fallback"
)

const placeholderText = "Waiting for analysis..."

// Analysis 结构化分析结果
type Analysis struct {
	ImpactLevel      ImpactLevel `json:"impactLevel"`
	Summary          string      `json:"summary"`
	PotentialImpact  string      `json:"potentialImpact"`
	ActionSuggestion string      `json:"actionSuggestion"`
}

// PlaceholderAnalysis 待分析时的占位内容
func PlaceholderAnalysis() Analysis {
	return Analysis{
		ImpactLevel:      ImpactLow,
		Summary:          placeholderText,
		PotentialImpact:  placeholderText,
		ActionSuggestion: placeholderText,
	}
}

// EnrichedItem 完成分析的条目
type EnrichedItem struct {
	ScoredItem
	Analysis
	State AnalysisState
}

// NewEnrichedItem 以占位分析创建待分析条目
func NewEnrichedItem(item ScoredItem) EnrichedItem {
	return EnrichedItem{ScoredItem: item, Analysis: PlaceholderAnalysis(), State: StatePending}
}

// Analyzing 返回进入分析中状态的新条目，分析字段仍为占位内容
func (e EnrichedItem) Analyzing() EnrichedItem {
	e.State = StateAnalyzing
	return e
}

// WithAnalysis 返回替换了分析结果的新条目，原值不变
func (e EnrichedItem) WithAnalysis(a Analysis, state AnalysisState) EnrichedItem {
	e.Analysis = a
	e.State = state
	return e
}

// WithClassification 返回覆盖了区域/类型的新条目，空值保持原样
func (e EnrichedItem) WithClassification(region, typ string) EnrichedItem {
	if region != "" {
		e.Region = region
	}
	if typ != "" {
		e.Type = typ
	}
	return e
}

// Digest 一次运行的最终产出：分类 -> 排好序的条目
type Digest map[Category][]EnrichedItem

// NewDigest 创建包含所有已知分类（空列表）的 Digest
func NewDigest() Digest {
	d := make(Digest, len(Categories))
	for _, c := range Categories {
		d[c] = []EnrichedItem{}
	}
	return d
}

// Total 条目总数
func (d Digest) Total() int {
	n := 0
	for _, items := range d {
		n += len(items)
	}
	return n
}

// Flatten 按固定分类顺序展开
func (d Digest) Flatten() []EnrichedItem {
	out := make([]EnrichedItem, 0, d.Total())
	for _, c := range Categories {
		out = append(out, d[c]...)
	}
	return out
}
