package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dm "github.com/iWorld-y/stream_radar/pkg/model"
)

// ErrIncompleteAnalysis 分析结果缺字段或影响等级不合法
var ErrIncompleteAnalysis = errors.New("incomplete analysis")

// Request 发给生成式后端的单条请求
type Request struct {
	Title      string
	Excerpt    string
	SourceName string
	Category   dm.Category
}

// Result 后端返回的结构化分析，Region/Type 可为空
type Result struct {
	dm.Analysis
	Region string
	Type   string
}

// Validate 必须四个字段齐全，不接受部分结果
func (r Result) Validate() error {
	if !r.ImpactLevel.Valid() {
		return fmt.Errorf("%w: impact level %q", ErrIncompleteAnalysis, r.ImpactLevel)
	}
	if strings.TrimSpace(r.Summary) == "" ||
		strings.TrimSpace(r.PotentialImpact) == "" ||
		strings.TrimSpace(r.ActionSuggestion) == "" {
		return fmt.Errorf("%w: missing text fields", ErrIncompleteAnalysis)
	}
	return nil
}

// Analyzer 生成式分析后端
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (Result, error)
}

// BackendKind 后端是否已配置
type BackendKind int

const (
	BackendUnconfigured BackendKind = iota
	BackendConfigured
)

func (k BackendKind) String() string {
	if k == BackendConfigured {
		return "configured"
	}
	return "unconfigured"
}

// Backend 两种形态：未配置（全部走规则分析）或已配置（携带 Analyzer）
type Backend struct {
	kind     BackendKind
	analyzer Analyzer
}

// Unconfigured 未配置后端
func Unconfigured() Backend {
	return Backend{kind: BackendUnconfigured}
}

// Configured 携带分析器的后端，analyzer 为 nil 时退化为未配置
func Configured(analyzer Analyzer) Backend {
	if analyzer == nil {
		return Unconfigured()
	}
	return Backend{kind: BackendConfigured, analyzer: analyzer}
}

// Kind 后端形态
func (b Backend) Kind() BackendKind {
	return b.kind
}
