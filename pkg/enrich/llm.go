package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/stream_radar/pkg/config"
	"github.com/iWorld-y/stream_radar/pkg/htmltext"
	dm "github.com/iWorld-y/stream_radar/pkg/model"
)

const (
	defaultExcerptRunes = 1000
	defaultMaxRetries   = 2
	defaultBaseDelay    = 2 * time.Second
)

const promptTpl = `你是一个流媒体与DRM技术专家助手。请分析以下新闻，并以JSON格式输出中文分析结果。

【新闻标题】: %s
【新闻内容】: %s...
【来源】: %s
【分类】: %s

请输出严格的 JSON 格式（不要包含 Markdown 代码块标记）：
{
  "summary": "中文摘要，100字以内，概括核心事实",
  "impactLevel": "高" | "中" | "低",
  "potentialImpact": "中文，说明对流媒体下载/播放/DRM技术的潜在影响",
  "actionSuggestion": "中文，针对产品研发团队的行动建议",
  "region": "事件所属区域，例如 CN / US / EU / Global",
  "type": "事件类型，例如 Legal / DRM / Platform / Competitor / General"
}`

// chatGenerator eino ChatModel 中用到的部分
type chatGenerator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// LLMAnalyzer 基于 eino ChatModel 的分析器
type LLMAnalyzer struct {
	cm         chatGenerator
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
	log        logrus.FieldLogger
}

var _ Analyzer = (*LLMAnalyzer)(nil)

// NewLLMAnalyzer 创建分析器，limiter 为 nil 时不限流
func NewLLMAnalyzer(cm chatGenerator, limiter *rate.Limiter, log logrus.FieldLogger) *LLMAnalyzer {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LLMAnalyzer{
		cm:         cm,
		limiter:    limiter,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		log:        log,
	}
}

// NewBackend API Key 为空时返回未配置后端，否则初始化 OpenAI 兼容的 ChatModel
func NewBackend(ctx context.Context, cfg config.LLMConfig, cc config.ConcurrencyConfig, log logrus.FieldLogger) (Backend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Unconfigured(), nil
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return Unconfigured(), fmt.Errorf("init chat model: %w", err)
	}

	return Configured(NewLLMAnalyzer(chatModel, newLimiter(cc), log)), nil
}

func newLimiter(cc config.ConcurrencyConfig) *rate.Limiter {
	limit := rate.Inf
	if cc.RPM > 0 {
		limit = rate.Limit(float64(cc.RPM) / 60.0)
	}
	burst := cc.QPS
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(limit, burst)
}

// Analyze 发送一次分析请求，仅在 429 时退避重试
func (a *LLMAnalyzer) Analyze(ctx context.Context, req Request) (Result, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: "你是一个 JSON 生成器。请只输出 JSON 字符串。"},
		{Role: schema.User, Content: buildPrompt(req)},
	}

	var lastErr error
	for i := 0; i <= a.maxRetries; i++ {
		if err := a.limiter.Wait(ctx); err != nil {
			return Result{}, err
		}

		resp, err := a.cm.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) && i < a.maxRetries {
				lastErr = err
				delay := a.baseDelay * time.Duration(1<<i)
				a.log.Warnf("LLM 限流，%s 后重试 [%s]", delay, req.Title)
				if err := sleep(ctx, delay); err != nil {
					return Result{}, err
				}
				continue
			}
			return Result{}, fmt.Errorf("generate: %w", err)
		}
		if resp == nil {
			return Result{}, fmt.Errorf("generate: empty response")
		}
		return parseResult(resp.Content)
	}
	return Result{}, fmt.Errorf("failed after retries: %w", lastErr)
}

func buildPrompt(req Request) string {
	return fmt.Sprintf(promptTpl, req.Title, htmltext.Truncate(req.Excerpt, defaultExcerptRunes), req.SourceName, req.Category)
}

type llmAnalysis struct {
	Summary          string `json:"summary"`
	ImpactLevel      string `json:"impactLevel"`
	PotentialImpact  string `json:"potentialImpact"`
	ActionSuggestion string `json:"actionSuggestion"`
	Region           string `json:"region"`
	Type             string `json:"type"`
}

func parseResult(content string) (Result, error) {
	var raw llmAnalysis
	if err := json.Unmarshal([]byte(cleanJSON(content)), &raw); err != nil {
		return Result{}, fmt.Errorf("json unmarshal: %w", err)
	}

	level, ok := dm.ParseImpactLevel(raw.ImpactLevel)
	if !ok {
		return Result{}, fmt.Errorf("%w: impact level %q", ErrIncompleteAnalysis, raw.ImpactLevel)
	}

	res := Result{
		Analysis: dm.Analysis{
			ImpactLevel:      level,
			Summary:          strings.TrimSpace(raw.Summary),
			PotentialImpact:  strings.TrimSpace(raw.PotentialImpact),
			ActionSuggestion: strings.TrimSpace(raw.ActionSuggestion),
		},
		Region: strings.TrimSpace(raw.Region),
		Type:   strings.TrimSpace(raw.Type),
	}
	if err := res.Validate(); err != nil {
		return Result{}, err
	}
	return res, nil
}

// cleanJSON 去掉模型偶尔附带的 ```json 代码块标记
func cleanJSON(content string) string {
	c := strings.TrimSpace(content)
	c = strings.TrimPrefix(c, "```json")
	c = strings.TrimPrefix(c, "```")
	c = strings.TrimSuffix(c, "```")
	return strings.TrimSpace(c)
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
