package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/stream_radar/pkg/model"
	"github.com/iWorld-y/stream_radar/pkg/taxonomy"
)

// ErrInvalidConfig 配置不合法，启动时直接退出
var ErrInvalidConfig = errors.New("invalid config")

const (
	envFeishuWebhook = "FEISHU_WEBHOOK_URL"
	envScheduleCron  = "SCHEDULE_CRON"
	envOpenAIKey     = "OPENAI_API_KEY"
	envOpenAIBaseURL = "OPENAI_BASE_URL"
	envOpenAIModel   = "OPENAI_MODEL"
	envLogLevel      = "LOG_LEVEL"
	envDatabaseDSN   = "DATABASE_DSN"
	envTavilyKey     = "TAVILY_API_KEY"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Feishu      FeishuConfig      `yaml:"feishu"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Sources     []model.Source    `yaml:"sources"`
	Taxonomy    taxonomy.Taxonomy `yaml:"taxonomy"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
	Report      ReportConfig      `yaml:"report"`
}

// LLMConfig LLM 相关配置，APIKey 为空时全部条目走规则分析
type LLMConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// SearchConfig 搜索类信源配置
type SearchConfig struct {
	Tavily  TavilyConfig  `yaml:"tavily"`
	SearXNG SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// FeishuConfig 飞书机器人配置
type FeishuConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	Title      string `yaml:"title"`
	Footer     string `yaml:"footer"`
}

// ScheduleConfig 定时任务配置
type ScheduleConfig struct {
	Cron     string `yaml:"cron"`
	Timezone string `yaml:"timezone"`
}

// Location 解析时区，非法时返回 UTC
func (s ScheduleConfig) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PipelineConfig 流水线参数
type PipelineConfig struct {
	Quota         int           `yaml:"quota"`
	RecencyWindow time.Duration `yaml:"recency_window"`
	FetchFullText bool          `yaml:"fetch_full_text"`
	MinSnippet    int           `yaml:"min_snippet"`
	MaxSnippet    int           `yaml:"max_snippet"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS          int `yaml:"qps"`
	RPM          int `yaml:"rpm"`
	FetchWorkers int `yaml:"fetch_workers"`
}

// DBConfig 归档数据库配置，DSN 为空则不归档
type DBConfig struct {
	DSN string `yaml:"dsn"`
}

// ReportConfig HTML 报告输出
type ReportConfig struct {
	HTMLPath string `yaml:"html_path"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
			Timeout: 60 * time.Second,
		},
		Feishu: FeishuConfig{
			Title:  "StreamFab 情报",
			Footer: "Powered by StreamDRM Bot",
		},
		Schedule: ScheduleConfig{Cron: "0 9 * * *", Timezone: "Asia/Shanghai"},
		Pipeline: PipelineConfig{
			Quota:         3,
			RecencyWindow: 24 * time.Hour,
			MinSnippet:    200,
			MaxSnippet:    5000,
			FetchTimeout:  30 * time.Second,
		},
		Sources:     taxonomy.DefaultSources(),
		Taxonomy:    taxonomy.Default(),
		Log:         LogConfig{Level: "info", MaxSize: 50, MaxBackups: 7, MaxAge: 30},
		Concurrency: ConcurrencyConfig{QPS: 1, RPM: 20, FetchWorkers: 4},
	}
}

// LoadConfig 从指定路径加载配置。文件不存在时使用默认配置；
// 随后读取 .env 与环境变量覆盖，最后做一次完整校验。
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envFeishuWebhook); v != "" {
		c.Feishu.WebhookURL = v
	}
	if v := os.Getenv(envScheduleCron); v != "" {
		c.Schedule.Cron = v
	}
	if v := os.Getenv(envOpenAIKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(envOpenAIBaseURL); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv(envOpenAIModel); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(envDatabaseDSN); v != "" {
		c.DB.DSN = v
	}
	if v := os.Getenv(envTavilyKey); v != "" {
		c.Search.Tavily.APIKey = v
	}
}

func (c *Config) normalize() {
	c.Taxonomy = c.Taxonomy.Normalize()
	for i := range c.Sources {
		src := &c.Sources[i]
		if src.Kind == "" {
			src.Kind = model.KindRSS
		}
		src.Tier = model.Tier(strings.ToUpper(string(src.Tier)))
	}
	if c.Concurrency.FetchWorkers <= 0 {
		c.Concurrency.FetchWorkers = 1
	}
}

// Validate 校验配置，只在启动时调用
func (c *Config) Validate() error {
	if c.Pipeline.Quota <= 0 {
		return fmt.Errorf("%w: pipeline.quota must be positive", ErrInvalidConfig)
	}
	if c.Pipeline.RecencyWindow <= 0 {
		return fmt.Errorf("%w: pipeline.recency_window must be positive", ErrInvalidConfig)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("%w: no sources configured", ErrInvalidConfig)
	}
	for _, src := range c.Sources {
		if err := validateSource(src); err != nil {
			return err
		}
	}
	if err := c.Taxonomy.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
		return fmt.Errorf("%w: schedule.cron %q: %v", ErrInvalidConfig, c.Schedule.Cron, err)
	}
	if c.Schedule.Timezone != "" {
		if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
			return fmt.Errorf("%w: schedule.timezone %q: %v", ErrInvalidConfig, c.Schedule.Timezone, err)
		}
	}
	return nil
}

func validateSource(src model.Source) error {
	if strings.TrimSpace(src.Name) == "" {
		return fmt.Errorf("%w: source without name", ErrInvalidConfig)
	}
	if !src.Tier.Valid() {
		return fmt.Errorf("%w: source %q has invalid tier %q", ErrInvalidConfig, src.Name, src.Tier)
	}
	if !src.DefaultCategory.Valid() {
		return fmt.Errorf("%w: source %q has unknown default category %q", ErrInvalidConfig, src.Name, src.DefaultCategory)
	}
	switch src.Kind {
	case model.KindRSS:
		if !strings.HasPrefix(src.URL, "http") {
			return fmt.Errorf("%w: source %q has invalid url %q", ErrInvalidConfig, src.Name, src.URL)
		}
	case model.KindTavily, model.KindSearXNG:
		if strings.TrimSpace(src.Query) == "" {
			return fmt.Errorf("%w: search source %q needs a query", ErrInvalidConfig, src.Name)
		}
	default:
		return fmt.Errorf("%w: source %q has unknown kind %q", ErrInvalidConfig, src.Name, src.Kind)
	}
	return nil
}
