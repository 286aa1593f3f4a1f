package report

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/stream_radar/pkg/model"
)

const htmlTpl = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Title }} | {{ .Date }}</title>
    <style>
        :root {
            --primary-color: #dc2626;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 40px; padding: 20px 0; }
        h1 { font-size: 2.2rem; margin: 0 0 10px 0; }
        .date-info { color: var(--text-secondary); }
        .category { margin-bottom: 40px; }
        .category-title { font-size: 1.5rem; font-weight: bold; border-bottom: 2px solid var(--primary-color); padding-bottom: 8px; display: inline-block; }
        .item-card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 20px 24px;
            margin-top: 20px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.05);
            border: 1px solid var(--border-color);
        }
        .item-title { font-size: 1.2rem; font-weight: 700; }
        .item-title a { color: #0f172a; text-decoration: none; }
        .item-meta { color: var(--text-secondary); font-size: 0.9rem; margin: 6px 0 12px; }
        .impact { padding: 2px 10px; border-radius: 12px; font-weight: bold; font-size: 0.8rem; }
        .impact-High { background: #fee2e2; color: #991b1b; }
        .impact-Medium { background: #fef9c3; color: #854d0e; }
        .impact-Low { background: #dcfce7; color: #166534; }
        .field { margin: 6px 0; }
        .field b { color: #475569; }
        .empty { color: var(--text-secondary); font-style: italic; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>📡 {{ .Title }}</h1>
            <div class="date-info">{{ .Date }} • 精选 {{ .Count }} 条资讯</div>
        </header>

        {{range .Sections}}
        <div class="category">
            <div class="category-title">{{ .Category }}</div>
            {{range .Items}}
            <div class="item-card">
                <div class="item-title"><a href="{{ .Link }}" target="_blank">{{ .Title }}</a></div>
                <div class="item-meta">
                    <span class="impact impact-{{ .Analysis.ImpactLevel }}">{{ .Analysis.ImpactLevel }}</span>
                    {{ .SourceName }} • {{ .Region }} • {{ .Type }} • 得分 {{ .Score }}
                </div>
                <div class="field"><b>摘要</b>: {{ .Analysis.Summary }}</div>
                <div class="field"><b>分析</b>: {{ .Analysis.PotentialImpact }}</div>
                <div class="field"><b>建议</b>: {{ .Analysis.ActionSuggestion }}</div>
            </div>
            {{else}}
            <div class="empty">暂无相关资讯</div>
            {{end}}
        </div>
        {{end}}
    </div>
</body>
</html>
`

var tpl = template.Must(template.New("report").Parse(htmlTpl))

// Section 单个分类的渲染数据
type Section struct {
	Category model.Category
	Items    []model.EnrichedItem
}

// Data 模板数据
type Data struct {
	Title    string
	Date     string
	Count    int
	Sections []Section
}

// NewData 按分类顺序整理模板数据
func NewData(digest model.Digest, title string, now time.Time) Data {
	data := Data{
		Title: title,
		Date:  now.Format("2006-01-02"),
		Count: digest.Total(),
	}
	for _, c := range model.Categories {
		data.Sections = append(data.Sections, Section{Category: c, Items: digest[c]})
	}
	return data
}

// Render 渲染 HTML 到 w
func Render(w io.Writer, data Data) error {
	return tpl.Execute(w, data)
}

// Writer 把 Digest 写成本地 HTML 文件
type Writer struct {
	path  string
	title string
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewWriter 创建 HTML 报告输出
func NewWriter(path, title string, log logrus.FieldLogger) *Writer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Writer{path: path, title: title, log: log, now: time.Now}
}

// Name 推送渠道名
func (w *Writer) Name() string { return "html" }

// Deliver 渲染并覆盖写入报告文件
func (w *Writer) Deliver(_ context.Context, digest model.Digest) error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", w.path, err)
	}
	defer f.Close()

	if err := Render(f, NewData(digest, w.title, w.now())); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	w.log.Infof("报告已生成: %s", w.path)
	return nil
}
