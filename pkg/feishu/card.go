package feishu

import (
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/stream_radar/pkg/model"
)

const globalSummaryItems = 5

// Card 飞书交互式卡片
type Card struct {
	Config   CardConfig `json:"config"`
	Header   Header     `json:"header"`
	Elements []Element  `json:"elements"`
}

// CardConfig 卡片配置
type CardConfig struct {
	WideScreenMode bool `json:"wide_screen_mode"`
}

// Header 卡片标题栏
type Header struct {
	Title    Text   `json:"title"`
	Template string `json:"template"`
}

// Text 文本元素，Tag 为 plain_text 或 lark_md
type Text struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

// Element 卡片内容块：div / hr / note
type Element struct {
	Tag      string `json:"tag"`
	Text     *Text  `json:"text,omitempty"`
	Elements []Text `json:"elements,omitempty"`
}

// BuildCard 把 Digest 渲染为卡片，条目按分类顺序展开
func BuildCard(digest model.Digest, title, footer string, now time.Time) Card {
	items := digest.Flatten()

	card := Card{
		Config: CardConfig{WideScreenMode: true},
		Header: Header{
			Title:    Text{Tag: "plain_text", Content: fmt.Sprintf("%s(%d/%d/%d)", title, now.Year(), int(now.Month()), now.Day())},
			Template: "red",
		},
	}

	card.Elements = append(card.Elements,
		markdown(fmt.Sprintf("## 🌎 %s\n%s", globalHeading(title), globalSummary(items))),
		Element{Tag: "hr"},
	)

	for i, item := range items {
		card.Elements = append(card.Elements, markdown(itemBlock(item)))
		if i < len(items)-1 {
			card.Elements = append(card.Elements, Element{Tag: "hr"})
		}
	}

	card.Elements = append(card.Elements, Element{
		Tag:      "note",
		Elements: []Text{{Tag: "plain_text", Content: footer}},
	})
	return card
}

func markdown(content string) Element {
	return Element{Tag: "div", Text: &Text{Tag: "lark_md", Content: content}}
}

// globalHeading "StreamFab 情报" -> "StreamFab 全球情报"
func globalHeading(title string) string {
	if strings.HasSuffix(title, "情报") {
		return strings.TrimSuffix(title, "情报") + "全球情报"
	}
	return title
}

func globalSummary(items []model.EnrichedItem) string {
	n := min(len(items), globalSummaryItems)
	titles := make([]string, 0, n)
	for _, item := range items[:n] {
		titles = append(titles, item.Title)
	}
	return strings.Join(titles, "；") + "。"
}

// Icon 高影响或竞品情报用红点，其余用钻石
func Icon(item model.EnrichedItem) string {
	if item.Analysis.ImpactLevel == model.ImpactHigh || item.Category == model.CategoryCompetitor {
		return "🔴"
	}
	return "💎"
}

func itemBlock(item model.EnrichedItem) string {
	lines := []string{
		fmt.Sprintf("### %s [%s] %s", Icon(item), item.Region, item.Title),
		fmt.Sprintf("**区域**: %s | **类型**: %s", item.Region, item.Type),
		fmt.Sprintf("**摘要**: %s", item.Analysis.Summary),
		fmt.Sprintf("**分析**: %s", item.Analysis.PotentialImpact),
		fmt.Sprintf("**建议**: %s", item.Analysis.ActionSuggestion),
		fmt.Sprintf("[🔗 来源: %s](%s)", item.SourceName, item.Link),
	}
	return strings.Join(lines, "\n")
}
