package enrich

import (
	"strings"

	"github.com/iWorld-y/stream_radar/pkg/htmltext"
	dm "github.com/iWorld-y/stream_radar/pkg/model"
)

const (
	summaryMaxRunes  = 300
	summarySentences = 2
	noSummary        = "暂无详细摘要"
	mediumScoreLine  = 40
)

var (
	// 危机类关键词，命中即为高影响
	crisisKeywords = []string{"vulnerability", "exploit", "bypass", "key extraction", "漏洞", "破解", "泄露"}
	// 高危实体
	severeEntities = []string{"widevine l3"}
	// 更新类关键词，命中为中影响
	updateKeywords = []string{"update", "release", "patch", "upgrade", "rollout", "version", "更新", "发布"}
)

type entityTag struct {
	keyword string
	tag     string
}

// 标题中识别到的实体会以 [Tag] 前缀标注在摘要上，按顺序取第一个
var entityTags = []entityTag{
	{"widevine", "Widevine"},
	{"playready", "PlayReady"},
	{"fairplay", "FairPlay"},
	{"streamfab", "StreamFab"},
	{"netflix", "Netflix"},
	{"disney+", "Disney+"},
	{"youtube", "YouTube"},
	{"prime video", "Prime Video"},
	{"dmca", "DMCA"},
}

type template struct {
	impact string
	action string
}

// 模板按条目类型选择，类型由打分阶段的主题分组决定（Legal > DRM > Platform > Competitor）
var templates = map[string]template{
	"Legal": {
		impact: "涉及版权或法律诉讼，可能引发下架、封禁或合规风险。",
		action: "关注案件进展，由法务评估产品合规与应对策略。",
	},
	"DRM": {
		impact: "DRM/CDM 相关变化，可能影响现有解密与播放方案的兼容性。",
		action: "安排研发评估对现有方案的影响，并跟踪后续版本更新。",
	},
	"Platform": {
		impact: "主流流媒体平台动态，可能影响对应站点的下载支持。",
		action: "检查对应平台的下载功能是否受影响，必要时更新适配。",
	},
	"Competitor": {
		impact: "竞品动态，可能影响市场格局与用户选择。",
		action: "对比竞品功能与定价，评估是否需要跟进。",
	},
}

var genericTemplate = template{
	impact: "需要人工评估该资讯的具体影响。",
	action: "建议点击链接查看原文详情。",
}

// Fallback 规则分析，完全确定，任何输入下都返回完整结果
func Fallback(item dm.ScoredItem) dm.Analysis {
	title := strings.ToLower(item.Title)

	tpl, ok := templates[item.Type]
	if !ok {
		tpl = genericTemplate
	}

	summary := Summarize(item.ContentSnippet)
	if tag := entityTagOf(title); tag != "" {
		summary = capSummary("[" + tag + "] " + summary)
	}

	return dm.Analysis{
		ImpactLevel:      ImpactOf(title, item.Score),
		Summary:          summary,
		PotentialImpact:  tpl.impact,
		ActionSuggestion: tpl.action,
	}
}

// ImpactOf 根据小写标题和得分判断影响等级
func ImpactOf(lowerTitle string, score int) dm.ImpactLevel {
	switch {
	case containsAny(lowerTitle, crisisKeywords), containsAny(lowerTitle, severeEntities):
		return dm.ImpactHigh
	case containsAny(lowerTitle, updateKeywords), score >= mediumScoreLine:
		return dm.ImpactMedium
	default:
		return dm.ImpactLow
	}
}

// Summarize 去掉标记，取前两句，总长不超过 300 字符
func Summarize(content string) string {
	text := htmltext.Text(content)
	if text == "" {
		return noSummary
	}

	return capSummary(firstSentences(text, summarySentences))
}

func capSummary(text string) string {
	runes := []rune(text)
	if len(runes) > summaryMaxRunes {
		return strings.TrimSpace(string(runes[:summaryMaxRunes-3])) + "..."
	}
	return text
}

// firstSentences 英文句号等需后接空白才算断句，中文标点直接断句
func firstSentences(text string, n int) string {
	runes := []rune(text)
	count := 0
	for i, r := range runes {
		end := false
		switch r {
		case '。', '！', '？':
			end = true
		case '.', '!', '?':
			end = i == len(runes)-1 || runes[i+1] == ' '
		}
		if !end {
			continue
		}
		count++
		if count == n {
			return strings.TrimSpace(string(runes[:i+1]))
		}
	}
	return text
}

func entityTagOf(lowerTitle string) string {
	for _, e := range entityTags {
		if strings.Contains(lowerTitle, e.keyword) {
			return e.tag
		}
	}
	return ""
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
