package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// 块级元素之后补一个空格，避免相邻段落的文字粘在一起
const blockTags = "p,div,br,li,ul,ol,h1,h2,h3,h4,h5,h6,tr,td,th,table,blockquote,pre,section,article,header,footer"

// Text 去掉 HTML 标记（含 script/style 内容）并压缩空白；不含标记的文本只做空白压缩
func Text(s string) string {
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			doc.Find("script,style,noscript").Remove()
			doc.Find(blockTags).AfterHtml(" ")
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

// Truncate 按字符截断
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
