package source

import (
	"context"
	"time"

	"github.com/go-shiori/go-readability"
)

// Extractor 抓取原文正文
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// ReadabilityExtractor 使用 go-readability 提取正文
type ReadabilityExtractor struct {
	Timeout time.Duration
}

// Extract 抓取 URL 并提取核心文本
func (r ReadabilityExtractor) Extract(ctx context.Context, url string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	article, err := readability.FromURL(url, timeout)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
