package feishu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/stream_radar/pkg/model"
)

// ErrWebhookNotConfigured 未配置飞书 Webhook
var ErrWebhookNotConfigured = errors.New("feishu webhook url is not configured")

type webhookMessage struct {
	MsgType string `json:"msg_type"`
	Card    Card   `json:"card"`
}

type webhookResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Client 飞书机器人 Webhook 客户端
type Client struct {
	webhookURL string
	title      string
	footer     string
	client     *http.Client
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewClient 创建客户端
func NewClient(webhookURL, title, footer string, log logrus.FieldLogger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		webhookURL: webhookURL,
		title:      title,
		footer:     footer,
		client:     &http.Client{Timeout: 15 * time.Second},
		log:        log,
		now:        time.Now,
	}
}

// Name 推送渠道名
func (c *Client) Name() string { return "feishu" }

// Deliver 推送 Digest，空 Digest 不发送
func (c *Client) Deliver(ctx context.Context, digest model.Digest) error {
	if c.webhookURL == "" {
		return ErrWebhookNotConfigured
	}
	if digest.Total() == 0 {
		c.log.Info("没有新的资讯，跳过飞书推送")
		return nil
	}

	payload, err := json.Marshal(webhookMessage{
		MsgType: "interactive",
		Card:    BuildCard(digest, c.title, c.footer, c.now()),
	})
	if err != nil {
		return fmt.Errorf("marshal card: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("feishu webhook error (status %d): %s", res.StatusCode, string(body))
	}

	var resp webhookResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Code != 0 {
		return fmt.Errorf("feishu webhook error (code %d): %s", resp.Code, resp.Msg)
	}

	c.log.Infof("飞书推送成功: %d 条", digest.Total())
	return nil
}
