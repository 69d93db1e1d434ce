package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dbhost/pkg/interfaces"
	"dbhost/pkg/logger"
)

// FeishuNotifier alerts operators about operational failures through a Feishu (Lark) bot webhook
type FeishuNotifier struct {
	webhookURL string
	client     *http.Client
	pending    sync.WaitGroup
}

// NewFeishuNotifier creates a Feishu notifier; an empty URL disables it
func NewFeishuNotifier(webhookURL string) *FeishuNotifier {
	if webhookURL == "" {
		logger.Warn("Feishu webhook URL not configured, database error alerts will be disabled")
	}
	return &FeishuNotifier{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether a webhook is configured
func (f *FeishuNotifier) Enabled() bool {
	return f.webhookURL != ""
}

// For returns an alerter for one database
func (f *FeishuNotifier) For(databaseName, databaseUUID string) interfaces.Alerter {
	return &feishuDatabaseAlerter{feishu: f, name: databaseName, uuid: databaseUUID}
}

// Wait blocks until alerts sent in the background are delivered or failed
func (f *FeishuNotifier) Wait() {
	f.pending.Wait()
}

// Send posts one alert card
func (f *FeishuNotifier) Send(ctx context.Context, databaseName, databaseUUID, message string) error {
	if !f.Enabled() {
		return nil
	}

	payload, err := json.Marshal(f.buildAlertMessage(databaseName, databaseUUID, message))
	if err != nil {
		return fmt.Errorf("failed to marshal Feishu message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Feishu notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Feishu API returned status code: %d", resp.StatusCode)
	}
	return nil
}

func (f *FeishuNotifier) buildAlertMessage(databaseName, databaseUUID, message string) map[string]interface{} {
	return map[string]interface{}{
		"msg_type": "interactive",
		"card": map[string]interface{}{
			"header": map[string]interface{}{
				"template": "red",
				"title": map[string]interface{}{
					"content": "Database settings error",
					"tag":     "plain_text",
				},
			},
			"elements": []interface{}{
				map[string]interface{}{
					"tag": "div",
					"fields": []interface{}{
						map[string]interface{}{
							"is_short": true,
							"text": map[string]interface{}{
								"content": fmt.Sprintf("**Database**\n%s", databaseName),
								"tag":     "lark_md",
							},
						},
						map[string]interface{}{
							"is_short": true,
							"text": map[string]interface{}{
								"content": fmt.Sprintf("**UUID**\n%s", databaseUUID),
								"tag":     "lark_md",
							},
						},
					},
				},
				map[string]interface{}{
					"tag": "hr",
				},
				map[string]interface{}{
					"tag": "div",
					"text": map[string]interface{}{
						"content": message,
						"tag":     "plain_text",
					},
				},
			},
		},
	}
}

type feishuDatabaseAlerter struct {
	feishu *FeishuNotifier
	name   string
	uuid   string
}

// Alert sends in the background; the request neither waits for the webhook nor cancels it
func (a *feishuDatabaseAlerter) Alert(ctx context.Context, message string) {
	if !a.feishu.Enabled() {
		return
	}
	sendCtx := context.WithoutCancel(ctx)
	a.feishu.pending.Add(1)
	go func() {
		defer a.feishu.pending.Done()
		if err := a.feishu.Send(sendCtx, a.name, a.uuid, message); err != nil {
			logger.WarnCtx(sendCtx, "Failed to send Feishu alert for database %s: %v", a.uuid, err)
		}
	}()
}
