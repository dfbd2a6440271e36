package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"recette/internal/config"
)

const userAgent = "Recette/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyRecipeSaved(ctx context.Context, title string, id int64) error
	NotifyPipelineError(ctx context.Context, err error, videoURL string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:   topic,
		client:     &http.Client{Timeout: timeout},
		sendSaved:  cfg.Notifications.Saved,
		sendErrors: cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint   string
	client     *http.Client
	sendSaved  bool
	sendErrors bool
}

func (n *ntfyService) NotifyRecipeSaved(ctx context.Context, title string, id int64) error {
	if !n.sendSaved {
		return nil
	}
	title = strings.TrimSpace(title)
	data := payload{
		title:   "Recette - Recipe Saved",
		message: fmt.Sprintf("Saved recipe #%d: %s", id, title),
		tags:    []string{"recette", "recipe", "saved"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPipelineError(ctx context.Context, err error, videoURL string) error {
	if !n.sendErrors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Pipeline failed")
	if videoURL = strings.TrimSpace(videoURL); videoURL != "" {
		builder.WriteString(" for ")
		builder.WriteString(videoURL)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Recette - Error",
		message:  builder.String(),
		tags:     []string{"recette", "pipeline", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:   "Recette - Test",
		message: "Notifications are configured correctly",
		tags:    []string{"recette", "test"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification rejected: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

type noopService struct{}

func (noopService) NotifyRecipeSaved(context.Context, string, int64) error   { return nil }
func (noopService) NotifyPipelineError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error                   { return nil }
