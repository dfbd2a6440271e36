package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"recette/internal/config"
	"recette/internal/services"
)

const defaultHTTPTimeout = 300 * time.Second

// Client wraps the speech-to-text provider.
type Client struct {
	cfg        config.Transcription
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a transcription client using the supplied configuration.
func NewClient(cfg config.Transcription, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type transcriptionResponse struct {
	Text *string `json:"text"`
}

// Transcribe uploads the audio file and returns the plain-text transcript.
// A non-2xx response or a response without a text field is a hard failure
// carrying the provider body verbatim.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", services.Wrap(services.ErrConfiguration, "transcribe", "request", "transcription api key required", nil)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "transcribe", "open", "read audio file", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "transcribe", "encode", "create multipart", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", services.Wrap(services.ErrTranscription, "transcribe", "encode", "copy audio payload", err)
	}
	if err := writer.WriteField("model", c.cfg.Model); err != nil {
		return "", services.Wrap(services.ErrTranscription, "transcribe", "encode", "write model field", err)
	}
	if lang := strings.TrimSpace(c.cfg.Language); lang != "" {
		if err := writer.WriteField("language", lang); err != nil {
			return "", services.Wrap(services.ErrTranscription, "transcribe", "encode", "write language field", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", services.Wrap(services.ErrTranscription, "transcribe", "encode", "finalize multipart", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, &body)
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "transcribe", "request", "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "transcribe", "request", "provider unreachable", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTranscription, "transcribe", "response", "read body", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail := fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
		return "", services.Wrap(services.ErrTranscription, "transcribe", "response", detail, nil)
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", services.Wrap(services.ErrTranscription, "transcribe", "response", "parse provider json", err)
	}
	if parsed.Text == nil {
		detail := fmt.Sprintf("response lacks text field: %s", strings.TrimSpace(string(payload)))
		return "", services.Wrap(services.ErrTranscription, "transcribe", "response", detail, nil)
	}
	return strings.TrimSpace(*parsed.Text), nil
}
