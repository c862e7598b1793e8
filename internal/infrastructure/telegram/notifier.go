package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"CounterPicker/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// ErrNotConfigured is returned when token or chat id is missing.
var ErrNotConfigured = errors.New("telegram notifier misconfigured")

// Option tweaks a Notifier.
type Option func(*Notifier)

// WithAPIBase points the notifier at another Bot API host.
func WithAPIBase(base string) Option {
	return func(n *Notifier) { n.apiBase = strings.TrimSuffix(base, "/") }
}

// WithHTTPClient replaces the default 5s-timeout client.
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) { n.client = c }
}

// Notifier posts enrichment run summaries to a Telegram chat.
type Notifier struct {
	apiBase  string
	botToken string
	chatID   string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier builds a notifier for one bot and chat.
func NewNotifier(botToken, chatID string, opts ...Option) *Notifier {
	n := &Notifier{
		apiBase:  defaultAPIBase,
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Configured reports whether both token and chat are set.
func (n *Notifier) Configured() bool {
	return n != nil && n.botToken != "" && n.chatID != ""
}

type sendMessage struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResult struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// PublishReport sends message with Markdown formatting. Bot API refusals
// carry the API's description in the error.
func (n *Notifier) PublishReport(ctx context.Context, message string) error {
	if !n.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sendMessage{
		ChatID:                n.chatID,
		Text:                  message,
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	var result apiResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("telegram %s: decode response: %w", resp.Status, err)
	}
	if !result.OK {
		return fmt.Errorf("telegram %s: %s", resp.Status, result.Description)
	}
	return nil
}
