package infra

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
	"time"
)

// BotClient posts generated invoices to a Telegram-style bot API
// (sendDocument). Delivery is fire-and-forget: the caller enqueues a job and
// the notify worker drives this client through the circuit breaker.
type BotClient struct {
	apiURL     string
	token      string
	httpClient *http.Client
}

func NewBotClient(apiURL, token string) *BotClient {
	return &BotClient{
		apiURL:     apiURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// botResponse is the bot API result envelope.
type botResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendDocument uploads the invoice file to the given chat with a caption.
func (c *BotClient) SendDocument(ctx context.Context, chatID, caption, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("bot: open document: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("chat_id", chatID); err != nil {
		return fmt.Errorf("bot: write chat_id: %w", err)
	}
	if caption != "" {
		if err := w.WriteField("caption", caption); err != nil {
			return fmt.Errorf("bot: write caption: %w", err)
		}
	}
	part, err := w.CreateFormFile("document", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("bot: create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("bot: copy document: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("bot: close multipart: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendDocument", c.apiURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("bot: create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bot: api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bot: api returned %d", resp.StatusCode)
	}

	var result botResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("bot: decode response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("bot: api rejected document: %s", result.Description)
	}
	return nil
}
