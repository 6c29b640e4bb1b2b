// Package translator talks to a LibreTranslate-compatible HTTP service and
// satisfies services.Translator.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const defaultBackoffBase = 200 * time.Millisecond

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage *struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	} `json:"detectedLanguage,omitempty"`
	Error string `json:"error,omitempty"`
}

// Client posts to {baseURL}/translate. Network errors and 5xx responses are
// retried with exponential backoff up to maxRetries extra attempts; 4xx
// responses fail immediately.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	maxRetries  uint64
	backoffBase time.Duration
}

func NewClient(baseURL, apiKey string, timeout time.Duration, maxRetries int) *Client {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: timeout},
		maxRetries:  uint64(maxRetries),
		backoffBase: defaultBackoffBase,
	}
}

// WithBackoffBase changes the first retry delay.
func (c *Client) WithBackoffBase(d time.Duration) *Client {
	c.backoffBase = d
	return c
}

func (c *Client) Translate(ctx context.Context, text, source, target string) (string, string, error) {
	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: c.apiKey,
	})
	if err != nil {
		return "", "", err
	}

	var result translateResponse

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.backoffBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := c.post(ctx, body)
		if err != nil {
			return err
		}
		result = *r
		return nil
	})
	if err != nil {
		return "", "", err
	}

	detected := source
	if result.DetectedLanguage != nil && result.DetectedLanguage.Language != "" {
		detected = result.DetectedLanguage.Language
	}

	return result.TranslatedText, detected, nil
}

func (c *Client) post(ctx context.Context, body []byte) (*translateResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("translate request failed: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("error reading translate response: %w", err))
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, retry.RetryableError(fmt.Errorf("translate upstream failed: %s", resp.Status))
	}

	var result translateResponse
	if err := json.Unmarshal(raw, &result); err != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("error decoding translate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != "" {
			return nil, fmt.Errorf("translate upstream rejected request: %s: %s", resp.Status, result.Error)
		}
		return nil, fmt.Errorf("translate upstream rejected request: %s", resp.Status)
	}

	return &result, nil
}
