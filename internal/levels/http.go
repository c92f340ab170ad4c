package levels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pinchlab/yoyak/internal/models"
)

// HTTPProvider requests level variants from an external summarizer service.
// The service receives {level, text} and answers {level, text, metadata};
// metadata fields beyond the known ones are ignored. Failures are returned
// as-is; retry policy belongs to the service side.
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPProvider creates a provider posting to baseURL.
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name identifies the provider in level metadata.
func (p *HTTPProvider) Name() string { return "http" }

// levelResponse is the summarizer's wire format.
type levelResponse struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	Metadata struct {
		CompressionRate float64 `json:"compression_rate"`
		WordCount       int     `json:"word_count"`
	} `json:"metadata"`
}

// Fetch posts a level request and decodes the variant.
func (p *HTTPProvider) Fetch(ctx context.Context, level int, sourceText string) (*models.TextLevel, error) {
	if !models.ValidLevel(level) {
		return nil, fmt.Errorf("invalid level %d", level)
	}
	body, err := json.Marshal(models.LevelRequest{Level: level, Text: sourceText})
	if err != nil {
		return nil, fmt.Errorf("marshal level request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create level request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summarizer request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("summarizer returned %d: %s", resp.StatusCode, string(b))
	}

	var lr levelResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("decode summarizer response: %w", err)
	}
	if lr.Text == "" {
		return nil, fmt.Errorf("summarizer returned empty text for level %d", level)
	}
	return &models.TextLevel{
		Level:   level,
		Content: lr.Text,
		Metadata: models.LevelMetadata{
			CompressionRate: lr.Metadata.CompressionRate,
			WordCount:       lr.Metadata.WordCount,
			Provider:        p.Name(),
		},
	}, nil
}
