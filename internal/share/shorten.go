package share

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultShortenerBaseURL is the is.gd JSON endpoint.
const DefaultShortenerBaseURL = "https://is.gd/create.php"

// Shortener wraps the is.gd URL shortening API. Shortening is best-effort:
// callers fall back to the long share URL on any error.
type Shortener struct {
	baseURL string
	client  *http.Client
}

// NewShortener constructs a Shortener. An empty baseURL selects is.gd.
func NewShortener(baseURL string) *Shortener {
	if baseURL == "" {
		baseURL = DefaultShortenerBaseURL
	}
	return &Shortener{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type shortenResponse struct {
	ShortURL     string `json:"shorturl"`
	ErrorCode    int    `json:"errorcode"`
	ErrorMessage string `json:"errormessage"`
}

// Shorten asks the shortening service for a short alias of longURL.
func (s *Shortener) Shorten(ctx context.Context, longURL string) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("url", longURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("share.Shortener.Shorten: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("share.Shortener.Shorten: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("share.Shortener.Shorten: unexpected status %d", resp.StatusCode)
	}
	var body shortenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("share.Shortener.Shorten: %w", err)
	}
	if body.ShortURL == "" {
		return "", fmt.Errorf("share.Shortener.Shorten: service error %d: %s", body.ErrorCode, body.ErrorMessage)
	}
	return body.ShortURL, nil
}
