package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arclabs/breadboard/pkg/errors"
	"github.com/arclabs/breadboard/pkg/httputil"
)

// DefaultBaseURL is the Gemini API root.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const httpTimeout = 60 * time.Second

// Client is a minimal generateContent API client. It handles request
// shaping, auth, status mapping, and retries; prompt construction and
// response parsing live elsewhere in the package.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewClient creates a client for the given model. An empty baseURL uses
// the public API; tests point it at an httptest server.
func NewClient(apiKey, model, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// Model returns the model identifier this client requests.
func (c *Client) Model() string { return c.model }

// generateContent wire format.
type genRequest struct {
	Contents         []genContent `json:"contents"`
	GenerationConfig genConfig    `json:"generationConfig"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type genPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature      float64 `json:"temperature"`
	TopK             int     `json:"topK"`
	TopP             float64 `json:"topP"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType"`
}

type genResponse struct {
	Candidates []struct {
		Content genContent `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends a prompt to the model and returns the raw text of
// the first candidate. Network failures and 5xx/429 responses are retried
// with backoff; other failures return immediately.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New(errors.ErrCodeNoAPIKey, "no API key configured; set GEMINI_API_KEY or api.key in the config file")
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	payload, err := json.Marshal(genRequest{
		Contents: []genContent{{Parts: []genPart{{Text: prompt}}}},
		GenerationConfig: genConfig{
			Temperature:      0.2,
			TopK:             40,
			TopP:             0.95,
			MaxOutputTokens:  8192,
			ResponseMIMEType: "text/plain",
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var text string
	err = httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "call model API")}
		}
		defer resp.Body.Close()

		if err := checkStatus(resp.StatusCode); err != nil {
			return err
		}

		var decoded genResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return errors.Wrap(errors.ErrCodeBadResponse, err, "decode model response")
		}
		text = flatten(decoded)
		if text == "" {
			return errors.New(errors.ErrCodeBadResponse, "model returned no candidates")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeRateLimited, "model API rate limited")}
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "model API status %d", code)}
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.New(errors.ErrCodeNoAPIKey, "model API rejected the key (status %d)", code)
	default:
		return errors.New(errors.ErrCodeNetwork, "model API status %d", code)
	}
}

// flatten concatenates all text parts of the first candidate.
func flatten(resp genResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}
