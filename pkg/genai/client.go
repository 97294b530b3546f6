package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stackcanvas/stackcanvas/pkg/cache"
	errs "github.com/stackcanvas/stackcanvas/pkg/errors"
	"github.com/stackcanvas/stackcanvas/pkg/httputil"
)

// Defaults for the Gemini backend.
const (
	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-2.0-flash"

	// DefaultBaseURL is the Gemini REST API root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultCacheTTL is how long AI responses stay cached.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultTimeout bounds a single generateContent call.
	DefaultTimeout = 90 * time.Second
)

// Options configures a [Client]. The zero value is usable but runs in
// mock-only mode since no API key is set.
type Options struct {
	// APIKey authenticates against the Gemini API. Empty disables the
	// backend; graph generation then always returns the mock graph.
	APIKey string

	// Model names the Gemini model to call.
	Model string

	// BaseURL overrides the API root, mainly for tests.
	BaseURL string

	// HTTPClient is the transport. Defaults to a client with
	// [DefaultTimeout].
	HTTPClient *http.Client

	// Cache stores AI responses. Defaults to [cache.NullCache].
	Cache cache.Cache

	// Keyer derives cache keys. Defaults to [cache.DefaultKeyer].
	Keyer cache.Keyer

	// CacheTTL is the lifetime of cached responses.
	CacheTTL time.Duration

	// Logger receives fallback and cache warnings.
	Logger *log.Logger
}

// SetDefaults fills unset fields with package defaults.
func (o *Options) SetDefaults() {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	opts Options
}

// New creates a Client with defaults applied.
func New(opts Options) *Client {
	opts.SetDefaults()
	return &Client{opts: opts}
}

// Available reports whether the AI backend is configured.
func (c *Client) Available() bool {
	return c.opts.APIKey != ""
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.opts.Model
}

// Wire types for the generateContent endpoint.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
}

type candidate struct {
	Content content `json:"content"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// generateContent sends a single-turn prompt and returns the concatenated
// candidate text. Transient failures (network errors, 429, 5xx) are retried
// with exponential backoff.
func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	if !c.Available() {
		return "", errs.New(errs.ErrCodeUnavailable, "no API key configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "encode request")
	}

	var text string
	err = httputil.RetryWithBackoff(ctx, func() error {
		t, err := c.doGenerate(ctx, body)
		if err != nil {
			return err
		}
		text = t
		return nil
	})
	return text, err
}

func (c *Client) doGenerate(ctx context.Context, body []byte) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimSuffix(c.opts.BaseURL, "/"), c.opts.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.opts.APIKey)

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return "", httputil.Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "call model %s", c.opts.Model))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", httputil.Retryable(errs.New(errs.ErrCodeRateLimited, "model %s rate limited", c.opts.Model))
	case resp.StatusCode >= 500:
		return "", httputil.Retryable(errs.New(errs.ErrCodeNetwork, "model %s: status %d", c.opts.Model, resp.StatusCode))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", errs.New(errs.ErrCodeUnavailable, "model %s: status %d, check API key", c.opts.Model, resp.StatusCode)
	default:
		return "", errs.New(errs.ErrCodeBadResponse, "model %s: status %d", c.opts.Model, resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", errs.Wrap(errs.ErrCodeBadResponse, err, "decode response")
	}

	text := candidateText(gr)
	if text == "" {
		reason := "empty response"
		if gr.PromptFeedback != nil && gr.PromptFeedback.BlockReason != "" {
			reason = "blocked: " + gr.PromptFeedback.BlockReason
		}
		return "", errs.New(errs.ErrCodeBadResponse, "model %s returned no text (%s)", c.opts.Model, reason)
	}
	return text, nil
}

// candidateText concatenates the text parts of the first candidate.
func candidateText(gr generateResponse) string {
	if len(gr.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// cached serves key from the cache or runs fetch and stores the result.
// Cache failures are logged, never fatal.
func (c *Client) cached(ctx context.Context, key string, fetch func() (string, error)) (string, error) {
	if data, ok, err := c.opts.Cache.Get(ctx, key); err != nil {
		c.opts.Logger.Warn("cache read failed", "err", err)
	} else if ok {
		return string(data), nil
	}

	text, err := fetch()
	if err != nil {
		return "", err
	}
	if err := c.opts.Cache.Set(ctx, key, []byte(text), c.opts.CacheTTL); err != nil {
		c.opts.Logger.Warn("cache write failed", "err", err)
	}
	return text, nil
}
