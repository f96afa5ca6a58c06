// Package zhwiki fetches page markup from the MediaWiki action API.
package zhwiki

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/zhwiki-pinyin/internal/config"
	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
)

const (
	defaultAPIURL = "https://zh.wikipedia.org/w/api.php"

	// parseQuery asks for the raw wikitext of a page in the zh variant.
	parseQuery = "action=parse&format=json&prop=wikitext&uselang=zh&formatversion=2&page="

	wikitextPath = "parse.wikitext"
)

// Client fetches wikitext through the action=parse endpoint.
type Client struct {
	apiURL     string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from configuration. A zero Timeout means the
// request is bounded only by ctx.
func NewClient(cfg config.WikiConfig, logger *slog.Logger) *Client {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		apiURL:     apiURL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "zhwiki"),
	}
}

// NewClientWithURL creates a Client with a custom API URL (for testing).
func NewClientWithURL(apiURL string, logger *slog.Logger) *Client {
	return NewClient(config.WikiConfig{APIURL: apiURL}, logger)
}

// FetchWikitext returns the wikitext of page. A non-200 status or a response
// without parse.wikitext is an error; there are no retries.
func (c *Client) FetchWikitext(ctx context.Context, page string) (string, error) {
	reqURL := c.apiURL + "?" + parseQuery + url.QueryEscape(page)

	c.log.DebugContext(ctx, "zhwiki request", slog.String("page", page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("zhwiki: create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "zhwiki request failed", slog.String("page", page), slog.String("error", err.Error()))
		return "", fmt.Errorf("zhwiki: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zhwiki: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("zhwiki: read body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("zhwiki: decode json: invalid document")
	}

	if apiErr := gjson.GetBytes(body, "error.info"); apiErr.Exists() {
		return "", fmt.Errorf("zhwiki: api error: %s: %w", apiErr.String(), domain.ErrNotFound)
	}

	wikitext := gjson.GetBytes(body, wikitextPath)
	if !wikitext.Exists() {
		return "", fmt.Errorf("zhwiki: %s missing: %w", wikitextPath, domain.ErrNotFound)
	}

	c.log.DebugContext(ctx, "zhwiki response",
		slog.String("page", page),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(wikitext.Str)),
	)

	return wikitext.String(), nil
}
