// Package ddg implements the news search provider against the
// DuckDuckGo HTML endpoint. No API key is required.
package ddg

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/duedil-labs/duedil/pkg/httputil"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// Snippet is one search result.
type Snippet struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Body  string `json:"body"`
}

// Client handles communication with the DuckDuckGo HTML search.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	maxResults int
}

// NewClient creates a new DuckDuckGo search client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string, maxResults int) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		maxResults: maxResults,
	}
}

// SearchNews searches for litigation, liquidity and bankruptcy news
// about a ticker and returns up to maxResults snippets. Failures are
// logged and yield an empty slice; news is best-effort context, never
// a reason to fail an analysis.
func (c *Client) SearchNews(ctx context.Context, ticker string) []Snippet {
	query := fmt.Sprintf("%s litigation lawsuit liquidity bankruptcy news", ticker)

	snippets, err := c.search(ctx, query)
	if err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Error("News search failed")
		return nil
	}

	return snippets
}

func (c *Client) search(ctx context.Context, query string) ([]Snippet, error) {
	endpoint := fmt.Sprintf("%s/html/?q=%s", c.baseURL, url.QueryEscape(query))

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	snippets := make([]Snippet, 0, c.maxResults)
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		anchor := sel.Find("a.result__a").First()
		title := strings.TrimSpace(anchor.Text())
		if title == "" {
			return true
		}

		href, _ := anchor.Attr("href")
		body := strings.TrimSpace(sel.Find("a.result__snippet").First().Text())

		snippets = append(snippets, Snippet{
			Title: title,
			Link:  resolveLink(href),
			Body:  body,
		})

		return len(snippets) < c.maxResults
	})

	return snippets, nil
}

// resolveLink unwraps DuckDuckGo's redirect URLs (/l/?uddg=<target>)
// back to the target address.
func resolveLink(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}

	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}

	return href
}
