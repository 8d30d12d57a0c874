package ddg

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duedil-labs/duedil/pkg/httputil"
	"github.com/duedil-labs/duedil/pkg/logger"
)

const searchFixture = `<!DOCTYPE html>
<html><body>
  <div class="results">
    <div class="result results_links results_links_deep web-result">
      <h2 class="result__title">
        <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fnews%2F1&amp;rut=abc">ACME faces bankruptcy filing</a>
      </h2>
      <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fnews%2F1">The company warned of liquidity problems in its latest report.</a>
    </div>
    <div class="result results_links results_links_deep web-result">
      <h2 class="result__title">
        <a rel="nofollow" class="result__a" href="https://example.com/news/2">ACME settles lawsuit</a>
      </h2>
      <a class="result__snippet" href="https://example.com/news/2">Settlement reached after a two year litigation battle.</a>
    </div>
    <div class="result">
      <h2 class="result__title"><a class="result__a" href="https://example.com/3"></a></h2>
    </div>
  </div>
</body></html>`

func newTestClient(t *testing.T, handler http.HandlerFunc, maxResults int) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := httputil.New(logger.NewNop()).DisableRetry()
	return NewClient(httpClient, logger.NewNop(), server.URL, maxResults)
}

func TestSearchNews(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(searchFixture))
	}, 5)

	snippets := client.SearchNews(context.Background(), "ACME")

	assert.Equal(t, "ACME litigation lawsuit liquidity bankruptcy news", gotQuery)

	require.Len(t, snippets, 2)
	assert.Equal(t, "ACME faces bankruptcy filing", snippets[0].Title)
	assert.Equal(t, "https://example.com/news/1", snippets[0].Link)
	assert.Contains(t, snippets[0].Body, "liquidity problems")

	assert.Equal(t, "ACME settles lawsuit", snippets[1].Title)
	assert.Equal(t, "https://example.com/news/2", snippets[1].Link)
}

func TestSearchNews_MaxResults(t *testing.T) {
	var page string
	for i := 0; i < 10; i++ {
		page += fmt.Sprintf(`<div class="result"><a class="result__a" href="https://example.com/%d">Result %d</a><a class="result__snippet">body</a></div>`, i, i)
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>" + page + "</body></html>"))
	}, 5)

	snippets := client.SearchNews(context.Background(), "ACME")
	assert.Len(t, snippets, 5)
}

func TestSearchNews_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, 5)

	snippets := client.SearchNews(context.Background(), "ACME")
	assert.Empty(t, snippets)
}

func TestSearchNews_NoResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><div class='no-results'>No results.</div></body></html>"))
	}, 5)

	snippets := client.SearchNews(context.Background(), "UNKNOWN")
	assert.Empty(t, snippets)
}

func TestResolveLink(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"redirect link", "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fa&rut=x", "https://example.com/a"},
		{"direct link", "https://example.com/b", "https://example.com/b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLink(tt.href))
		})
	}
}
