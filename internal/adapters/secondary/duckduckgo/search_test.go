package duckduckgo

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

const resultsPage = `<!DOCTYPE html>
<html>
<body>
  <div class="results">
    <div class="result">
      <a class="result__a" href="https://example.com/a">Title A</a>
      <a class="result__snippet" href="https://example.com/a">
        Solar capacity grew <b>20%</b> in 2025.
      </a>
    </div>
    <div class="result">
      <a class="result__snippet" href="https://example.com/b">Wind output doubled year over year.</a>
    </div>
    <div class="result">
      <a class="result__snippet" href="https://example.com/c">   </a>
    </div>
    <div class="result">
      <a class="result__snippet" href="https://example.com/d">Grid storage is the bottleneck.</a>
    </div>
  </div>
</body>
</html>`

// stubHTTPClient returns a canned response or error for every request
type stubHTTPClient struct {
	status  int
	body    string
	err     error
	lastReq *http.Request
}

func (c *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.lastReq = req
	if c.err != nil {
		return nil, c.err
	}
	return &http.Response{
		StatusCode: c.status,
		Body:       io.NopCloser(strings.NewReader(c.body)),
	}, nil
}

func (c *stubHTTPClient) Get(url string) (*http.Response, error) {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	return c.Do(req)
}

func (c *stubHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	req, _ := http.NewRequest(http.MethodPost, url, body)
	return c.Do(req)
}

func TestSearcher_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts snippets from results page", func(t *testing.T) {
		client := &stubHTTPClient{status: http.StatusOK, body: resultsPage}
		searcher := NewSearcher(client)

		snippets, err := searcher.Search(ctx, "renewable energy", 5)

		require.NoError(t, err)
		require.Len(t, snippets, 3)
		assert.Equal(t, entities.Snippet("Solar capacity grew 20% in 2025."), snippets[0])
		assert.Equal(t, entities.Snippet("Wind output doubled year over year."), snippets[1])
		assert.Equal(t, entities.Snippet("Grid storage is the bottleneck."), snippets[2])
	})

	t.Run("caps at max", func(t *testing.T) {
		client := &stubHTTPClient{status: http.StatusOK, body: resultsPage}
		searcher := NewSearcher(client)

		snippets, err := searcher.Search(ctx, "renewable energy", 2)

		require.NoError(t, err)
		assert.Len(t, snippets, 2)
	})

	t.Run("encodes the query", func(t *testing.T) {
		client := &stubHTTPClient{status: http.StatusOK, body: resultsPage}
		searcher := NewSearcher(client)

		_, err := searcher.Search(ctx, "EV market & pricing", 3)

		require.NoError(t, err)
		require.NotNil(t, client.lastReq)
		assert.Equal(t, "EV market & pricing", client.lastReq.URL.Query().Get("q"))
		assert.Equal(t, "html.duckduckgo.com", client.lastReq.URL.Host)
	})

	t.Run("non-200 status", func(t *testing.T) {
		client := &stubHTTPClient{status: http.StatusForbidden, body: "blocked"}
		searcher := NewSearcher(client)

		_, err := searcher.Search(ctx, "renewable energy", 5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 403")
	})

	t.Run("transport failure", func(t *testing.T) {
		client := &stubHTTPClient{err: errors.New("connection refused")}
		searcher := NewSearcher(client)

		_, err := searcher.Search(ctx, "renewable energy", 5)

		require.Error(t, err)
	})

	t.Run("page without results yields no snippets", func(t *testing.T) {
		client := &stubHTTPClient{status: http.StatusOK, body: "<html><body>No results.</body></html>"}
		searcher := NewSearcher(client)

		snippets, err := searcher.Search(ctx, "renewable energy", 5)

		require.NoError(t, err)
		assert.Empty(t, snippets)
	})
}

func TestParseSnippets_CollapsesWhitespace(t *testing.T) {
	snippets, err := parseSnippets(resultsPage, 1)

	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.NotContains(t, string(snippets[0]), "\n")
}
