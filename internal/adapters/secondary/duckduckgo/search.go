package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
	"github.com/slidecraft/slidecraft/internal/domain/ports"
)

const (
	searchEndpoint = "https://html.duckduckgo.com/html/"

	// maxResponseBytes caps how much of the results page is read
	maxResponseBytes = 1 << 20
)

// Searcher implements ports.SnippetSearcher against the DuckDuckGo HTML
// interface, which needs no API key.
type Searcher struct {
	client ports.HTTPClient
}

// NewSearcher creates a searcher with the given HTTP client; a nil
// client gets sensible defaults.
func NewSearcher(client ports.HTTPClient) *Searcher {
	if client == nil {
		client = ports.NewRealHTTPClient(ports.HTTPClientConfig{
			Timeout:         15 * time.Second,
			FollowRedirects: true,
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		})
	}
	return &Searcher{client: client}
}

// Search returns up to max non-empty result snippets for the query
func (s *Searcher) Search(ctx context.Context, query string, max int) ([]entities.Snippet, error) {
	if max <= 0 {
		max = 5
	}

	searchURL := searchEndpoint + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}

	snippets, err := parseSnippets(string(body), max)
	if err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}

	return snippets, nil
}

// parseSnippets extracts result snippet texts from the DuckDuckGo HTML
// results page. Results use anchor elements with class "result__snippet".
func parseSnippets(htmlContent string, max int) ([]entities.Snippet, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	var snippets []entities.Snippet

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(snippets) >= max {
			return
		}

		if n.Type == html.ElementNode && hasClass(n, "result__snippet") {
			// Snippet markup spans lines; collapse runs of whitespace
			if text := strings.Join(strings.Fields(textContent(n)), " "); text != "" {
				snippets = append(snippets, entities.Snippet(text))
			}
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return snippets, nil
}

// hasClass reports whether the node's class attribute contains name
func hasClass(n *html.Node, name string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" && strings.Contains(attr.Val, name) {
			return true
		}
	}
	return false
}

// textContent collects the concatenated text of a node subtree
func textContent(n *html.Node) string {
	var b strings.Builder

	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}

	collect(n)
	return b.String()
}

// Ensure Searcher implements the port
var _ ports.SnippetSearcher = (*Searcher)(nil)
