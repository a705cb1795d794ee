package tools

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ArxivSearchTool queries the arXiv Atom API for papers.
type ArxivSearchTool struct {
	// BaseURL overrides the arXiv endpoint in tests.
	BaseURL string
	// HTTPClient overrides the default client in tests.
	HTTPClient *http.Client
}

const (
	arxivAPIURL       = "http://export.arxiv.org/api/query"
	defaultArxivLimit = 5
	maxArxivLimit     = 25
)

func (t *ArxivSearchTool) Name() string     { return "arxiv_search" }
func (t *ArxivSearchTool) IsReadOnly() bool { return true }

func (t *ArxivSearchTool) Description() string {
	return "Search arXiv for papers matching a query. Returns title, authors, " +
		"publication date, abstract, and link for each result."
}

func (t *ArxivSearchTool) Parameters() map[string]any {
	return map[string]any{
		"query": map[string]any{
			"type":        "string",
			"description": "Search terms (matched against all paper fields)",
		},
		"max_results": map[string]any{
			"type":        "integer",
			"description": "Number of papers to return (default 5, max 25)",
		},
	}
}

// atomFeed mirrors the subset of the arXiv Atom response we render.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

func (t *ArxivSearchTool) Execute(ctx context.Context, params json.RawMessage) (ToolResult, error) {
	var p struct {
		Query      string `json:"query"`
		MaxResults int    `json:"max_results"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return ToolResult{}, fmt.Errorf("invalid params: %w", err)
	}
	if strings.TrimSpace(p.Query) == "" {
		return ToolResult{}, fmt.Errorf("query is required")
	}
	if p.MaxResults <= 0 {
		p.MaxResults = defaultArxivLimit
	}
	if p.MaxResults > maxArxivLimit {
		p.MaxResults = maxArxivLimit
	}

	base := t.BaseURL
	if base == "" {
		base = arxivAPIURL
	}
	q := url.Values{}
	q.Set("search_query", "all:"+p.Query)
	q.Set("start", "0")
	q.Set("max_results", fmt.Sprint(p.MaxResults))
	q.Set("sortBy", "relevance")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return ToolResult{}, fmt.Errorf("build request: %w", err)
	}

	client := t.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return ToolResult{Content: fmt.Sprintf("arXiv request failed: %v", err), IsError: true}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ToolResult{Content: fmt.Sprintf("arXiv returned HTTP %d", resp.StatusCode), IsError: true}, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return ToolResult{Content: fmt.Sprintf("reading arXiv response: %v", err), IsError: true}, nil
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return ToolResult{Content: fmt.Sprintf("parsing arXiv response: %v", err), IsError: true}, nil
	}
	if len(feed.Entries) == 0 {
		return ToolResult{Content: "no papers found for query: " + p.Query}, nil
	}

	var sb strings.Builder
	for i, e := range feed.Entries {
		authors := make([]string, 0, len(e.Authors))
		for _, a := range e.Authors {
			authors = append(authors, a.Name)
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, collapseSpace(e.Title))
		fmt.Fprintf(&sb, "   Authors: %s\n", strings.Join(authors, ", "))
		if len(e.Published) >= 10 {
			fmt.Fprintf(&sb, "   Published: %s\n", e.Published[:10])
		}
		fmt.Fprintf(&sb, "   Link: %s\n", e.ID)
		fmt.Fprintf(&sb, "   Abstract: %s\n\n", collapseSpace(e.Summary))
	}
	return ToolResult{Content: strings.TrimRight(sb.String(), "\n")}, nil
}

// collapseSpace flattens the newline-wrapped text arXiv returns into a
// single line.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
