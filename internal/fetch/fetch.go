// Package fetch retrieves web pages and derives the title and visible text
// used by the fetch_content tool.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultTimeout is the HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// UserAgent identifies the host's fetches to job boards.
const UserAgent = "JobHunter/1.0"

// DefaultMaxLength caps the retained HTML when the caller does not specify
// a limit.
const DefaultMaxLength = 60_000

// TextLimit caps the derived plain text.
const TextLimit = 2000

// Page holds the raw and processed content of a fetched URL.
type Page struct {
	Status int    `json:"status"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	HTML   string `json:"html"`
	Text   string `json:"text"`
}

// Error represents a failure to fetch or process a URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client fetches pages over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a fetch client with the default timeout.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: DefaultTimeout}}
}

// Page retrieves a URL and derives its title and visible text. The body is
// truncated to maxLength bytes before parsing; the cut may land mid-tag,
// which is an accepted approximation. The derived text is capped at
// TextLimit bytes while the returned HTML keeps the full truncated body.
// Both caps are byte counts and may split a multi-byte rune.
func (c *Client) Page(ctx context.Context, rawURL string, maxLength int) (*Page, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}

	rawHTML := string(body)
	if len(rawHTML) > maxLength {
		rawHTML = rawHTML[:maxLength]
	}

	title, text, err := Parse(rawHTML)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to parse HTML", Cause: err}
	}
	if len(text) > TextLimit {
		text = text[:TextLimit]
	}

	return &Page{
		Status: resp.StatusCode,
		URL:    rawURL,
		Title:  title,
		HTML:   rawHTML,
		Text:   text,
	}, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// Parse extracts the document title and the visible text of an HTML
// fragment. Text nodes are joined by single spaces and runs of whitespace
// are collapsed.
func Parse(rawHTML string) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", "", err
	}

	title = doc.Find("title").First().Text()

	var parts []string
	for _, node := range doc.Selection.Nodes {
		collectText(node, &parts)
	}
	text = strings.TrimSpace(whitespace.ReplaceAllString(strings.Join(parts, " "), " "))
	return title, text, nil
}

// collectText appends the data of every visible text node under n.
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
	}
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
