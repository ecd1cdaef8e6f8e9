package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Success(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><head><title>Rust Engineer - Acme</title></head>` +
			`<body><h1>Rust Engineer</h1><p>Build services in Rust.</p>` +
			`<script>ignored()</script></body></html>`))
	}))
	defer server.Close()

	client := NewClient()
	page, err := client.Page(context.Background(), server.URL, 0)
	require.NoError(t, err)

	assert.Equal(t, UserAgent, gotUserAgent)
	assert.Equal(t, http.StatusOK, page.Status)
	assert.Equal(t, server.URL, page.URL)
	assert.Equal(t, "Rust Engineer - Acme", page.Title)
	assert.Contains(t, page.Text, "Rust Engineer Build services in Rust.")
	assert.NotContains(t, page.Text, "ignored")
}

func TestPage_TruncatesHTML(t *testing.T) {
	body := "<html><body>" + strings.Repeat("x", 1000) + "</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	page, err := NewClient().Page(context.Background(), server.URL, 100)
	require.NoError(t, err)
	assert.Len(t, page.HTML, 100)
	assert.Equal(t, body[:100], page.HTML)
}

func TestPage_CapsText(t *testing.T) {
	body := "<html><body>" + strings.Repeat("word ", 1000) + "</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	page, err := NewClient().Page(context.Background(), server.URL, 0)
	require.NoError(t, err)
	assert.Len(t, page.Text, TextLimit)
}

func TestPage_NonSuccessStatusIsReported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`<html><body>gone</body></html>`))
	}))
	defer server.Close()

	// A non-2xx status is not an error; the caller sees the status code.
	page, err := NewClient().Page(context.Background(), server.URL, 0)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, page.Status)
	assert.Equal(t, "gone", page.Text)
}

func TestPage_MissingTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><p>no title here</p></body></html>`))
	}))
	defer server.Close()

	page, err := NewClient().Page(context.Background(), server.URL, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Title)
	assert.Equal(t, "no title here", page.Text)
}

func TestPage_InvalidURL(t *testing.T) {
	tests := []string{"", "not a url", "example.com/no-scheme", "http://"}

	for _, rawURL := range tests {
		_, err := NewClient().Page(context.Background(), rawURL, 0)
		require.Error(t, err, "url %q", rawURL)

		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "invalid URL", fetchErr.Message)
	}
}

func TestPage_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	_, err := NewClient().Page(context.Background(), server.URL, 0)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "HTTP request failed", fetchErr.Message)
	assert.Contains(t, fetchErr.Error(), server.URL)
}

func TestParse_CollapsesWhitespace(t *testing.T) {
	title, text, err := Parse("<html><head><title>T</title></head><body><p>a\n\n  b</p><div>c</div></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "T", title)
	assert.Equal(t, "T a b c", text)
}
