package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPage_TitleFromHeading(t *testing.T) {
	html := `<html><body><h1>Staff Engineer</h1></body></html>`

	listing := FromPage(html, "some text", "Fallback Title")
	assert.Equal(t, "Staff Engineer", listing.Title)
}

func TestFromPage_TitleSkipsBlankHeadings(t *testing.T) {
	html := `<html><body><h1>   </h1><h1>Platform Engineer</h1></body></html>`

	listing := FromPage(html, "", "")
	assert.Equal(t, "Platform Engineer", listing.Title)
}

func TestFromPage_TitleFallback(t *testing.T) {
	listing := FromPage(`<html><body><p>no heading</p></body></html>`, "", "Backend Engineer - Initech")
	assert.Equal(t, "Backend Engineer - Initech", listing.Title)
}

func TestFromPage_TitleAbsent(t *testing.T) {
	listing := FromPage(`<html><body></body></html>`, "", "   ")
	assert.Empty(t, listing.Title)
}

func TestFromPage_CompanyFromMeta(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og:site_name property",
			html: `<html><head><meta property="og:site_name" content="Globex"></head></html>`,
			want: "Globex",
		},
		{
			name: "application-name",
			html: `<html><head><meta name="application-name" content="Hooli Careers"></head></html>`,
			want: "Hooli Careers",
		},
		{
			name: "company",
			html: `<html><head><meta name="company" content="Initech"></head></html>`,
			want: "Initech",
		},
		{
			name: "unrelated meta ignored",
			html: `<html><head><meta name="viewport" content="width=device-width"></head></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := FromPage(tt.html, "", "")
			assert.Equal(t, tt.want, listing.Company)
		})
	}
}

func TestFromPage_CompanyFromTitleSeparator(t *testing.T) {
	listing := FromPage(`<html></html>`, "", "Senior Backend Engineer - Acme Corp")
	assert.Equal(t, "Senior Backend Engineer - Acme Corp", listing.Title)
	assert.Equal(t, "Acme Corp", listing.Company)
}

func TestSplitCompanyFromTitle_SeparatorOrder(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Engineer - Acme", "Acme"},
		{"Engineer | Globex", "Globex"},
		{"Engineer @ Initech", "Initech"},
		// " - " is tried first even when " | " appears earlier in the string.
		{"Engineer | Platform - Acme", "Acme"},
		{"Engineer at Acme", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitCompanyFromTitle(tt.title), "title %q", tt.title)
	}
}

func TestFromPage_HeadingTitleSuppressesFallbackCompany(t *testing.T) {
	// The company split runs on the resolved title. With a heading present
	// the document title never contributes, even when it carries a
	// separator.
	html := `<html><body><h1>Rust Engineer</h1></body></html>`

	listing := FromPage(html, "", "Rust Engineer - Acme")
	assert.Equal(t, "Rust Engineer", listing.Title)
	assert.Empty(t, listing.Company)
}

func TestFromPage_MetaCompanyWinsOverTitle(t *testing.T) {
	html := `<html><head><meta property="og:site_name" content="Globex"></head><body><h1>Engineer - Acme</h1></body></html>`

	listing := FromPage(html, "", "")
	assert.Equal(t, "Globex", listing.Company)
}

func TestFromPage_Location(t *testing.T) {
	listing := FromPage("", "Great role. Location: Remote, USA! Apply now.", "")
	assert.Equal(t, "Remote, USA", listing.Location)
}

func TestFromPage_LocationCaptureIsGreedy(t *testing.T) {
	// The capture runs to the first character outside its class, so plain
	// prose after the location is swallowed up to the length cap.
	listing := FromPage("", "Location: Remote, USA and more perks!", "")
	assert.Equal(t, "Remote, USA and more perks", listing.Location)
}

func TestFromPage_LocationAbsent(t *testing.T) {
	listing := FromPage("", "no geography mentioned here", "")
	assert.Empty(t, listing.Location)
}

func TestFromPage_Excerpt(t *testing.T) {
	long := strings.Repeat("a", 500)

	listing := FromPage("", long, "")
	assert.Len(t, listing.RawExcerpt, ExcerptLimit)

	// The cap counts bytes, not runes.
	multibyte := FromPage("", strings.Repeat("é", 300), "")
	assert.Len(t, multibyte.RawExcerpt, ExcerptLimit)

	short := FromPage("", "short text", "")
	assert.Equal(t, "short text", short.RawExcerpt)

	empty := FromPage("", "", "")
	assert.Empty(t, empty.RawExcerpt)
}
