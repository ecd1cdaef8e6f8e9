// Package extract derives structured job listing fields from scraped HTML
// and text.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExcerptLimit caps the stored raw excerpt.
const ExcerptLimit = 400

// Listing holds the fields recovered from a scraped page. Empty strings mean
// the field was absent.
type Listing struct {
	Title      string
	Company    string
	Location   string
	Text       string
	RawExcerpt string
}

// companyMetaKeys are the meta tag identifiers that carry a site or company
// name, in scan order.
var companyMetaKeys = map[string]bool{
	"og:site_name":     true,
	"application-name": true,
	"company":          true,
}

// titleSeparators are tried in this fixed order when deriving a company name
// from a combined title.
var titleSeparators = []string{" - ", " | ", " @ "}

var locationPattern = regexp.MustCompile(`Location[:\s]+([A-Za-z0-9 ,./-]{3,60})`)

// FromPage extracts structured fields from raw HTML, the page's plain text,
// and a fallback title (typically the <title> of the fetched document).
func FromPage(rawHTML, text, fallbackTitle string) Listing {
	// A parse failure only disables the HTML-derived fields; text-derived
	// fields are still produced.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		doc = nil
	}

	title := firstHeading(doc)
	if title == "" && strings.TrimSpace(fallbackTitle) != "" {
		title = fallbackTitle
	}

	company := metaCompany(doc)
	if company == "" && title != "" {
		company = splitCompanyFromTitle(title)
	}

	return Listing{
		Title:      title,
		Company:    company,
		Location:   extractLocation(text),
		Text:       text,
		RawExcerpt: excerpt(text),
	}
}

// firstHeading returns the text of the first non-blank <h1>.
func firstHeading(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	var title string
	doc.Find("h1").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := s.Text(); strings.TrimSpace(text) != "" {
			title = text
			return false
		}
		return true
	})
	return title
}

// metaCompany scans meta tags for a site or company name.
func metaCompany(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	var company string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		key, ok := s.Attr("property")
		if !ok {
			key, _ = s.Attr("name")
		}
		if !companyMetaKeys[key] {
			return true
		}
		if content, ok := s.Attr("content"); ok {
			company = content
			return false
		}
		return true
	})
	return company
}

// splitCompanyFromTitle takes the trailing segment of a "Role - Company"
// style title. Separators are tried in fixed order; the first that splits
// wins.
func splitCompanyFromTitle(title string) string {
	for _, sep := range titleSeparators {
		parts := strings.Split(title, sep)
		if len(parts) >= 2 {
			return strings.TrimSpace(parts[len(parts)-1])
		}
	}
	return ""
}

// extractLocation captures the first "Location: ..." fragment in the text.
func extractLocation(text string) string {
	caps := locationPattern.FindStringSubmatch(text)
	if caps == nil {
		return ""
	}
	return strings.TrimSpace(caps[1])
}

// excerpt keeps the first ExcerptLimit bytes of the text. The limit is a
// byte count, so the cut may split a multi-byte rune.
func excerpt(text string) string {
	if len(text) > ExcerptLimit {
		return text[:ExcerptLimit]
	}
	return text
}
