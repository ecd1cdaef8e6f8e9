// Package match scores an extracted listing against the user's settings.
package match

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-hunter/internal/extract"
	"github.com/jonathan/job-hunter/internal/settings"
)

// Score bounds and adjustment weights.
const (
	neutralScore  = 50.0
	titleBonus    = 10.0
	locationBonus = 6.0
	remoteBonus   = 8.0
	blacklistHit  = 15.0
)

// Result is the outcome of scoring one listing.
type Result struct {
	Score   float64
	Summary string
}

// Listing computes a 0-100 relevance score and a one-line summary. The base
// score is the fraction of keywords found in the text (or 50 with no
// keywords); title, location, and remote signals add independent bonuses and
// blacklisted companies subtract a penalty.
func Listing(l extract.Listing, s settings.Settings) Result {
	textLower := strings.ToLower(l.Text)

	score := neutralScore
	if len(s.Keywords) > 0 {
		hits := 0
		for _, keyword := range s.Keywords {
			if strings.Contains(textLower, strings.ToLower(keyword)) {
				hits++
			}
		}
		score = float64(hits) / float64(len(s.Keywords)) * 100.0
	}

	if l.Title != "" && containsAny(strings.ToLower(l.Title), s.PreferredTitles) {
		score += titleBonus
	}
	if l.Location != "" && containsAny(strings.ToLower(l.Location), s.Locations) {
		score += locationBonus
	}
	if s.RemoteOnly && strings.Contains(textLower, "remote") {
		score += remoteBonus
	}
	if l.Company != "" && containsAny(strings.ToLower(l.Company), s.CompanyBlacklist) {
		score -= blacklistHit
	}

	score = min(max(score, 0.0), 100.0)

	remote := "off"
	if s.RemoteOnly {
		remote = "on"
	}
	title := l.Title
	if title == "" {
		title = "unknown"
	}
	summary := fmt.Sprintf("Matched %.0f%% of keywords. Remote preference: %s. Title signal: %s.",
		score, remote, title)

	return Result{Score: score, Summary: summary}
}

// containsAny reports whether any non-empty candidate occurs in haystack,
// case-insensitively.
func containsAny(haystack string, candidates []string) bool {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(candidate)) {
			return true
		}
	}
	return false
}
