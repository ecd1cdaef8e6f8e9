// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-hunter/internal/settings"
	"github.com/jonathan/job-hunter/internal/store"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobMatches outputs saved matches, newest first.
func (p *Printer) PrintJobMatches(matches []store.JobMatch) {
	if len(matches) == 0 {
		p.printBox("JOB MATCHES", "No saved matches.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d saved matches:\n\n", len(matches)))

	for i, m := range matches {
		title := m.Title
		if title == "" {
			title = "(untitled)"
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    Score: %.0f\n", m.MatchScore))
		if m.Company != "" {
			sb.WriteString(fmt.Sprintf("    Company: %s\n", m.Company))
		}
		if m.Location != "" {
			sb.WriteString(fmt.Sprintf("    Location: %s\n", m.Location))
		}
		sb.WriteString(fmt.Sprintf("    %s\n", m.URL))
		sb.WriteString(fmt.Sprintf("    Saved: %s\n", m.CreatedAt))
		if i < len(matches)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("JOB MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSettings outputs the current settings snapshot.
func (p *Printer) PrintSettings(s settings.Settings) {
	var sb strings.Builder

	remote := "off"
	if s.RemoteOnly {
		remote = "on"
	}
	sb.WriteString(fmt.Sprintf("Remote only:  %s\n", remote))
	if s.SalaryMin != nil && s.SalaryMax != nil {
		sb.WriteString(fmt.Sprintf("Salary range: %d - %d\n", *s.SalaryMin, *s.SalaryMax))
	}
	sb.WriteString("\n")

	appendList := func(name string, values []string) {
		if len(values) == 0 {
			return
		}
		sb.WriteString(name + ":\n")
		for _, value := range values {
			sb.WriteString(fmt.Sprintf("  • %s\n", value))
		}
	}
	appendList("Preferred titles", s.PreferredTitles)
	appendList("Locations", s.Locations)
	appendList("Keywords", s.Keywords)
	appendList("Company blacklist", s.CompanyBlacklist)

	p.printBox("JOB SEARCH SETTINGS", strings.TrimSuffix(sb.String(), "\n"))
}
