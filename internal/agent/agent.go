// Package agent runs the analysis workflow inside the short-lived worker
// process: connect, initialize, load settings, fetch the page, extract and
// score locally, persist the match, and nudge the UI.
package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/jonathan/job-hunter/internal/extract"
	"github.com/jonathan/job-hunter/internal/match"
	"github.com/jonathan/job-hunter/internal/rpc"
	"github.com/jonathan/job-hunter/internal/settings"
	"github.com/jonathan/job-hunter/internal/store"
	"github.com/jonathan/job-hunter/internal/tools"
)

// Environment variables carrying the worker bootstrap parameters.
const (
	EnvPort       = "JOB_HUNTER_MCP_PORT"
	EnvTargetURL  = "JOB_HUNTER_TARGET_URL"
	EnvAnalysisID = "JOB_HUNTER_ANALYSIS_ID"
)

// FetchMaxLength is the HTML budget the worker requests from fetch_content.
const FetchMaxLength = 120_000

// Config is the worker bootstrap: where the server listens, what to analyze,
// and an optional correlation id.
type Config struct {
	Port       int
	TargetURL  string
	AnalysisID string
}

// ConfigFromEnv reads the bootstrap parameters handed over by the host.
func ConfigFromEnv() (Config, error) {
	portValue := os.Getenv(EnvPort)
	if portValue == "" {
		return Config{}, fmt.Errorf("missing %s", EnvPort)
	}
	port, err := strconv.Atoi(portValue)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", EnvPort, err)
	}

	targetURL := os.Getenv(EnvTargetURL)
	if targetURL == "" {
		return Config{}, fmt.Errorf("missing %s", EnvTargetURL)
	}

	return Config{
		Port:       port,
		TargetURL:  targetURL,
		AnalysisID: os.Getenv(EnvAnalysisID),
	}, nil
}

// Run executes the fixed analysis workflow once. Connect and initialize
// failures abort the run; settings, persist, and UI-nudge failures are
// absorbed with a warning so a partial analysis still completes.
func Run(cfg Config, log *slog.Logger) error {
	client, err := rpc.Dial(cfg.Port)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if _, err := client.Call("initialize", map[string]any{}); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	prefs := loadSettings(client, log)

	page, err := fetchContent(client, cfg.TargetURL)
	if err != nil {
		return err
	}

	listing := extract.FromPage(page.HTML, page.Text, page.Title)
	scored := match.Listing(listing, prefs)

	saveMatch(client, cfg, listing, scored, log)

	// Best-effort UI nudges.
	if _, err := client.CallTool(tools.NameSetQueryParams, map[string]any{
		"url":        cfg.TargetURL,
		"analysisId": optional(cfg.AnalysisID),
	}); err != nil {
		log.Warn("set_query_params failed", "error", err)
	}
	if _, err := client.CallTool(tools.NameReloadPage, map[string]any{}); err != nil {
		log.Warn("reload_page failed", "error", err)
	}

	return nil
}

// loadSettings fetches the settings snapshot, falling back to the built-in
// defaults on any failure.
func loadSettings(client *rpc.Client, log *slog.Logger) settings.Settings {
	raw, err := client.CallTool(tools.NameGetSettings, map[string]any{})
	if err != nil {
		log.Warn("get_settings failed, using defaults", "error", err)
		return settings.Default()
	}

	var result struct {
		Settings settings.Settings `json:"settings"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Warn("settings parse failed, using defaults", "error", err)
		return settings.Default()
	}
	return result.Settings
}

// pageContent is the slice of the fetch_content result the worker consumes.
// Missing fields default to empty strings.
type pageContent struct {
	HTML  string `json:"html"`
	Text  string `json:"text"`
	Title string `json:"title"`
}

func fetchContent(client *rpc.Client, targetURL string) (pageContent, error) {
	raw, err := client.CallTool(tools.NameFetchContent, map[string]any{
		"url":       targetURL,
		"maxLength": FetchMaxLength,
	})
	if err != nil {
		return pageContent{}, fmt.Errorf("fetch_content: %w", err)
	}

	var page pageContent
	if err := json.Unmarshal(raw, &page); err != nil {
		return pageContent{}, fmt.Errorf("fetch_content parse: %w", err)
	}
	return page, nil
}

// saveMatch persists the analysis outcome. Failures are absorbed: the run
// still completes, but without a saved record the user gets no feedback, so
// the failure is logged loudly.
func saveMatch(client *rpc.Client, cfg Config, listing extract.Listing, scored match.Result, log *slog.Logger) {
	input := store.JobMatchInput{
		AnalysisID: cfg.AnalysisID,
		URL:        cfg.TargetURL,
		Title:      listing.Title,
		Company:    listing.Company,
		Location:   listing.Location,
		MatchScore: &scored.Score,
		Summary:    scored.Summary,
		RawExcerpt: listing.RawExcerpt,
	}
	if _, err := client.CallTool(tools.NameSaveJobMatch, input); err != nil {
		log.Warn("save_job_match failed, analysis result lost", "url", cfg.TargetURL, "error", err)
	}
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
