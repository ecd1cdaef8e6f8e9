package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jonathan/job-hunter/internal/fetch"
	"github.com/jonathan/job-hunter/internal/notify"
	"github.com/jonathan/job-hunter/internal/settings"
	"github.com/jonathan/job-hunter/internal/store"
)

// DefaultListLimit bounds list_job_matches when no limit is given.
const DefaultListLimit = 50

// MatchStore is the narrow record-store capability the tools need.
type MatchStore interface {
	Insert(ctx context.Context, input store.JobMatchInput) (store.JobMatch, error)
	List(ctx context.Context, limit int) ([]store.JobMatch, error)
	Clear(ctx context.Context) error
}

// Deps are the collaborators the tool handlers execute against.
type Deps struct {
	Fetcher  *fetch.Client
	Settings settings.Store
	Matches  MatchStore
	Notifier notify.Notifier
	Log      *slog.Logger
}

// NewRegistryWithDefaults builds the full eight-tool table over the given
// collaborators.
func NewRegistryWithDefaults(deps Deps) (*Registry, error) {
	r := NewRegistry()

	entries := []struct {
		def     Definition
		handler Handler
	}{
		{
			Definition{
				Name:        NameSetQueryParams,
				Description: "Update the UI query parameters for the current analysis.",
				InputSchema: setQueryParamsSchema,
			},
			deps.setQueryParams,
		},
		{
			Definition{
				Name:        NameFetchContent,
				Description: "Retrieve HTML content for a given URL.",
				InputSchema: fetchContentSchema,
			},
			deps.fetchContent,
		},
		{
			Definition{
				Name:        NameReloadPage,
				Description: "Reload the current webview.",
				InputSchema: emptySchema,
			},
			deps.reloadPage,
		},
		{
			Definition{
				Name:        NameGetSettings,
				Description: "Load job-search settings from the settings store.",
				InputSchema: emptySchema,
			},
			deps.getSettings,
		},
		{
			Definition{
				Name:        NameSetSettings,
				Description: "Persist job-search settings to the settings store.",
				InputSchema: setSettingsSchema,
			},
			deps.setSettings,
		},
		{
			Definition{
				Name:        NameSaveJobMatch,
				Description: "Save a job match to the record store.",
				InputSchema: saveJobMatchSchema,
			},
			deps.saveJobMatch,
		},
		{
			Definition{
				Name:        NameListJobMatches,
				Description: "List recent job matches.",
				InputSchema: listJobMatchesSchema,
			},
			deps.listJobMatches,
		},
		{
			Definition{
				Name:        NameClearJobMatches,
				Description: "Clear saved job matches.",
				InputSchema: emptySchema,
			},
			deps.clearJobMatches,
		},
	}

	for _, entry := range entries {
		if err := r.Register(entry.def, entry.handler); err != nil {
			return nil, err
		}
	}
	return r, nil
}

type setQueryParamsArgs struct {
	URL        json.RawMessage `json:"url"`
	AnalysisID json.RawMessage `json:"analysisId"`
}

// setQueryParams forwards both fields verbatim to the UI and always
// succeeds.
func (d Deps) setQueryParams(_ context.Context, args json.RawMessage) (any, error) {
	var params setQueryParamsArgs
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid set_query_params arguments: %w", err)
	}

	payload := map[string]json.RawMessage{
		"url":        rawOrNull(params.URL),
		"analysisId": rawOrNull(params.AnalysisID),
	}
	d.Notifier.Emit(notify.EventSetQueryParams, payload)
	return map[string]bool{"ok": true}, nil
}

type fetchContentArgs struct {
	URL       string `json:"url"`
	MaxLength int    `json:"maxLength"`
}

func (d Deps) fetchContent(ctx context.Context, args json.RawMessage) (any, error) {
	var params fetchContentArgs
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid fetch_content arguments: %w", err)
	}
	if params.MaxLength <= 0 {
		params.MaxLength = fetch.DefaultMaxLength
	}

	page, err := d.Fetcher.Page(ctx, params.URL, params.MaxLength)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (d Deps) reloadPage(context.Context, json.RawMessage) (any, error) {
	d.Notifier.Emit(notify.EventReload, map[string]any{})
	return map[string]bool{"ok": true}, nil
}

func (d Deps) getSettings(context.Context, json.RawMessage) (any, error) {
	current, err := d.Settings.Load()
	if err != nil {
		return nil, fmt.Errorf("settings load: %w", err)
	}
	if current == nil {
		defaults := settings.Default()
		current = &defaults
	}
	return map[string]any{"settings": current}, nil
}

type setSettingsArgs struct {
	Settings json.RawMessage `json:"settings"`
}

func (d Deps) setSettings(_ context.Context, args json.RawMessage) (any, error) {
	var params setSettingsArgs
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid set_settings arguments: %w", err)
	}

	var snapshot settings.Settings
	decoder := json.NewDecoder(bytes.NewReader(params.Settings))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("settings parse: %w", err)
	}

	saved, err := d.Settings.Save(snapshot)
	if err != nil {
		return nil, fmt.Errorf("settings save: %w", err)
	}
	return map[string]any{"settings": saved}, nil
}

func (d Deps) saveJobMatch(ctx context.Context, args json.RawMessage) (any, error) {
	var input store.JobMatchInput
	if err := json.Unmarshal(args, &input); err != nil {
		return nil, fmt.Errorf("job match parse: %w", err)
	}

	saved, err := d.Matches.Insert(ctx, input)
	if err != nil {
		return nil, err
	}

	d.Notifier.Emit(notify.EventAnalysisCompleted, map[string]any{"match": saved})
	return map[string]any{"match": saved}, nil
}

type listJobMatchesArgs struct {
	Limit int `json:"limit"`
}

func (d Deps) listJobMatches(ctx context.Context, args json.RawMessage) (any, error) {
	var params listJobMatchesArgs
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid list_job_matches arguments: %w", err)
	}
	if params.Limit <= 0 {
		params.Limit = DefaultListLimit
	}

	matches, err := d.Matches.List(ctx, params.Limit)
	if err != nil {
		return nil, err
	}
	return map[string]any{"matches": matches}, nil
}

func (d Deps) clearJobMatches(ctx context.Context, _ json.RawMessage) (any, error) {
	if err := d.Matches.Clear(ctx); err != nil {
		return nil, err
	}
	return map[string]bool{"ok": true}, nil
}

func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
