package tools

import "encoding/json"

// Tool names.
const (
	NameSetQueryParams  = "set_query_params"
	NameFetchContent    = "fetch_content"
	NameReloadPage      = "reload_page"
	NameGetSettings     = "get_settings"
	NameSetSettings     = "set_settings"
	NameSaveJobMatch    = "save_job_match"
	NameListJobMatches  = "list_job_matches"
	NameClearJobMatches = "clear_job_matches"
)

// Input schemas. Unknown fields and missing required fields are rejected at
// the dispatch boundary rather than defaulted silently.
var (
	setQueryParamsSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"url": { "type": ["string", "null"] },
			"analysisId": { "type": ["string", "null"] }
		},
		"additionalProperties": false
	}`)

	fetchContentSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"url": { "type": "string" },
			"maxLength": { "type": "number" }
		},
		"required": ["url"],
		"additionalProperties": false
	}`)

	emptySchema = json.RawMessage(`{
		"type": "object",
		"additionalProperties": false
	}`)

	setSettingsSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"settings": { "type": "object" }
		},
		"required": ["settings"],
		"additionalProperties": false
	}`)

	saveJobMatchSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"analysis_id": { "type": ["string", "null"] },
			"url": { "type": "string" },
			"title": { "type": ["string", "null"] },
			"company": { "type": ["string", "null"] },
			"location": { "type": ["string", "null"] },
			"match_score": { "type": "number" },
			"summary": { "type": "string" },
			"raw_excerpt": { "type": ["string", "null"] }
		},
		"required": ["url", "summary", "match_score"],
		"additionalProperties": false
	}`)

	listJobMatchesSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"limit": { "type": "number" }
		},
		"additionalProperties": false
	}`)
)
