// Package settings holds the user's job-search preferences and the
// file-backed snapshot store that persists them.
package settings

// Settings is the job-search preference snapshot. The JSON shape (camelCase
// keys) is shared with the UI and the wire protocol, so tags must not change.
type Settings struct {
	PreferredTitles  []string `json:"preferredTitles"`
	Locations        []string `json:"locations"`
	Keywords         []string `json:"keywords"`
	RemoteOnly       bool     `json:"remoteOnly"`
	SalaryMin        *int64   `json:"salaryMin"`
	SalaryMax        *int64   `json:"salaryMax"`
	CompanyBlacklist []string `json:"companyBlacklist"`
}

// Default returns the built-in settings snapshot used until the user saves
// their own.
func Default() Settings {
	salaryMin := int64(120_000)
	salaryMax := int64(200_000)
	return Settings{
		PreferredTitles: []string{
			"Software Engineer",
			"Full Stack Engineer",
			"Frontend Engineer",
			"Backend Engineer",
		},
		Locations:        []string{"Remote", "United States"},
		Keywords:         []string{"TypeScript", "React", "Node.js", "Rust", "Tauri", "Next.js"},
		RemoteOnly:       true,
		SalaryMin:        &salaryMin,
		SalaryMax:        &salaryMax,
		CompanyBlacklist: []string{},
	}
}
