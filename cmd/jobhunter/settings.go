package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-hunter/internal/observability"
	"github.com/jonathan/job-hunter/internal/settings"
)

var settingsDataDir string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect job-search settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings snapshot",
	RunE:  runSettingsShow,
}

func init() {
	settingsCmd.PersistentFlags().StringVar(&settingsDataDir, "data-dir", defaultDataDir(), "Directory holding the settings file")
	settingsCmd.AddCommand(settingsShowCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	fileStore := settings.NewFileStore(filepath.Join(settingsDataDir, settings.StoreFilename))
	current, err := fileStore.Load()
	if err != nil {
		return err
	}
	if current == nil {
		defaults := settings.Default()
		current = &defaults
	}

	observability.NewPrinter(os.Stdout).PrintSettings(*current)
	return nil
}
