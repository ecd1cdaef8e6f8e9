// Package main provides the job-hunter CLI: the long-lived host process and
// the short-lived analysis worker share this executable.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobhunter",
	Short: "Job listing analysis host and worker",
	Long:  "job-hunter scores job listings against your search preferences. The serve command runs the host (tool server, record store, UI API); analyze runs the per-listing worker.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// defaultDataDir resolves where the settings file and match database live.
func defaultDataDir() string {
	if dir := os.Getenv("JOB_HUNTER_DATA_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return ".job-hunter"
	}
	return filepath.Join(base, "job-hunter")
}
