package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-hunter/internal/observability"
	"github.com/jonathan/job-hunter/internal/store"
	"github.com/jonathan/job-hunter/internal/tools"
)

var (
	matchesDataDir string
	matchesLimit   int
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Inspect saved job matches",
}

var matchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent job matches, newest first",
	RunE:  runMatchesList,
}

var matchesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved job matches",
	RunE:  runMatchesClear,
}

func init() {
	matchesCmd.PersistentFlags().StringVar(&matchesDataDir, "data-dir", defaultDataDir(), "Directory holding the match database")
	matchesListCmd.Flags().IntVar(&matchesLimit, "limit", tools.DefaultListLimit, "Maximum matches to show")
	matchesCmd.AddCommand(matchesListCmd)
	matchesCmd.AddCommand(matchesClearCmd)
	rootCmd.AddCommand(matchesCmd)
}

func openMatchDB() (*store.DB, error) {
	db := store.NewDB(filepath.Join(matchesDataDir, store.Filename))
	if err := db.Open(); err != nil {
		return nil, err
	}
	return db, nil
}

func runMatchesList(_ *cobra.Command, _ []string) error {
	db, err := openMatchDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	matches, err := db.List(context.Background(), matchesLimit)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintJobMatches(matches)
	return nil
}

func runMatchesClear(_ *cobra.Command, _ []string) error {
	db, err := openMatchDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.Clear(context.Background())
}
