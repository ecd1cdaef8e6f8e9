package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/job-hunter/internal/agent"
	"github.com/jonathan/job-hunter/internal/logging"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis as the worker process",
	Long:  "Connects to the host's tool server and runs the analysis workflow once. Bootstrap parameters come from JOB_HUNTER_MCP_PORT, JOB_HUNTER_TARGET_URL, and JOB_HUNTER_ANALYSIS_ID.",
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	log := logging.FromEnv()

	cfg, err := agent.ConfigFromEnv()
	if err != nil {
		return err
	}
	return agent.Run(cfg, log)
}
