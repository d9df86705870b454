// stagesim runs stages headlessly.
//
// Usage:
//
//	stagesim list                - List embedded stages
//	stagesim prefabs             - List prefabs and on-disk overrides
//	stagesim run <stage>         - Run a stage and check its expectations
//	stagesim audit <db>          - Summarise and verify a recorded run
//
// Global flags:
//
//	--verbose       - Log every contact change
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var flagVerbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stagesim",
	Short: "Run platformer stages without a window",
	Long: `stagesim steps a stage at a fixed tick rate, fed by the stage's scripted
input timeline, and reports gimmick contacts.

Examples:
  stagesim list
  stagesim run spring_zone --ticks 120
  stagesim run green_hill --audit run.db
  stagesim audit run.db`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every contact change")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(prefabsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(auditCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "stagesim",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
