package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/milk9111/sensorstage/audit"
)

var flagRun string

var auditCmd = &cobra.Command{
	Use:   "audit <db>",
	Short: "Summarise and verify a recorded run",
	Long: `Prints contact counts by gimmick kind and state for a recorded run and
replays each gimmick/actor lifecycle, reporting any out-of-order state.

Examples:
  stagesim audit run.db
  stagesim audit run.db --run 3`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&flagRun, "run", "latest", "Run id to inspect")
}

func runAudit(cmd *cobra.Command, args []string) error {
	db, err := audit.OpenDB(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	var run int64
	if flagRun == "latest" {
		run, err = audit.LatestRun(db)
		if err != nil {
			return err
		}
	} else {
		run, err = strconv.ParseInt(flagRun, 10, 64)
		if err != nil {
			return fmt.Errorf("bad --run %q: %w", flagRun, err)
		}
	}
	if run == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	runs, err := audit.Runs(db)
	if err != nil {
		return err
	}
	for _, r := range runs {
		if r.ID == run {
			fmt.Printf("Run %d - %s (%s)\n", r.ID, r.Stage, r.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Printf("  %d contacts, %d snapshots\n\n", r.Contacts, r.Snapshots)
		}
	}

	summaries, err := audit.Summaries(db, run)
	if err != nil {
		return err
	}
	fmt.Printf("  %-16s  %-8s  %s\n", "Kind", "State", "Count")
	fmt.Printf("  %-16s  %-8s  %s\n", "----", "-----", "-----")
	for _, s := range summaries {
		fmt.Printf("  %-16s  %-8s  %d\n", s.Kind, s.State, s.Count)
	}
	fmt.Println()

	violations, err := audit.CheckLifecycle(db, run)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		fmt.Println("Lifecycle order ok.")
		return nil
	}
	for _, v := range violations {
		fmt.Println("  " + v.String())
	}
	return fmt.Errorf("%d lifecycle violations", len(violations))
}
