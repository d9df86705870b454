package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milk9111/sensorstage/levels"
	"github.com/milk9111/sensorstage/prefabs"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List embedded stages",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	names, err := levels.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No stages available.")
		return nil
	}

	maxLen := len("Stage")
	for _, n := range names {
		if len(n) > maxLen {
			maxLen = len(n)
		}
	}
	fmt.Printf("  %-*s  %s\n", maxLen, "Stage", "Entities")
	fmt.Printf("  %-*s  %s\n", maxLen, "-----", "--------")
	for _, n := range names {
		stage, err := levels.LoadStage(n)
		if err != nil {
			fmt.Printf("  %-*s  error: %v\n", maxLen, n, err)
			continue
		}
		fmt.Printf("  %-*s  %d\n", maxLen, n, len(stage.Entities))
	}
	fmt.Println()
	fmt.Println("Run 'stagesim run <stage>' to simulate one.")
	return nil
}

var prefabsCmd = &cobra.Command{
	Use:   "prefabs",
	Short: "List prefabs, marking ones overridden on disk",
	RunE:  runPrefabs,
}

func runPrefabs(cmd *cobra.Command, args []string) error {
	names, err := prefabs.List()
	if err != nil {
		return err
	}
	for _, n := range names {
		line := "  " + strings.TrimSuffix(n, ".yaml")
		if mod, ok := prefabs.ModTime(n); ok {
			line += fmt.Sprintf("  (disk override, modified %s)", mod.Format("2006-01-02 15:04"))
		}
		fmt.Println(line)
	}
	return nil
}
