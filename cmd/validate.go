package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the topic catalog",
	Long: `Validate loads the topic catalog, checks it against the schema, and
builds the dependency graph, reporting duplicate topics, dangling
prerequisites, and dependency cycles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		graph, err := loadGraph(cmd)
		if err != nil {
			return err
		}

		stages := graph.Stages()
		fmt.Printf("Catalog OK: %d topics across %d stages\n", len(graph.Topics()), len(stages))
		for _, s := range stages {
			fmt.Printf("  %s: %d topics\n", s.Name, len(s.Topics))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().String("catalog", "", "Topic catalog YAML (defaults to the embedded catalog)")
}
