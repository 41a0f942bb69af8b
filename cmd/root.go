// Package cmd wires the quantslearn CLI.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "quantslearn",
	Short: "Interactive quant-finance interview prep",
	Long:  "Quants Learn — a topic dependency map, progress tracker, and AI explainer for quantitative finance interview preparation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

// logger is shared by all commands.
var logger *zap.SugaredLogger

func init() {
	zl, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	logger = zl.Sugar()

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
