package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-projector/internal/config"
)

var exampleConfigCmd = &cobra.Command{
	Use:   "example-config [file]",
	Short: "Write an example scenario configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "example_config.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		parser := config.NewInputParser()
		if err := parser.SaveToFile(parser.CreateExampleConfiguration(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exampleConfigCmd)
}
