package main

import (
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <manifest>",
	Short: "List the steps a manifest declares",
	Long: `Plan loads a manifest and lists each step with the number of shell
commands it renders to and its check predicate. Nothing is executed.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	p, err := provisionerFor(cmd)
	if err != nil {
		return err
	}

	steps, err := p.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	p.PrintPlan(steps)
	return nil
}
