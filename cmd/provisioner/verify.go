package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/provisioner/internal/app"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <manifest>",
	Short: "Evaluate each step's check on this host",
	Long: `Verify evaluates the read-only check predicate of every step on the
local host and reports which steps are already satisfied.

Exits non-zero when any step needs to be applied. With --strict, steps
whose state cannot be determined also fail verification.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

var verifyStrict bool

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().BoolVar(&verifyStrict, "strict", false, "treat steps without a usable check as unsatisfied")
}

func runVerify(cmd *cobra.Command, args []string) error {
	p, err := provisionerFor(cmd)
	if err != nil {
		return err
	}

	results, err := p.Verify(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	p.PrintResults(results)

	summary := app.Summarize(results)
	if summary.NeedsApply > 0 {
		return fmt.Errorf("%d of %d steps need to be applied", summary.NeedsApply, summary.Total)
	}
	if verifyStrict && summary.Unknown > 0 {
		return fmt.Errorf("%d of %d steps could not be verified", summary.Unknown, summary.Total)
	}
	return nil
}
