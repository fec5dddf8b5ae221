package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/provisioner/internal/domain/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a manifest into a target representation",
}

var renderCloudInitCmd = &cobra.Command{
	Use:   "cloud-init <manifest>",
	Short: "Render a #cloud-config document",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenderCloudInit,
}

var renderShellCmd = &cobra.Command{
	Use:   "shell <manifest>",
	Short: "Render an idempotent POSIX shell script",
	Long: `Render an idempotent POSIX shell script.

Content digests are computed now and embedded in the script, so the script
can run later on a host with no access to this machine. Re-running it
skips every file whose content already matches.`,
	Args: cobra.ExactArgs(1),
	RunE: runRenderShell,
}

var renderChecksCmd = &cobra.Command{
	Use:   "checks <manifest>",
	Short: "Render the read-only check predicate of each step",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenderChecks,
}

var renderOutput string

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.AddCommand(renderCloudInitCmd, renderShellCmd, renderChecksCmd)

	renderCmd.PersistentFlags().StringVarP(&renderOutput, "output", "o", "", "write to file instead of stdout")
}

func runRenderCloudInit(cmd *cobra.Command, args []string) error {
	p, err := provisionerFor(cmd)
	if err != nil {
		return err
	}

	out, err := p.CloudConfig(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeOutput(cmd, out, 0o644)
}

func runRenderShell(cmd *cobra.Command, args []string) error {
	p, err := provisionerFor(cmd)
	if err != nil {
		return err
	}

	script, err := p.Script(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeOutput(cmd, []byte(script), 0o755)
}

func runRenderChecks(cmd *cobra.Command, args []string) error {
	p, err := provisionerFor(cmd)
	if err != nil {
		return err
	}

	checks, err := p.Checks(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeOutput(cmd, []byte(render.ChecksText(checks)), 0o644)
}

func writeOutput(cmd *cobra.Command, data []byte, perm os.FileMode) error {
	if renderOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(renderOutput, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOutput, err)
	}
	return nil
}
