// Package ports defines interfaces for external dependencies.
package ports

import "context"

// CommandResult represents the result of executing a command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Args    []string
}

// CommandRunner executes commands. A non-zero exit is reported through
// CommandResult.ExitCode; the error is reserved for failures to run at all.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)
}

// ShellArgs returns the command and arguments that evaluate script
// under a POSIX shell.
func ShellArgs(script string) (string, []string) {
	return "/bin/sh", []string{"-c", script}
}
