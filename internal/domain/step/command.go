package step

import "fmt"

// RunCommand declares an arbitrary shell command. Without a creates path it
// has no check and is re-run every time the sequence runs; with one, the
// command is skipped once that path exists.
type RunCommand struct {
	command     string
	creates     *string
	description string
}

// NewRunCommand creates a RunCommand step. The command is embedded verbatim.
func NewRunCommand(command string) RunCommand {
	return RunCommand{
		command:     command,
		description: "Run " + command,
	}
}

// WithCreates returns a copy guarded by the existence of path.
func (s RunCommand) WithCreates(path string) RunCommand {
	s.creates = stringPtr(path)
	return s
}

// Command returns the raw command.
func (s RunCommand) Command() string {
	return s.command
}

// Creates returns the guard path and whether it was set.
func (s RunCommand) Creates() (string, bool) {
	if s.creates == nil {
		return "", false
	}
	return *s.creates, true
}

// Description returns the step label.
func (s RunCommand) Description() string {
	return s.description
}

// CloudInit returns a runcmd entry carrying the guarded command.
func (s RunCommand) CloudInit() CloudInitFragment {
	return CloudInitFragment{RunCmd: []string{s.statement()}}
}

// Shell returns the guarded command.
func (s RunCommand) Shell() []string {
	return []string{s.statement()}
}

// Check returns a predicate on the creates path, if one was set.
func (s RunCommand) Check() (string, bool) {
	if s.creates == nil {
		return "", false
	}
	return fmt.Sprintf("[ -e %s ]", quote(*s.creates)), true
}

func (s RunCommand) statement() string {
	if s.creates == nil {
		return s.command
	}
	return fmt.Sprintf("if [ ! -e %s ]; then\n%s\nfi", quote(*s.creates), s.command)
}

// Ensure RunCommand implements Step.
var _ Step = RunCommand{}
