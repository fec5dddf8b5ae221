package step

import "fmt"

// EnableService declares that a systemd unit must be enabled and running.
type EnableService struct {
	name        string
	description string
}

// NewEnableService creates an EnableService step.
func NewEnableService(name string) EnableService {
	return EnableService{
		name:        name,
		description: "Enable service " + name,
	}
}

// Name returns the unit name.
func (s EnableService) Name() string {
	return s.name
}

// Description returns the step label.
func (s EnableService) Description() string {
	return s.description
}

// CloudInit returns a runcmd entry enabling the unit.
func (s EnableService) CloudInit() CloudInitFragment {
	return CloudInitFragment{RunCmd: []string{s.command()}}
}

// Shell enables and starts the unit. Both operations are no-ops when the
// unit is already enabled and active.
func (s EnableService) Shell() []string {
	return []string{s.command()}
}

// Check returns a predicate that holds when the unit is enabled and active.
func (s EnableService) Check() (string, bool) {
	name := quote(s.name)
	return fmt.Sprintf("systemctl is-enabled --quiet %s && systemctl is-active --quiet %s", name, name), true
}

func (s EnableService) command() string {
	return "systemctl enable --now " + quote(s.name)
}

// Ensure EnableService implements Step.
var _ Step = EnableService{}
