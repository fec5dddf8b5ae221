package step

// Status is the outcome of evaluating a step's check predicate on a target.
type Status string

const (
	// StatusSatisfied indicates the declared state is already reached.
	StatusSatisfied Status = "satisfied"
	// StatusNeedsApply indicates the step's commands still need to run.
	StatusNeedsApply Status = "needs-apply"
	// StatusUnknown indicates the state could not be determined, either
	// because the step has no check or the check could not be evaluated.
	StatusUnknown Status = "unknown"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// NeedsAction returns true if the step's commands should be run.
func (s Status) NeedsAction() bool {
	switch s {
	case StatusNeedsApply, StatusUnknown:
		return true
	case StatusSatisfied:
		return false
	}
	return false
}
