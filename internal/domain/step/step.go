// Package step defines provisioning steps and their renderings.
// A step declares a desired machine-state change once and renders it into a
// cloud-init fragment, an idempotent shell command sequence, and an optional
// read-only check predicate. Nothing in this package performs I/O.
package step

// Step is the capability set every provisioning step kind implements.
// Implementations are immutable values; every method is a pure function
// of the step's fields.
type Step interface {
	// Description returns a short, stable, human-readable label.
	Description() string

	// CloudInit returns the declarative fragment for a cloud-init document.
	// A fresh fragment is returned on every call.
	CloudInit() CloudInitFragment

	// Shell returns ordered POSIX shell statements that bring the target into
	// the declared state. Running the sequence again must not perform a
	// destructive write once the state has been reached.
	Shell() []string

	// Check returns a shell boolean expression answering whether the declared
	// state has already been reached. ok is false when no practical check
	// exists for the step kind.
	Check() (predicate string, ok bool)
}
