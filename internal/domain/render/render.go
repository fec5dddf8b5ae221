// Package render assembles the renderings of many steps into documents:
// a cloud-config file, a single shell script, and the list of checks.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/provisioner/internal/domain/step"
)

// CloudConfigHeader is the first line cloud-init requires of user data.
const CloudConfigHeader = "#cloud-config"

// Fragment merges the cloud-init fragments of steps in order.
func Fragment(steps ...step.Step) step.CloudInitFragment {
	var merged step.CloudInitFragment
	for _, s := range steps {
		merged = merged.Merge(s.CloudInit())
	}
	return merged
}

// CloudConfig renders steps as a #cloud-config YAML document.
func CloudConfig(steps ...step.Step) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(CloudConfigHeader)
	buf.WriteByte('\n')

	merged := Fragment(steps...)
	if merged.IsEmpty() {
		return buf.Bytes(), nil
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(merged); err != nil {
		return nil, fmt.Errorf("failed to encode cloud-config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode cloud-config: %w", err)
	}
	return buf.Bytes(), nil
}

// Script renders steps as one POSIX shell script. Each step's commands are
// preceded by a comment carrying its description.
func Script(steps ...step.Step) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\nset -eu\n")

	for _, s := range steps {
		b.WriteString("\n")
		b.WriteString(comment(s.Description()))
		for _, cmd := range s.Shell() {
			b.WriteString(cmd)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// Check pairs a step description with its check predicate.
type Check struct {
	Description  string
	Predicate    string
	HasPredicate bool
}

// Checks returns the check of every step, in order.
func Checks(steps ...step.Step) []Check {
	checks := make([]Check, 0, len(steps))
	for _, s := range steps {
		predicate, ok := s.Check()
		checks = append(checks, Check{
			Description:  s.Description(),
			Predicate:    predicate,
			HasPredicate: ok,
		})
	}
	return checks
}

// ChecksText renders checks one per line as "# description" followed by the
// predicate, or a note when the step has none.
func ChecksText(checks []Check) string {
	var b strings.Builder
	for i, c := range checks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(comment(c.Description))
		if c.HasPredicate {
			b.WriteString(c.Predicate)
		} else {
			b.WriteString("# (no check)")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// comment renders text as shell comment lines; descriptions may carry
// newlines from embedded commands.
func comment(text string) string {
	lines := strings.Split(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		b.WriteString("# ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
