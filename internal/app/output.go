package app

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/provisioner/internal/domain/render"
	"github.com/felixgeelhaar/provisioner/internal/domain/step"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"})
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"})
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"})
)

// PrintPlan lists the steps of a manifest with their commands and checks.
func (p *Provisioner) PrintPlan(steps []step.Step) {
	p.printf("%s\n\n", titleStyle.Render("Provisioning Plan"))

	if len(steps) == 0 {
		p.printf("No steps declared.\n")
		return
	}

	checks := render.Checks(steps...)
	for i, s := range steps {
		p.printf("  %d. %s\n", i+1, titleStyle.Render(s.Description()))
		p.printf("     %s\n", mutedStyle.Render(pluralize(len(s.Shell()), "command", "commands")))
		if checks[i].HasPredicate {
			p.printf("     %s\n", mutedStyle.Render("check: "+checks[i].Predicate))
		} else {
			p.printf("     %s\n", mutedStyle.Render("check: none"))
		}
	}

	p.printf("\n%d steps\n", len(steps))
}

// PrintResults outputs verification results.
func (p *Provisioner) PrintResults(results []Result) {
	p.printf("%s\n\n", titleStyle.Render("Verification"))

	for _, r := range results {
		switch r.Status {
		case step.StatusSatisfied:
			p.printf("  %s %s\n", successStyle.Render("✓"), r.Description)
		case step.StatusNeedsApply:
			p.printf("  %s %s (needs apply)\n", warningStyle.Render("+"), r.Description)
		case step.StatusUnknown:
			if r.Err != nil {
				p.printf("  %s %s: %v\n", errorStyle.Render("?"), r.Description, r.Err)
			} else {
				p.printf("  %s %s (no check)\n", mutedStyle.Render("?"), r.Description)
			}
		}
	}

	s := Summarize(results)
	p.printf("\nSummary: %d satisfied, %d need apply, %d unknown\n", s.Satisfied, s.NeedsApply, s.Unknown)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
