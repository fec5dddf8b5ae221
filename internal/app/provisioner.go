// Package app wires manifest loading, rendering and local verification
// together for the provisioner CLI.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/felixgeelhaar/provisioner/internal/adapters/command"
	"github.com/felixgeelhaar/provisioner/internal/adapters/filesystem"
	"github.com/felixgeelhaar/provisioner/internal/adapters/logging"
	"github.com/felixgeelhaar/provisioner/internal/domain/manifest"
	"github.com/felixgeelhaar/provisioner/internal/domain/render"
	"github.com/felixgeelhaar/provisioner/internal/domain/step"
	"github.com/felixgeelhaar/provisioner/internal/ports"
)

// Provisioner is the main application orchestrator.
type Provisioner struct {
	loader *manifest.Loader
	runner ports.CommandRunner
	logger ports.Logger
	out    io.Writer
}

// New creates a Provisioner backed by the local file system and shell.
func New(out io.Writer) *Provisioner {
	return &Provisioner{
		loader: manifest.NewLoader(filesystem.NewRealFileSystem()),
		runner: command.NewRealRunner(),
		logger: logging.NewNopLogger(),
		out:    out,
	}
}

// WithFileSystem replaces the file system used to read manifests.
func (p *Provisioner) WithFileSystem(fs ports.FileSystem) *Provisioner {
	p.loader = manifest.NewLoader(fs)
	return p
}

// WithRunner replaces the runner used to evaluate check predicates.
func (p *Provisioner) WithRunner(runner ports.CommandRunner) *Provisioner {
	p.runner = runner
	return p
}

// WithLogger sets the logger.
func (p *Provisioner) WithLogger(logger ports.Logger) *Provisioner {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// Load reads the manifest at path and returns its steps.
func (p *Provisioner) Load(ctx context.Context, path string) ([]step.Step, error) {
	steps, err := p.loader.Load(path)
	if err != nil {
		p.log(ctx).Error(ctx, "failed to load manifest", ports.F("manifest", path), ports.F("error", err))
		return nil, err
	}
	p.log(ctx).Debug(ctx, "loaded manifest", ports.F("manifest", path), ports.F("steps", len(steps)))
	return steps, nil
}

// CloudConfig renders the manifest as a #cloud-config document.
func (p *Provisioner) CloudConfig(ctx context.Context, path string) ([]byte, error) {
	steps, err := p.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return render.CloudConfig(steps...)
}

// Script renders the manifest as a single shell script.
func (p *Provisioner) Script(ctx context.Context, path string) (string, error) {
	steps, err := p.Load(ctx, path)
	if err != nil {
		return "", err
	}
	return render.Script(steps...), nil
}

// Checks returns the check predicate of every step in the manifest.
func (p *Provisioner) Checks(ctx context.Context, path string) ([]render.Check, error) {
	steps, err := p.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return render.Checks(steps...), nil
}

// Result is the outcome of evaluating one step's check on this host.
type Result struct {
	Description string
	Status      step.Status
	Err         error
}

// Verify evaluates every check predicate of the manifest on the local host.
// Steps without a check, or whose check could not be run, are reported as
// unknown rather than failing the whole verification.
func (p *Provisioner) Verify(ctx context.Context, path string) ([]Result, error) {
	checks, err := p.Checks(ctx, path)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, p.evaluate(ctx, c))
	}
	return results, nil
}

func (p *Provisioner) evaluate(ctx context.Context, c render.Check) Result {
	result := Result{Description: c.Description, Status: step.StatusUnknown}
	if !c.HasPredicate {
		p.log(ctx).Debug(ctx, "no check for step", ports.F("step", c.Description))
		return result
	}

	cmd, args := ports.ShellArgs(c.Predicate)
	res, err := p.runner.Run(ctx, cmd, args...)
	if err != nil {
		p.log(ctx).Warn(ctx, "check could not be evaluated", ports.F("step", c.Description), ports.F("error", err))
		result.Err = err
		return result
	}

	if res.Success() {
		result.Status = step.StatusSatisfied
	} else {
		result.Status = step.StatusNeedsApply
	}
	p.log(ctx).Debug(ctx, "evaluated check", ports.F("step", c.Description), ports.F("status", result.Status.String()))
	return result
}

// log prefers a logger attached to ctx over the configured one.
func (p *Provisioner) log(ctx context.Context) ports.Logger {
	if logger := ports.LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return p.logger
}

// Summary counts results by status.
type Summary struct {
	Total      int
	Satisfied  int
	NeedsApply int
	Unknown    int
}

// Summarize counts results by status.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case step.StatusSatisfied:
			s.Satisfied++
		case step.StatusNeedsApply:
			s.NeedsApply++
		case step.StatusUnknown:
			s.Unknown++
		}
	}
	return s
}

// printf is a helper that writes to the output writer, ignoring errors.
func (p *Provisioner) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
