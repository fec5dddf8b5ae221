package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/provisioner/internal/domain/step"
	"github.com/felixgeelhaar/provisioner/internal/ports"
)

// Loader reads manifests and builds their steps.
type Loader struct {
	fs ports.FileSystem
}

// NewLoader creates a Loader reading through fs.
func NewLoader(fs ports.FileSystem) *Loader {
	return &Loader{fs: fs}
}

// LoadManifest reads and validates the manifest at path.
func (l *Loader) LoadManifest(path string) (*Manifest, error) {
	path = ports.ExpandPath(path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewConfigNotFoundError(path)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	format := FormatFromPath(path)
	m, err := Parse(data, format)
	if err != nil {
		var list *ErrorList
		if errors.As(err, &list) {
			return nil, err
		}
		return nil, NewParseError(path, format, err)
	}
	return m, nil
}

// Load reads the manifest at path and builds its steps in manifest order.
// File sources are resolved relative to the manifest's directory.
func (l *Loader) Load(path string) ([]step.Step, error) {
	m, err := l.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return l.Build(m, filepath.Dir(ports.ExpandPath(path)))
}

// Build turns validated entries into steps.
func (l *Loader) Build(m *Manifest, baseDir string) ([]step.Step, error) {
	steps := make([]step.Step, 0, len(m.Steps))
	errs := NewErrorList()

	for i, e := range m.Steps {
		field := fmt.Sprintf("steps[%d]", i)
		s, uerr := l.build(field, e, baseDir)
		if uerr != nil {
			errs.Add(uerr)
			continue
		}
		steps = append(steps, s)
	}

	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}
	return steps, nil
}

func (l *Loader) build(field string, e Entry, baseDir string) (step.Step, *UserError) {
	switch {
	case e.File != nil:
		return l.buildFile(field+".file", e.File, baseDir)
	case len(e.Packages) > 0:
		return step.NewInstallPackages(e.Packages...), nil
	case e.Service != "":
		return step.NewEnableService(e.Service), nil
	case e.Command != nil:
		s := step.NewRunCommand(e.Command.Run)
		if e.Command.Creates != "" {
			s = s.WithCreates(e.Command.Creates)
		}
		return s, nil
	}
	return nil, &UserError{
		Code:    ErrCodeValidationFailed,
		Message: field + ": no step kind given",
		Context: field,
	}
}

func (l *Loader) buildFile(field string, f *FileEntry, baseDir string) (step.Step, *UserError) {
	var content string
	if f.Content != nil {
		content = *f.Content
	} else {
		data, err := l.fs.ReadFile(ports.ResolvePath(baseDir, f.Source))
		if err != nil {
			return nil, NewSourceNotFoundError(field+".source", f.Source, err)
		}
		content = string(data)
	}

	s := step.NewWriteFile(f.Path, content)
	if f.Permissions != nil {
		s = s.WithPermissions(*f.Permissions)
	}
	if f.Owner != nil {
		s = s.WithOwner(*f.Owner)
	}
	return s, nil
}
