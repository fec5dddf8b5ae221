// Package manifest loads provisioning steps from YAML or TOML manifests.
//
// A manifest is a list of entries, each naming exactly one step kind:
//
//	steps:
//	  - file: {path: /etc/app/config.yml, content: "debug: true\n", permissions: "0644"}
//	  - file: {path: /etc/motd, source: motd.txt}
//	  - packages: [nginx, curl]
//	  - service: nginx
//	  - command: {run: make install, creates: /usr/local/bin/app}
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/provisioner/internal/validation"
)

// Format is the serialization of a manifest file.
type Format string

const (
	// FormatYAML is the default manifest format.
	FormatYAML Format = "YAML"
	// FormatTOML is selected for files ending in .toml.
	FormatTOML Format = "TOML"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Manifest is the decoded, validated content of a manifest file.
type Manifest struct {
	Steps []Entry `yaml:"steps" toml:"steps"`
}

// Entry is a single manifest step. Exactly one field is set.
type Entry struct {
	File     *FileEntry    `yaml:"file,omitempty" toml:"file,omitempty"`
	Packages []string      `yaml:"packages,omitempty" toml:"packages,omitempty"`
	Service  string        `yaml:"service,omitempty" toml:"service,omitempty"`
	Command  *CommandEntry `yaml:"command,omitempty" toml:"command,omitempty"`
}

// FileEntry declares managed file content, given inline or read from Source.
type FileEntry struct {
	Path        string  `yaml:"path" toml:"path"`
	Content     *string `yaml:"content,omitempty" toml:"content,omitempty"`
	Source      string  `yaml:"source,omitempty" toml:"source,omitempty"`
	Permissions *string `yaml:"permissions,omitempty" toml:"permissions,omitempty"`
	Owner       *string `yaml:"owner,omitempty" toml:"owner,omitempty"`
}

// CommandEntry declares a command, optionally guarded by a created path.
type CommandEntry struct {
	Run     string `yaml:"run" toml:"run"`
	Creates string `yaml:"creates,omitempty" toml:"creates,omitempty"`
}

// Parse decodes and validates manifest bytes. Unknown keys are rejected.
// Decoding errors are returned as-is; validation problems are returned
// together as an *ErrorList.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every entry and reports all problems at once.
func (m *Manifest) Validate() error {
	errs := NewErrorList()

	for i, e := range m.Steps {
		e.validate(fmt.Sprintf("steps[%d]", i), errs)
	}

	return errs.ErrOrNil()
}

func (e Entry) kinds() []string {
	var kinds []string
	if e.File != nil {
		kinds = append(kinds, "file")
	}
	if len(e.Packages) > 0 {
		kinds = append(kinds, "packages")
	}
	if e.Service != "" {
		kinds = append(kinds, "service")
	}
	if e.Command != nil {
		kinds = append(kinds, "command")
	}
	return kinds
}

func (e Entry) validate(field string, errs *ErrorList) {
	kinds := e.kinds()
	switch len(kinds) {
	case 0:
		errs.AddValidation(field, "no step kind given",
			"Set one of 'file', 'packages', 'service' or 'command'")
		return
	case 1:
	default:
		errs.AddValidation(field, fmt.Sprintf("multiple step kinds given (%s)", strings.Join(kinds, ", ")),
			"Split the entry into one list item per step")
		return
	}

	switch {
	case e.File != nil:
		e.File.validate(field+".file", errs)
	case len(e.Packages) > 0:
		for i, name := range e.Packages {
			f := fmt.Sprintf("%s.packages[%d]", field, i)
			if strings.TrimSpace(name) == "" {
				errs.AddValidation(f, "package name must not be empty", "")
			} else if err := validation.ValidatePackageName(name); err != nil {
				errs.AddValidation(f, err.Error(), "Use the apt package name, e.g. libssl-dev")
			}
		}
	case e.Service != "":
		if strings.TrimSpace(e.Service) == "" {
			errs.AddValidation(field+".service", "service name must not be blank", "")
		} else if err := validation.ValidateServiceName(e.Service); err != nil {
			errs.AddValidation(field+".service", err.Error(), "Use a systemd unit name such as nginx or nginx.service")
		}
	case e.Command != nil:
		if strings.TrimSpace(e.Command.Run) == "" {
			errs.AddValidation(field+".command.run", "command must not be empty", "")
		}
	}
}

func (f *FileEntry) validate(field string, errs *ErrorList) {
	if strings.TrimSpace(f.Path) == "" {
		errs.AddValidation(field+".path", "path must not be empty",
			"Use an absolute path such as /etc/app/config.yml")
	} else if err := validation.ValidateFilePath(f.Path); err != nil {
		errs.AddValidation(field+".path", err.Error(),
			"Use an absolute path such as /etc/app/config.yml")
	}
	if f.Content != nil && f.Source != "" {
		errs.AddValidation(field, "content and source are mutually exclusive",
			"Keep inline 'content' or a 'source' file, not both")
	}
	if f.Content == nil && f.Source == "" {
		errs.AddValidation(field, "content or source is required",
			"Use content: \"\" to declare an empty file")
	}
}
