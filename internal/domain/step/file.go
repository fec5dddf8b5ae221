package step

import (
	"encoding/base64"
	"fmt"
)

// WriteFile declares that the file at path must contain exactly content,
// with optional permissions and owner.
//
// Permissions (symbolic or octal) and owner (user[:group]) are not validated
// here and are passed through to both renderings as given.
type WriteFile struct {
	path        string
	content     string
	permissions *string
	owner       *string
	description string
}

// NewWriteFile creates a WriteFile step. The description is derived once,
// here, and is not affected by later WithPermissions or WithOwner calls.
//
// The behavior for an empty or whitespace-only path is undefined; callers
// are expected to reject such paths before constructing the step.
func NewWriteFile(path, content string) WriteFile {
	return WriteFile{
		path:        path,
		content:     content,
		description: "Write " + path,
	}
}

// WithPermissions returns a copy of the step with the file mode set.
func (s WriteFile) WithPermissions(permissions string) WriteFile {
	s.permissions = stringPtr(permissions)
	return s
}

// WithOwner returns a copy of the step with the file owner set.
func (s WriteFile) WithOwner(owner string) WriteFile {
	s.owner = stringPtr(owner)
	return s
}

// Path returns the target file path.
func (s WriteFile) Path() string {
	return s.path
}

// Content returns the declared file content.
func (s WriteFile) Content() string {
	return s.content
}

// Permissions returns the file mode and whether it was set.
func (s WriteFile) Permissions() (string, bool) {
	if s.permissions == nil {
		return "", false
	}
	return *s.permissions, true
}

// Owner returns the file owner and whether it was set.
func (s WriteFile) Owner() (string, bool) {
	if s.owner == nil {
		return "", false
	}
	return *s.owner, true
}

// Fingerprint returns the expected digest of the file content.
func (s WriteFile) Fingerprint() string {
	return Fingerprint(s.content)
}

// Description returns the label derived at construction.
func (s WriteFile) Description() string {
	return s.description
}

// CloudInit returns a fragment with a single write_files entry.
func (s WriteFile) CloudInit() CloudInitFragment {
	file := CloudInitFile{
		Path:    s.path,
		Content: s.content,
	}
	if s.permissions != nil {
		file.Permissions = stringPtr(*s.permissions)
	}
	if s.owner != nil {
		file.Owner = stringPtr(*s.owner)
	}
	return CloudInitFragment{WriteFiles: []CloudInitFile{file}}
}

// Shell returns commands that write the file only when its digest differs.
// The expected digest is computed now and embedded as a literal, so the
// script does not depend on anything but the target at execution time.
// The target is hashed through stdin: sha256sum escapes file names holding
// a backslash or newline and would prefix the digest with a backslash.
func (s WriteFile) Shell() []string {
	path := quote(s.path)
	expected := s.Fingerprint()
	encoded := base64.StdEncoding.EncodeToString([]byte(s.content))

	cmds := []string{
		fmt.Sprintf(`mkdir -p "$(dirname -- %s)"`, path),
		fmt.Sprintf(`CURRENT=$(sha256sum 2>/dev/null < %s | cut -d' ' -f1)
if [ "$CURRENT" != "%s" ]; then
printf '%%s\n' '%s' | base64 -d > %s
fi`, path, expected, encoded, path),
	}

	if s.permissions != nil {
		cmds = append(cmds, fmt.Sprintf("chmod %s %s", quote(*s.permissions), path))
	}
	if s.owner != nil {
		cmds = append(cmds, fmt.Sprintf("chown %s %s", quote(*s.owner), path))
	}

	return cmds
}

// Check returns a predicate that holds when the file exists with the
// expected digest.
func (s WriteFile) Check() (string, bool) {
	path := quote(s.path)
	return fmt.Sprintf(`[ -f %s ] && [ "$(sha256sum < %s | cut -d' ' -f1)" = "%s" ]`,
		path, path, s.Fingerprint()), true
}

// Ensure WriteFile implements Step.
var _ Step = WriteFile{}
