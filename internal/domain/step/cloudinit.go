package step

// CloudInitFragment is the part of a cloud-config document a step contributes.
// Fragments from many steps are combined with Merge.
type CloudInitFragment struct {
	PackageUpdate bool            `yaml:"package_update,omitempty"`
	Packages      []string        `yaml:"packages,omitempty"`
	WriteFiles    []CloudInitFile `yaml:"write_files,omitempty"`
	RunCmd        []string        `yaml:"runcmd,omitempty"`
}

// CloudInitFile is a single write_files entry.
// Permissions and Owner are nil when the step did not set them.
type CloudInitFile struct {
	Path        string  `yaml:"path"`
	Content     string  `yaml:"content"`
	Permissions *string `yaml:"permissions,omitempty"`
	Owner       *string `yaml:"owner,omitempty"`
}

// Merge returns a new fragment holding f followed by other.
// Packages keep first-seen order without duplicates.
func (f CloudInitFragment) Merge(other CloudInitFragment) CloudInitFragment {
	merged := CloudInitFragment{
		PackageUpdate: f.PackageUpdate || other.PackageUpdate,
	}

	if n := len(f.WriteFiles) + len(other.WriteFiles); n > 0 {
		merged.WriteFiles = make([]CloudInitFile, 0, n)
		for _, file := range f.WriteFiles {
			merged.WriteFiles = append(merged.WriteFiles, file.clone())
		}
		for _, file := range other.WriteFiles {
			merged.WriteFiles = append(merged.WriteFiles, file.clone())
		}
	}

	if n := len(f.RunCmd) + len(other.RunCmd); n > 0 {
		merged.RunCmd = make([]string, 0, n)
		merged.RunCmd = append(merged.RunCmd, f.RunCmd...)
		merged.RunCmd = append(merged.RunCmd, other.RunCmd...)
	}

	seen := make(map[string]bool, len(f.Packages)+len(other.Packages))
	for _, list := range [][]string{f.Packages, other.Packages} {
		for _, pkg := range list {
			if seen[pkg] {
				continue
			}
			seen[pkg] = true
			merged.Packages = append(merged.Packages, pkg)
		}
	}

	return merged
}

// IsEmpty reports whether the fragment contributes nothing.
func (f CloudInitFragment) IsEmpty() bool {
	return !f.PackageUpdate && len(f.Packages) == 0 && len(f.WriteFiles) == 0 && len(f.RunCmd) == 0
}

func (c CloudInitFile) clone() CloudInitFile {
	out := CloudInitFile{Path: c.Path, Content: c.Content}
	if c.Permissions != nil {
		out.Permissions = stringPtr(*c.Permissions)
	}
	if c.Owner != nil {
		out.Owner = stringPtr(*c.Owner)
	}
	return out
}

func stringPtr(s string) *string {
	return &s
}
