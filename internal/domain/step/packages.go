package step

import (
	"fmt"
	"strings"
)

// InstallPackages declares that apt packages must be installed.
type InstallPackages struct {
	names       []string
	description string
}

// NewInstallPackages creates an InstallPackages step for the given names.
func NewInstallPackages(names ...string) InstallPackages {
	owned := make([]string, len(names))
	copy(owned, names)
	return InstallPackages{
		names:       owned,
		description: "Install packages: " + strings.Join(owned, ", "),
	}
}

// Names returns a copy of the package names.
func (s InstallPackages) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Description returns the step label.
func (s InstallPackages) Description() string {
	return s.description
}

// CloudInit returns a fragment requesting a package index update and the packages.
// A step without packages contributes nothing.
func (s InstallPackages) CloudInit() CloudInitFragment {
	if len(s.names) == 0 {
		return CloudInitFragment{}
	}
	return CloudInitFragment{
		PackageUpdate: true,
		Packages:      s.Names(),
	}
}

// Shell installs the packages only when dpkg reports one of them missing.
func (s InstallPackages) Shell() []string {
	if len(s.names) == 0 {
		return nil
	}
	pkgs := quoteAll(s.names)
	return []string{
		fmt.Sprintf(`if ! dpkg -s %s >/dev/null 2>&1; then
apt-get update && DEBIAN_FRONTEND=noninteractive apt-get install -y %s
fi`, pkgs, pkgs),
	}
}

// Check returns a predicate that holds when every package is installed.
func (s InstallPackages) Check() (string, bool) {
	if len(s.names) == 0 {
		return "", false
	}
	return fmt.Sprintf("dpkg -s %s >/dev/null 2>&1", quoteAll(s.names)), true
}

// Ensure InstallPackages implements Step.
var _ Step = InstallPackages{}
