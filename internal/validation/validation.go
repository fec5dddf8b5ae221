// Package validation checks manifest values before they are turned into
// provisioning steps.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrInvalidPackageName = errors.New("invalid package name")
	ErrInvalidServiceName = errors.New("invalid service name")
	ErrInvalidPath        = errors.New("invalid path")
)

var (
	// packageNameRegex matches apt package names.
	// Examples: "nginx", "python3.11", "g++", "libssl-dev"
	packageNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

	// serviceNameRegex matches systemd unit names, optionally with a suffix.
	// Examples: "nginx", "nginx.service", "getty@tty1", "systemd-networkd"
	serviceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9:_.@\\-]*$`)
)

const (
	maxPackageNameLength = 256
	maxServiceNameLength = 255
)

// ValidatePackageName validates an apt package name.
func ValidatePackageName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}

	if len(name) > maxPackageNameLength {
		return fmt.Errorf("%w: name too long (max %d characters)", ErrInvalidPackageName, maxPackageNameLength)
	}

	if !packageNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q contains invalid characters", ErrInvalidPackageName, name)
	}

	return nil
}

// ValidateServiceName validates a systemd unit name.
func ValidateServiceName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}

	if len(name) > maxServiceNameLength {
		return fmt.Errorf("%w: name too long (max %d characters)", ErrInvalidServiceName, maxServiceNameLength)
	}

	if !serviceNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q contains invalid characters", ErrInvalidServiceName, name)
	}

	return nil
}

// ValidateFilePath validates the target path of a managed file.
// The path must be absolute and name a file, not a directory.
func ValidateFilePath(path string) error {
	if path == "" {
		return ErrEmptyInput
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: path contains null byte", ErrInvalidPath)
	}

	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidPath, path)
	}

	if strings.HasSuffix(path, "/") {
		return fmt.Errorf("%w: %q names a directory", ErrInvalidPath, path)
	}

	return nil
}
