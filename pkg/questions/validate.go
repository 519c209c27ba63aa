package questions

import (
	"regexp"
	"strings"

	inserr "github.com/instantos/ins/pkg/errors"
)

var (
	hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)
	usernamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)
)

// ValidateHostname checks RFC 1123 label rules for a single hostname
func ValidateHostname(name string) error {
	if name == "" {
		return inserr.New(inserr.ErrValidation, "hostname must not be empty")
	}
	if len(name) > 63 {
		return inserr.New(inserr.ErrValidation, "hostname must be at most 63 characters")
	}
	if !hostnamePattern.MatchString(name) {
		return inserr.New(inserr.ErrValidation,
			"hostname may only contain letters, digits and hyphens, and must not start or end with a hyphen")
	}
	return nil
}

// ValidateUsername checks useradd's default NAME_REGEX
func ValidateUsername(name string) error {
	if name == "" {
		return inserr.New(inserr.ErrValidation, "username must not be empty")
	}
	if name == "root" {
		return inserr.New(inserr.ErrValidation, "the root user already exists")
	}
	if !usernamePattern.MatchString(name) {
		return inserr.New(inserr.ErrValidation,
			"username must start with a lowercase letter or underscore and may only contain lowercase letters, digits, underscores and hyphens")
	}
	return nil
}

// ValidatePassword rejects empty passwords; everything else is the user's
// own business
func ValidatePassword(password string) error {
	if password == "" {
		return inserr.New(inserr.ErrValidation, "password must not be empty")
	}
	return nil
}

// validateDevicePath accepts /dev/... paths
func validateDevicePath(value string) error {
	if !strings.HasPrefix(value, "/dev/") {
		return inserr.Newf(inserr.ErrValidation, "%q is not a device path", value)
	}
	return nil
}
