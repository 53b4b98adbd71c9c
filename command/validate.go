package command

import (
	"fmt"
	"strings"

	"github.com/grovetools/tablaunch/errors"
)

// ShellMetacharacters are the characters that must never appear in a value
// interpolated into a shell command string.
const ShellMetacharacters = ";|&`$(){}<>!\r\n"

// IsSafePath reports whether s is free of shell metacharacters.
// The empty string is accepted; callers check emptiness where it matters.
func IsSafePath(s string) bool {
	return !strings.ContainsAny(s, ShellMetacharacters)
}

// IsSafeProfile reports whether s is a non-empty terminal profile name made of
// ASCII letters, digits, spaces, hyphens and underscores.
func IsSafeProfile(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isASCIIAlnum(c) && c != ' ' && c != '-' && c != '_' {
			return false
		}
	}
	return true
}

// IsSafeFlag reports whether s matches --[A-Za-z][A-Za-z0-9-]* with an
// optional =value suffix whose value holds no shell metacharacters.
func IsSafeFlag(s string) bool {
	rest, ok := strings.CutPrefix(s, "--")
	if !ok {
		return false
	}

	name, value, hasValue := strings.Cut(rest, "=")
	if name == "" || !isASCIILetter(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isASCIIAlnum(name[i]) && name[i] != '-' {
			return false
		}
	}

	if hasValue && strings.ContainsAny(value, ShellMetacharacters) {
		return false
	}
	return true
}

// ValidatePath returns an UNSAFE_INPUT error naming field when s contains a
// shell metacharacter.
func ValidatePath(field, s string) error {
	if !IsSafePath(s) {
		return errors.UnsafeInput(field, fmt.Sprintf("%s contains invalid characters", field))
	}
	return nil
}

// ValidateProfile returns an UNSAFE_INPUT error when s is not a safe profile name.
func ValidateProfile(s string) error {
	if !IsSafeProfile(s) {
		return errors.UnsafeInput("Terminal profile", "Terminal profile contains invalid characters").
			WithDetail("profile", s)
	}
	return nil
}

// ValidateFlag returns an UNSAFE_INPUT error naming the offending flag.
func ValidateFlag(s string) error {
	if !IsSafeFlag(s) {
		return errors.UnsafeInput("flags", fmt.Sprintf("Invalid flag rejected: %s", s)).
			WithDetail("flag", s)
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIAlnum(c byte) bool {
	return isASCIILetter(c) || (c >= '0' && c <= '9')
}
