package config

import (
	"fmt"
	"os"
	"regexp"
)

// ErrorType classifies configuration failures.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotFound
	ErrTypeInvalidInput
	ErrTypeConfiguration
)

// Error provides structured error information with a remediation hint.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Hint    string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// FormatWithHint returns the error message with hint if available
func (e *Error) FormatWithHint() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s\n  Hint: %s", e.Error(), e.Hint)
	}
	return e.Error()
}

// ErrConfigNotFound creates an error for when the config file doesn't exist
func ErrConfigNotFound(path string) *Error {
	return &Error{
		Type:    ErrTypeNotFound,
		Message: fmt.Sprintf("config file not found: %s", path),
		Hint:    "Create a config file or specify an existing file path with --config.",
	}
}

// ErrConfigPermissionDenied creates an error for when the config file cannot be read
func ErrConfigPermissionDenied(path string, cause error) *Error {
	return &Error{
		Type:    ErrTypeNotFound,
		Message: fmt.Sprintf("cannot read config file: %s", path),
		Cause:   cause,
		Hint:    "Check file permissions with 'ls -la' and ensure the file is readable.",
	}
}

// ErrConfigEmpty creates an error for when the config file is empty
func ErrConfigEmpty(path string) *Error {
	return &Error{
		Type:    ErrTypeConfiguration,
		Message: fmt.Sprintf("config file is empty: %s", path),
		Hint:    "Add a 'catalog:' section or remove the --config flag to use defaults.",
	}
}

// ErrConfigPathEmpty creates an error for when the config path is empty or whitespace
func ErrConfigPathEmpty() *Error {
	return &Error{
		Type:    ErrTypeInvalidInput,
		Message: "config file path cannot be empty or whitespace",
		Hint:    "Provide a valid file path with --config or omit the flag to use defaults.",
	}
}

// ErrConfigUnsupported creates an error for a config file extension that has no decoder
func ErrConfigUnsupported(path, ext string) *Error {
	return &Error{
		Type:    ErrTypeInvalidInput,
		Message: fmt.Sprintf("unsupported config format %q: %s", ext, path),
		Hint:    "Use a .yaml, .yml or .toml config file.",
	}
}

// ErrConfigInvalid creates an error for a config file that fails to decode.
// Line and column are extracted from the decoder message when available.
func ErrConfigInvalid(path, format string, cause error) *Error {
	message := fmt.Sprintf("invalid %s syntax in %s", format, path)
	if lineCol := extractLineColumn(cause); lineCol != "" {
		message = fmt.Sprintf("%s at %s", message, lineCol)
	}

	return &Error{
		Type:    ErrTypeInvalidInput,
		Message: message,
		Cause:   cause,
		Hint:    "Check for proper indentation, missing colons, or unclosed quotes near the indicated location.",
	}
}

// ErrOverrideInvalid creates an error for an override entry missing a required field
func ErrOverrideInvalid(index int, field string) *Error {
	return &Error{
		Type:    ErrTypeConfiguration,
		Message: fmt.Sprintf("override %d is missing '%s'", index, field),
		Hint:    "Every override needs a 'trigger' substring and a 'title'.",
	}
}

var (
	// goccy/go-yaml: "[<line>:<col>] <message>"
	reYAMLLineCol = regexp.MustCompile(`\[(\d+):(\d+)\]`)
	// BurntSushi/toml: "toml: line <line> (last key ...)" or "line <line>, column <col>"
	reTOMLLineCol = regexp.MustCompile(`line (\d+)(?:, column (\d+))?`)
)

// extractLineColumn extracts line:column from decoder error messages.
// Returns format like "line 5, column 3" or empty string if not found
func extractLineColumn(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()
	if m := reYAMLLineCol.FindStringSubmatch(errStr); len(m) == 3 {
		return fmt.Sprintf("line %s, column %s", m[1], m[2])
	}
	if m := reTOMLLineCol.FindStringSubmatch(errStr); m != nil {
		if m[2] != "" {
			return fmt.Sprintf("line %s, column %s", m[1], m[2])
		}
		return fmt.Sprintf("line %s", m[1])
	}
	return ""
}

// wrapReadError wraps an os error from reading a config file
func wrapReadError(path string, err error) *Error {
	if os.IsNotExist(err) {
		return ErrConfigNotFound(path)
	}
	if os.IsPermission(err) {
		return ErrConfigPermissionDenied(path, err)
	}
	return &Error{
		Type:    ErrTypeNotFound,
		Message: fmt.Sprintf("failed to read config file: %s", path),
		Cause:   err,
		Hint:    "Check that the file exists and is readable.",
	}
}
