// Package model defines the domain types for the weatherdash launcher.
//
// Nothing in this package is persisted by the launcher itself. The virtual
// environment's installed-package set is owned by pip; these types only
// describe what the launcher asks for and what it observes on disk.
package model

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Requirement is a single pip requirement specifier such as "PySide6<6.10"
// or "requests". Constraint holds the version clause verbatim, including
// its operator, and is empty for an unconstrained requirement.
type Requirement struct {
	// Name is the distribution name as understood by pip.
	Name string `json:"name" yaml:"name"`

	// Constraint is the version clause (e.g. "<6.10", ">=2,<3").
	Constraint string `json:"constraint,omitempty" yaml:"constraint,omitempty"`
}

// requirementRegex splits a specifier into a distribution name and an
// optional version clause. Extras and environment markers are not supported
// because the launcher only provisions a short fixed list.
var requirementRegex = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)\s*((?:[<>=!~]=?|===)\s*[^\s;\[\]]+(?:\s*,\s*(?:[<>=!~]=?|===)\s*[^\s;,\[\]]+)*)?$`)

// ParseRequirement converts a specifier string into a Requirement.
// Whitespace inside the version clause is removed so that
// "PySide6 < 6.10" and "PySide6<6.10" produce the same value.
func ParseRequirement(s string) (Requirement, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Requirement{}, fmt.Errorf("requirement must not be empty")
	}
	m := requirementRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return Requirement{}, fmt.Errorf("invalid requirement %q: expected <name>[<op><version>[,...]]", s)
	}
	return Requirement{
		Name:       m[1],
		Constraint: strings.Join(strings.Fields(m[2]), ""),
	}, nil
}

// ParseRequirements parses every specifier in specs, failing on the first
// malformed entry.
func ParseRequirements(specs []string) ([]Requirement, error) {
	reqs := make([]Requirement, 0, len(specs))
	for _, spec := range specs {
		req, err := ParseRequirement(spec)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// String returns the specifier in the form pip accepts on its command line.
func (r Requirement) String() string {
	return r.Name + r.Constraint
}

// EnvStatus is a point-in-time view of the dashboard's environment, as
// reported by the status command. Building it never changes anything on disk.
type EnvStatus struct {
	// AppDir is the absolute application directory.
	AppDir string `json:"appDir"`

	// AppDirExists reports whether AppDir is an existing directory.
	AppDirExists bool `json:"appDirExists"`

	// PythonVersion is the configured major.minor interpreter version.
	PythonVersion string `json:"pythonVersion"`

	// BasePython is the package-manager-provided interpreter path.
	// Empty when resolution failed; see InterpreterError.
	BasePython string `json:"basePython,omitempty"`

	// InterpreterError is the resolution failure, if any.
	InterpreterError string `json:"interpreterError,omitempty"`

	// VenvPython is the interpreter path inside the virtual environment.
	VenvPython string `json:"venvPython"`

	// VenvReady reports whether VenvPython exists and is executable.
	VenvReady bool `json:"venvReady"`

	// EntryPoint is the dashboard script passed to the interpreter.
	EntryPoint string `json:"entryPoint"`

	// EntryPointExists reports whether EntryPoint is a regular file.
	EntryPointExists bool `json:"entryPointExists"`
}

// Ready reports whether a launch would go straight to exec without
// running the setup phase.
func (s *EnvStatus) Ready() bool {
	return s.AppDirExists && s.VenvReady && s.EntryPointExists
}

// ExitCode defines the launcher's process exit codes. A failing child
// process (venv creation, pip) propagates its own exit code, so values
// outside the constants below are expected.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred. It is also
	// the code for a missing application directory.
	ExitGeneralError ExitCode = 1

	// ExitInterpreterNotFound indicates the package manager reported a
	// prefix that does not contain the requested interpreter.
	ExitInterpreterNotFound ExitCode = 2

	// ExitConfigInvalid indicates the configuration failed validation.
	ExitConfigInvalid ExitCode = 3
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// NewFolderNotFoundError is the one explicit user-facing failure of the
// launcher. Its message is printed verbatim.
func NewFolderNotFoundError(path string) *CLIError {
	return NewCLIError(ExitGeneralError, "Folder not found: "+path)
}

// WrapProcessError wraps the failure of a child process. When the child
// ran and exited non-zero its exit code becomes the CLIError code, so the
// launcher exits the way the failing tool did. Anything else (binary not
// found, context cancelled before start) maps to ExitGeneralError.
func WrapProcessError(message string, err error) *CLIError {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return WrapCLIError(ExitCode(code), message, err)
		}
	}
	return WrapCLIError(ExitGeneralError, message, err)
}

// ExitCodeOf returns the exit code carried by err, or ExitGeneralError for
// errors that are not CLIErrors. A nil error maps to ExitSuccess.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ExitGeneralError
}
