package model

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRequirement verifies specifier parsing, including whitespace
// normalization inside the version clause and rejection of malformed input.
func TestParseRequirement(t *testing.T) {
	tests := []struct {
		input    string
		expected Requirement
		hasError bool
	}{
		{"requests", Requirement{Name: "requests"}, false},
		{"PySide6<6.10", Requirement{Name: "PySide6", Constraint: "<6.10"}, false},
		{"PySide6 < 6.10", Requirement{Name: "PySide6", Constraint: "<6.10"}, false},
		{"  pip  ", Requirement{Name: "pip"}, false},
		{"urllib3>=2,<3", Requirement{Name: "urllib3", Constraint: ">=2,<3"}, false},
		{"typing_extensions~=4.12", Requirement{Name: "typing_extensions", Constraint: "~=4.12"}, false},
		{"", Requirement{}, true},
		{"   ", Requirement{}, true},
		{"<6.10", Requirement{}, true},
		{"bad name", Requirement{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseRequirement(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestRequirement_String checks that String produces the form pip accepts.
func TestRequirement_String(t *testing.T) {
	assert.Equal(t, "PySide6<6.10", Requirement{Name: "PySide6", Constraint: "<6.10"}.String())
	assert.Equal(t, "requests", Requirement{Name: "requests"}.String())
}

func TestParseRequirements(t *testing.T) {
	reqs, err := ParseRequirements([]string{"PySide6<6.10", "requests"})
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "PySide6<6.10", reqs[0].String())
	assert.Equal(t, "requests", reqs[1].String())

	_, err = ParseRequirements([]string{"requests", ""})
	assert.Error(t, err)
}

// TestEnvStatus_Ready verifies that Ready requires every piece of the
// environment to be in place.
func TestEnvStatus_Ready(t *testing.T) {
	status := EnvStatus{AppDirExists: true, VenvReady: true, EntryPointExists: true}
	assert.True(t, status.Ready())

	status.VenvReady = false
	assert.False(t, status.Ready())

	status = EnvStatus{AppDirExists: true, VenvReady: true}
	assert.False(t, status.Ready())
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitConfigInvalid, "invalid configuration")
		assert.Equal(t, ExitConfigInvalid, err.Code)
		assert.Equal(t, "invalid configuration", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitGeneralError, "cannot create venv", inner)
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Contains(t, err.Error(), "permission denied")
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitGeneralError, "cannot create venv", inner)
		assert.True(t, errors.Is(err, inner))
	})
}

// TestNewFolderNotFoundError checks the exact user-facing message and code.
func TestNewFolderNotFoundError(t *testing.T) {
	err := NewFolderNotFoundError("/opt/weather_dashboard")
	assert.Equal(t, "Folder not found: /opt/weather_dashboard", err.Error())
	assert.Equal(t, ExitGeneralError, err.Code)
}

// TestWrapProcessError verifies that a child's non-zero exit status becomes
// the CLIError code, and that other failures fall back to ExitGeneralError.
func TestWrapProcessError(t *testing.T) {
	t.Run("child exit status propagates", func(t *testing.T) {
		runErr := exec.Command("sh", "-c", "exit 42").Run()
		require.Error(t, runErr)

		err := WrapProcessError("pip install failed", runErr)
		assert.Equal(t, ExitCode(42), err.Code)
		assert.ErrorIs(t, err, runErr)
	})

	t.Run("non-process error", func(t *testing.T) {
		err := WrapProcessError("brew failed", exec.ErrNotFound)
		assert.Equal(t, ExitGeneralError, err.Code)
	})
}

func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeOf(nil))
	assert.Equal(t, ExitGeneralError, ExitCodeOf(errors.New("boom")))
	assert.Equal(t, ExitCode(7), ExitCodeOf(NewCLIError(7, "seven")))
	assert.Equal(t, ExitInterpreterNotFound,
		ExitCodeOf(fmt.Errorf("outer: %w", NewCLIError(ExitInterpreterNotFound, "missing"))))
}
