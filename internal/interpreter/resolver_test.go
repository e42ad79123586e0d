package interpreter

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/weatherdash/internal/model"
	"github.com/shinji-kodama/weatherdash/internal/testutil"
)

// setupFakeBrew creates a fake package manager that answers
// `--prefix python@3.12` with a prefix containing bin/python3.12, and
// returns the fake manager's path and the expected interpreter path.
func setupFakeBrew(t *testing.T) (brew, python string) {
	t.Helper()

	root := t.TempDir()
	prefix := filepath.Join(root, "opt", "python@3.12")
	python = filepath.Join(prefix, "bin", "python3.12")
	testutil.WriteScript(t, python, "exit 0\n")

	brew = filepath.Join(root, "brew")
	testutil.WriteScript(t, brew, fmt.Sprintf(`if [ "$1" = "--prefix" ] && [ "$2" = "python@3.12" ]; then
  echo %s
  exit 0
fi
echo "Error: No available formula with the name \"$2\"." >&2
exit 1
`, prefix))

	return brew, python
}

func TestResolve(t *testing.T) {
	brew, python := setupFakeBrew(t)
	r := NewResolver(brew, &bytes.Buffer{})

	got, err := r.Resolve(context.Background(), "3.12")
	require.NoError(t, err)
	assert.Equal(t, python, got)
}

// TestResolve_UnknownFormula verifies that the package manager's exit
// status and stderr pass through.
func TestResolve_UnknownFormula(t *testing.T) {
	brew, _ := setupFakeBrew(t)
	var stderr bytes.Buffer
	r := NewResolver(brew, &stderr)

	_, err := r.Resolve(context.Background(), "3.9")
	require.Error(t, err)
	assert.Equal(t, model.ExitGeneralError, model.ExitCodeOf(err))
	assert.Contains(t, err.Error(), "--prefix python@3.9")
	assert.Contains(t, stderr.String(), "No available formula")
}

func TestResolve_PrefixWithoutInterpreter(t *testing.T) {
	root := t.TempDir()
	brew := filepath.Join(root, "brew")
	testutil.WriteScript(t, brew, fmt.Sprintf("echo %s\n", filepath.Join(root, "empty-prefix")))

	_, err := NewResolver(brew, &bytes.Buffer{}).Resolve(context.Background(), "3.12")
	require.Error(t, err)
	assert.Equal(t, model.ExitInterpreterNotFound, model.ExitCodeOf(err))
}

func TestResolve_EmptyPrefix(t *testing.T) {
	brew := filepath.Join(t.TempDir(), "brew")
	testutil.WriteScript(t, brew, "exit 0\n")

	_, err := NewResolver(brew, &bytes.Buffer{}).Resolve(context.Background(), "3.12")
	require.Error(t, err)
	assert.Equal(t, model.ExitInterpreterNotFound, model.ExitCodeOf(err))
}

func TestResolve_MissingPackageManager(t *testing.T) {
	r := NewResolver("weatherdash-no-such-brew", &bytes.Buffer{})

	_, err := r.Resolve(context.Background(), "3.12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `package manager "weatherdash-no-such-brew" not found`)
	assert.Equal(t, model.ExitGeneralError, model.ExitCodeOf(err))
}

func TestResolve_InvalidVersion(t *testing.T) {
	brew, _ := setupFakeBrew(t)

	for _, v := range []string{"", "3", "3.12.1", "python3.12"} {
		_, err := NewResolver(brew, &bytes.Buffer{}).Resolve(context.Background(), v)
		assert.Error(t, err, "version %q", v)
	}
}

func TestIsExecutable(t *testing.T) {
	dir := t.TempDir()

	exe := filepath.Join(dir, "exe")
	require.NoError(t, os.WriteFile(exe, []byte("x"), 0o755))
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))

	assert.True(t, IsExecutable(exe))
	assert.False(t, IsExecutable(plain))
	assert.False(t, IsExecutable(dir), "directories are not executables")
	assert.False(t, IsExecutable(filepath.Join(dir, "missing")))
}

func TestFormula(t *testing.T) {
	assert.Equal(t, "python@3.12", Formula("3.12"))
}
