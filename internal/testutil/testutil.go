// Package testutil provides a fake Python toolchain for launcher tests.
//
// The toolchain is a set of shell scripts in t.TempDir(): a package manager
// that answers `--prefix python@X.Y`, a base interpreter that understands
// `-m venv <dir>`, and the venv interpreter it generates, which accepts
// `-m pip install ...`. Every invocation is appended to a log file so
// tests can assert exactly which commands ran.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Toolchain describes a fake package manager and interpreter on disk.
type Toolchain struct {
	// Root is the temporary directory holding all fake tools.
	Root string

	// Version is the major.minor version the package manager knows about.
	Version string

	// Brew is the path of the fake package manager.
	Brew string

	// BasePython is the interpreter Brew reports for Version.
	BasePython string

	// LogPath records one line per tool invocation.
	LogPath string
}

// NewToolchain creates a fake toolchain serving the given Python version.
func NewToolchain(t *testing.T, version string) *Toolchain {
	t.Helper()

	root := t.TempDir()
	tc := &Toolchain{
		Root:    root,
		Version: version,
		Brew:    filepath.Join(root, "bin", "brew"),
		LogPath: filepath.Join(root, "calls.log"),
	}
	prefix := filepath.Join(root, "opt", "python@"+version)
	tc.BasePython = filepath.Join(prefix, "bin", "python"+version)

	WriteScript(t, tc.Brew, fmt.Sprintf(`echo "brew $*" >> '%[1]s'
if [ "$1" = "--prefix" ] && [ "$2" = "python@%[2]s" ]; then
  echo '%[3]s'
  exit 0
fi
echo "Error: No available formula with the name \"$2\"." >&2
exit 1
`, tc.LogPath, version, prefix))

	WriteScript(t, tc.BasePython, fmt.Sprintf(`echo "python%[2]s $*" >> '%[1]s'
if [ "$1" = "-m" ] && [ "$2" = "venv" ]; then
  if [ -f '%[3]s/fail-venv' ]; then
    echo "Error: Command '-m venv' returned non-zero exit status 5." >&2
    exit 5
  fi
  mkdir -p "$3/bin"
  cat > "$3/bin/python" <<'PYEOF'
#!/bin/sh
echo "venv-python $*" >> '%[1]s'
if [ "$1" = "-m" ] && [ "$2" = "pip" ]; then
  if [ -f '%[3]s/fail-pip' ]; then
    echo "ERROR: Could not find a version that satisfies the requirement" >&2
    exit 7
  fi
  echo "Successfully installed"
fi
exit 0
PYEOF
  chmod +x "$3/bin/python"
fi
exit 0
`, tc.LogPath, version, root))

	return tc
}

// FailVenv makes subsequent `-m venv` invocations exit with status 5.
func (tc *Toolchain) FailVenv(t *testing.T) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(tc.Root, "fail-venv"), nil, 0o644))
}

// FailPip makes subsequent `-m pip` invocations exit with status 7.
func (tc *Toolchain) FailPip(t *testing.T) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(tc.Root, "fail-pip"), nil, 0o644))
}

// Calls returns the logged invocations in order, e.g.
// "brew --prefix python@3.12" or "venv-python -m pip install --upgrade pip".
func (tc *Toolchain) Calls(t *testing.T) []string {
	t.Helper()

	data, err := os.ReadFile(tc.LogPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// CallsWithPrefix returns the logged invocations starting with prefix.
func (tc *Toolchain) CallsWithPrefix(t *testing.T, prefix string) []string {
	t.Helper()

	var out []string
	for _, c := range tc.Calls(t) {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// NewAppDir creates an application directory containing an entry point
// script and returns its path.
func NewAppDir(t *testing.T, entryPoint string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "weather_dashboard")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, entryPoint), []byte("print('dashboard')\n"), 0o644))
	return dir
}

// WriteScript creates an executable /bin/sh script at path, creating
// parent directories as needed.
func WriteScript(t *testing.T, path, body string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
}
