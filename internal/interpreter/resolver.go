package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"github.com/shinji-kodama/weatherdash/internal/logging"
	"github.com/shinji-kodama/weatherdash/internal/model"
	"github.com/shinji-kodama/weatherdash/internal/procutil"
)

// versionRegex matches a major.minor version such as "3.12".
var versionRegex = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

// Resolver queries a package manager for interpreter install prefixes.
type Resolver struct {
	// packageManager is the binary name or path, e.g. "brew".
	packageManager string

	// stderr receives the package manager's diagnostics.
	stderr io.Writer
}

// NewResolver creates a Resolver that invokes packageManager and forwards
// its stderr to stderr.
func NewResolver(packageManager string, stderr io.Writer) *Resolver {
	return &Resolver{packageManager: packageManager, stderr: stderr}
}

// Formula returns the package manager formula for a Python version,
// e.g. "python@3.12".
func Formula(version string) string {
	return "python@" + version
}

// Resolve returns the absolute path of the python<version> executable
// installed under the package manager's prefix for that version.
//
// The command run is `<manager> --prefix python@<version>`, and the
// interpreter is expected at `<prefix>/bin/python<version>`.
func (r *Resolver) Resolve(ctx context.Context, version string) (string, error) {
	if !versionRegex.MatchString(version) {
		return "", model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid interpreter version %q: expected <major>.<minor>", version))
	}

	log := logging.Component(ctx, "interpreter")
	formula := Formula(version)

	prefix, err := procutil.Output(ctx, r.stderr, r.packageManager, "--prefix", formula)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("package manager %q not found", r.packageManager), err)
		}
		return "", model.WrapProcessError(
			fmt.Sprintf("%s failed", procutil.CommandLine(r.packageManager, "--prefix", formula)), err)
	}
	if prefix == "" {
		return "", model.NewCLIError(model.ExitInterpreterNotFound,
			fmt.Sprintf("%s reported an empty prefix for %s", r.packageManager, formula))
	}

	python := filepath.Join(prefix, "bin", "python"+version)
	if !IsExecutable(python) {
		return "", model.NewCLIError(model.ExitInterpreterNotFound,
			fmt.Sprintf("interpreter not found: %s", python))
	}

	log.Debug().Str("python", python).Str("formula", formula).Msg("resolved interpreter")
	return python, nil
}

// IsExecutable reports whether path names a regular file (after following
// symlinks) with at least one execute bit set.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
