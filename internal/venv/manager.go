package venv

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/shinji-kodama/weatherdash/internal/interpreter"
	"github.com/shinji-kodama/weatherdash/internal/logging"
	"github.com/shinji-kodama/weatherdash/internal/model"
	"github.com/shinji-kodama/weatherdash/internal/procutil"
)

// Manager owns a single virtual environment directory.
type Manager struct {
	// dir is the absolute path of the environment, e.g. <app>/.venv.
	dir string

	// stdout and stderr receive the output of venv and pip.
	stdout io.Writer
	stderr io.Writer
}

// NewManager creates a Manager for the environment at dir. Output of the
// underlying tools is streamed to stdout and stderr.
func NewManager(dir string, stdout, stderr io.Writer) *Manager {
	return &Manager{dir: dir, stdout: stdout, stderr: stderr}
}

// Dir returns the environment directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Python returns the path of the environment's interpreter.
func (m *Manager) Python() string {
	return filepath.Join(m.dir, "bin", "python")
}

// Exists reports whether the environment's interpreter is present and
// executable.
func (m *Manager) Exists() bool {
	return interpreter.IsExecutable(m.Python())
}

// Create runs `<basePython> -m venv <dir>`.
func (m *Manager) Create(ctx context.Context, basePython string) error {
	log := logging.Component(ctx, "venv")
	log.Info().Str("dir", m.dir).Str("python", basePython).Msg("creating virtual environment")

	args := []string{"-m", "venv", m.dir}
	if err := procutil.Run(ctx, m.stdout, m.stderr, basePython, args...); err != nil {
		return model.WrapProcessError(
			fmt.Sprintf("%s failed", procutil.CommandLine(basePython, args...)), err)
	}
	return nil
}

// Install runs a single `pip install --upgrade` for reqs using the
// environment's own interpreter. An empty set is a no-op.
func (m *Manager) Install(ctx context.Context, reqs []model.Requirement) error {
	if len(reqs) == 0 {
		return nil
	}

	args := InstallArgs(reqs)
	log := logging.Component(ctx, "venv")
	log.Info().Strs("requirements", args[4:]).Msg("installing dependencies")

	if err := procutil.Run(ctx, m.stdout, m.stderr, m.Python(), args...); err != nil {
		return model.WrapProcessError(
			fmt.Sprintf("%s failed", procutil.CommandLine(m.Python(), args...)), err)
	}
	return nil
}

// InstallArgs builds the interpreter arguments for installing reqs:
//
//	-m pip install --upgrade <spec>...
func InstallArgs(reqs []model.Requirement) []string {
	args := []string{"-m", "pip", "install", "--upgrade"}
	for _, r := range reqs {
		args = append(args, r.String())
	}
	return args
}
