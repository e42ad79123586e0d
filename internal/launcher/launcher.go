package launcher

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/weatherdash/internal/config"
	"github.com/shinji-kodama/weatherdash/internal/interpreter"
	"github.com/shinji-kodama/weatherdash/internal/logging"
	"github.com/shinji-kodama/weatherdash/internal/model"
	"github.com/shinji-kodama/weatherdash/internal/venv"
)

// Resolver finds the base interpreter for a major.minor version.
type Resolver interface {
	Resolve(ctx context.Context, version string) (string, error)
}

// Environment is a virtual environment the launcher can check, create and
// provision.
type Environment interface {
	Python() string
	Exists() bool
	Create(ctx context.Context, basePython string) error
	Install(ctx context.Context, reqs []model.Requirement) error
}

// ExecFunc replaces the current process image. It has the signature of
// unix.Exec and only returns on failure.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Plan is the outcome of the setup phase: everything needed to hand off
// to the dashboard.
type Plan struct {
	// AppDir is the absolute application directory.
	AppDir string

	// BasePython is the package-manager interpreter the venv is built from.
	BasePython string

	// VenvPython is the interpreter that runs the dashboard.
	VenvPython string

	// EntryPoint is the dashboard script.
	EntryPoint string

	// Installed is true when this run created the venv and installed
	// dependencies, false when an existing venv was reused.
	Installed bool
}

// Argv returns the argument vector for the dashboard process. The entry
// point is the only argument; the launcher forwards nothing else.
func (p *Plan) Argv() []string {
	return []string{p.VenvPython, p.EntryPoint}
}

// Launcher runs the bootstrap sequence for one configuration.
type Launcher struct {
	cfg      *config.Config
	resolver Resolver
	newEnv   func(dir string) Environment
	exec     ExecFunc
	environ  func() []string
}

// Option customizes a Launcher.
type Option func(*Launcher)

// WithResolver replaces the package manager resolver.
func WithResolver(r Resolver) Option {
	return func(l *Launcher) { l.resolver = r }
}

// WithEnvironment replaces the constructor used for the venv at a path.
func WithEnvironment(newEnv func(dir string) Environment) Option {
	return func(l *Launcher) { l.newEnv = newEnv }
}

// WithExec replaces the process handoff.
func WithExec(fn ExecFunc) Option {
	return func(l *Launcher) { l.exec = fn }
}

// New creates a Launcher for cfg. Output of the package manager, venv and
// pip is streamed to stdout and stderr.
func New(cfg *config.Config, stdout, stderr io.Writer, opts ...Option) *Launcher {
	l := &Launcher{
		cfg:      cfg,
		resolver: interpreter.NewResolver(cfg.PackageManager, stderr),
		newEnv: func(dir string) Environment {
			return venv.NewManager(dir, stdout, stderr)
		},
		exec:    Exec,
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run performs the whole sequence. On unix a successful Run never
// returns, because the process has become the dashboard.
func (l *Launcher) Run(ctx context.Context) error {
	plan, err := l.Prepare(ctx)
	if err != nil {
		return err
	}
	return l.Launch(ctx, plan)
}

// Prepare performs steps 1 to 4 and returns the resulting Plan.
func (l *Launcher) Prepare(ctx context.Context) (*Plan, error) {
	log := logging.Component(ctx, "launcher")

	appDir, err := l.cfg.ResolveAppDir()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "cannot resolve application directory", err)
	}
	if !isDir(appDir) {
		return nil, model.NewFolderNotFoundError(appDir)
	}

	reqs, err := l.cfg.ParsedRequirements()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigInvalid, "invalid requirements", err)
	}

	basePython, err := l.resolver.Resolve(ctx, l.cfg.PythonVersion)
	if err != nil {
		return nil, err
	}

	env := l.newEnv(filepath.Join(appDir, l.cfg.VenvDir))
	plan := &Plan{
		AppDir:     appDir,
		BasePython: basePython,
		VenvPython: env.Python(),
		EntryPoint: filepath.Join(appDir, l.cfg.EntryPoint),
	}

	if env.Exists() {
		log.Debug().Str("python", plan.VenvPython).Msg("virtual environment present, skipping setup")
		return plan, nil
	}

	if err := env.Create(ctx, basePython); err != nil {
		return nil, err
	}
	if err := env.Install(ctx, reqs); err != nil {
		return nil, err
	}
	plan.Installed = true
	log.Info().Str("python", plan.VenvPython).Msg("virtual environment ready")

	return plan, nil
}

// Launch performs step 5, handing the process over to the dashboard.
func (l *Launcher) Launch(ctx context.Context, plan *Plan) error {
	log := logging.Component(ctx, "launcher")
	log.Debug().Strs("argv", plan.Argv()).Msg("launching dashboard")

	if err := l.exec(plan.VenvPython, plan.Argv(), l.environ()); err != nil {
		return model.WrapProcessError("failed to launch "+plan.EntryPoint, err)
	}
	return nil
}

// Status reports the state of every path the sequence touches. It runs
// the package manager query but never creates, installs, or launches.
func (l *Launcher) Status(ctx context.Context) (*model.EnvStatus, error) {
	appDir, err := l.cfg.ResolveAppDir()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "cannot resolve application directory", err)
	}

	env := l.newEnv(filepath.Join(appDir, l.cfg.VenvDir))
	entry := filepath.Join(appDir, l.cfg.EntryPoint)
	status := &model.EnvStatus{
		AppDir:           appDir,
		AppDirExists:     isDir(appDir),
		PythonVersion:    l.cfg.PythonVersion,
		VenvPython:       env.Python(),
		VenvReady:        env.Exists(),
		EntryPoint:       entry,
		EntryPointExists: isFile(entry),
	}

	if python, err := l.resolver.Resolve(ctx, l.cfg.PythonVersion); err != nil {
		status.InterpreterError = err.Error()
	} else {
		status.BasePython = python
	}

	return status, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
