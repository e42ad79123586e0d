package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/weatherdash/internal/model"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// WEATHERDASH_APP_DIR or WEATHERDASH_PYTHON_VERSION.
const EnvPrefix = "WEATHERDASH"

// Config holds all launcher configuration.
type Config struct {
	// AppDir is the dashboard's application directory. A leading "~" is
	// expanded to the user's home directory.
	AppDir string `mapstructure:"app_dir" yaml:"app_dir" json:"app_dir"`

	// PythonVersion is the major.minor interpreter version requested from
	// the package manager.
	PythonVersion string `mapstructure:"python_version" yaml:"python_version" json:"python_version"`

	// PackageManager is the binary queried for the interpreter prefix.
	PackageManager string `mapstructure:"package_manager" yaml:"package_manager" json:"package_manager"`

	// VenvDir is the virtual environment directory, relative to AppDir.
	VenvDir string `mapstructure:"venv_dir" yaml:"venv_dir" json:"venv_dir"`

	// EntryPoint is the dashboard script, relative to AppDir.
	EntryPoint string `mapstructure:"entry_point" yaml:"entry_point" json:"entry_point"`

	// Requirements are pip specifiers installed into a freshly created venv.
	Requirements []string `mapstructure:"requirements" yaml:"requirements" json:"requirements"`

	// UpgradePip adds pip itself to the install and passes --upgrade.
	UpgradePip bool `mapstructure:"upgrade_pip" yaml:"upgrade_pip" json:"upgrade_pip"`

	// File is the config file that was read, empty when only defaults and
	// environment variables apply.
	File string `mapstructure:"-" yaml:"-" json:"-"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		AppDir:         "~/weather_dashboard",
		PythonVersion:  "3.12",
		PackageManager: "brew",
		VenvDir:        ".venv",
		EntryPoint:     "weather_dashboard.py",
		Requirements:   []string{"PySide6<6.10", "requests"},
		UpgradePip:     true,
	}
}

// Load reads configuration from defaults, a config file, and the
// environment. When file is empty the config directory is searched and a
// missing file is not an error; an explicitly named file must exist.
func Load(file string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("app_dir", defaults.AppDir)
	v.SetDefault("python_version", defaults.PythonVersion)
	v.SetDefault("package_manager", defaults.PackageManager)
	v.SetDefault("venv_dir", defaults.VenvDir)
	v.SetDefault("entry_point", defaults.EntryPoint)
	v.SetDefault("requirements", defaults.Requirements)
	v.SetDefault("upgrade_pip", defaults.UpgradePip)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		dir, err := ConfigDir()
		if err == nil {
			file = findConfigFile(dir)
		}
	} else if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", file, err)
	}

	if file != "" {
		if err := readConfigFile(v, file); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.File = file

	return cfg, nil
}

// readConfigFile merges file into v. JSONC is normalized to plain JSON
// first because viper has no JSONC codec.
func readConfigFile(v *viper.Viper, file string) error {
	ext := strings.ToLower(filepath.Ext(file))
	if ext != ".jsonc" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", file, err)
		}
		return nil
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", file, err)
	}
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(jsonc.ToJSON(raw))); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", file, err)
	}
	return nil
}

// versionRegex matches a major.minor interpreter version such as "3.12".
var versionRegex = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

// Validate checks that the configuration is usable. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.AppDir) == "" {
		errs = append(errs, errors.New("app_dir must not be empty"))
	}
	if !versionRegex.MatchString(c.PythonVersion) {
		errs = append(errs, fmt.Errorf("python_version %q must be <major>.<minor>", c.PythonVersion))
	}
	if strings.TrimSpace(c.PackageManager) == "" {
		errs = append(errs, errors.New("package_manager must not be empty"))
	}
	if err := validateRelative("venv_dir", c.VenvDir); err != nil {
		errs = append(errs, err)
	}
	if err := validateRelative("entry_point", c.EntryPoint); err != nil {
		errs = append(errs, err)
	}
	if _, err := model.ParseRequirements(c.Requirements); err != nil {
		errs = append(errs, fmt.Errorf("requirements: %w", err))
	}

	if len(errs) > 0 {
		return model.WrapCLIError(model.ExitConfigInvalid, "invalid configuration", errors.Join(errs...))
	}
	return nil
}

// validateRelative rejects empty, absolute, and parent-escaping paths for
// fields that must live inside the application directory.
func validateRelative(field, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("%s %q must be relative to app_dir", field, path)
	}
	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s %q must stay inside app_dir", field, path)
	}
	return nil
}

// ResolveAppDir returns AppDir with "~" expanded and made absolute.
func (c *Config) ResolveAppDir() (string, error) {
	expanded, err := ExpandHome(c.AppDir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve app_dir %q: %w", c.AppDir, err)
	}
	return abs, nil
}

// ParsedRequirements returns the install set: pip first when UpgradePip is
// set, then the configured requirements in order.
func (c *Config) ParsedRequirements() ([]model.Requirement, error) {
	reqs, err := model.ParseRequirements(c.Requirements)
	if err != nil {
		return nil, err
	}
	if !c.UpgradePip {
		return reqs, nil
	}
	return append([]model.Requirement{{Name: "pip"}}, reqs...), nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
