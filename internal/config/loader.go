package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variables that override the file.
const (
	EnvEndpoint = "GLYPHPAD_ENDPOINT"
	EnvTimeout  = "GLYPHPAD_TIMEOUT"
	EnvLogLevel = "GLYPHPAD_LOG_LEVEL"
	EnvTheme    = "GLYPHPAD_THEME"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time or by -config

	// Getenv defaults to os.LookupEnv.
	Getenv func(string) (string, bool)
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
		Getenv:       os.LookupEnv,
	}
}

func (l *Loader) dev() bool { return l.Version == "dev" }

// Load reads the config file if one exists and applies environment
// overrides on top. Dev builds first load a .env file from the working
// directory.
func (l *Loader) Load() (*Config, error) {
	if l.dev() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "load .env")
		}
	}

	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open config")
		}
		defer f.Close()
		cfg, err = Parse(f)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	}
	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) error {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.LookupEnv
	}
	if v, ok := getenv(EnvEndpoint); ok && v != "" {
		cfg.Endpoint = v
	}
	if v, ok := getenv(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvTimeout)
		}
		cfg.Timeout = d
	}
	if v, ok := getenv(EnvLogLevel); ok && v != "" {
		if err := setRootField(cfg, "log_level", v); err != nil {
			return errors.Wrapf(err, "%s", EnvLogLevel)
		}
	}
	if v, ok := getenv(EnvTheme); ok && v != "" {
		cfg.Theme = v
	}
	return nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.dev() {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".glyphpadrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	for _, name := range []string{"config.rc", "glyphpad.rc"} {
		if p := filepath.Join(configDir(), name); fileExists(p) {
			return p
		}
	}

	return ""
}

// SavePath is where `config save` writes: the override path when set, the
// file that was loaded when there is one, otherwise the XDG config file.
func (l *Loader) SavePath() string {
	if l.OverridePath != "" {
		return l.OverridePath
	}
	if p := l.GetConfigPath(); p != "" {
		return p
	}
	return filepath.Join(configDir(), "config.rc")
}

// Save writes cfg in RC form to the save path, creating its directory.
func (l *Loader) Save(cfg *Config) (string, error) {
	path := l.SavePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "create config dir")
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return "", errors.Wrap(err, "write config")
	}
	return path, nil
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "glyphpad")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "glyphpad")
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
