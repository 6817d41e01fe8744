// Package config loads feira settings from defaults, an optional JSON file
// in the data directory, FEIRA_* environment variables and command-line
// overrides, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. FEIRA_DB_PATH.
	EnvPrefix = "FEIRA"

	// DirName is the data directory created under the user's home.
	DirName = ".feira"

	// FileName is the optional config file inside the data directory.
	FileName = "config.json"

	// DatabaseFileName is the default database file inside the data directory.
	DatabaseFileName = "feira_coleta.db"
)

const (
	keyDBPath    = "db_path"
	keyLogLevel  = "log_level"
	keyLogFormat = "log_format"
	keyLogFile   = "log_file"
	keyDeviceID  = "device_id"
)

type (
	Config struct {
		Database
		Log
		Device

		// Dir is the data directory the config was resolved against.
		Dir string
	}

	Database struct {
		Path string
	}
	Log struct {
		Level  string // logrus level name
		Format string // "text" or "json"
		File   string // empty means stderr
	}
	Device struct {
		ID string // tags exported collections
	}
)

// Overrides carries command-line values; empty fields are ignored.
type Overrides struct {
	Dir      string
	DBPath   string
	LogLevel string
}

// DefaultDir returns ~/.feira, or ./.feira when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(keyDBPath, filepath.Join(dir, DatabaseFileName))
	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyLogFormat, "text")
	v.SetDefault(keyLogFile, "")
	v.SetDefault(keyDeviceID, "")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)
	return v
}

// Load resolves the configuration. A missing config file is not an error;
// a malformed one is.
func Load(o Overrides) (*Config, error) {
	dir := o.Dir
	if dir == "" {
		dir = DefaultDir()
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if o.DBPath != "" {
		v.Set(keyDBPath, o.DBPath)
	}
	if o.LogLevel != "" {
		v.Set(keyLogLevel, o.LogLevel)
	}

	cfg := &Config{
		Database: Database{
			Path: v.GetString(keyDBPath),
		},
		Log: Log{
			Level:  v.GetString(keyLogLevel),
			Format: v.GetString(keyLogFormat),
			File:   v.GetString(keyLogFile),
		},
		Device: Device{
			ID: v.GetString(keyDeviceID),
		},
		Dir: dir,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("db_path must not be empty")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}

// Save writes the persistent settings to <dir>/config.json.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set(keyDBPath, cfg.Database.Path)
	v.Set(keyLogLevel, cfg.Log.Level)
	v.Set(keyLogFormat, cfg.Log.Format)
	if cfg.Log.File != "" {
		v.Set(keyLogFile, cfg.Log.File)
	}
	if cfg.Device.ID != "" {
		v.Set(keyDeviceID, cfg.Device.ID)
	}

	if err := v.WriteConfigAs(filepath.Join(dir, FileName)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Exists reports whether <dir>/config.json exists.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil
}
