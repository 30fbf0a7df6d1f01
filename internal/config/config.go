// Package config provides configuration management for the shot manager.
// Values come from a viper instance: defaults, an optional
// .shotmanager.yaml file, then SHOTMANAGER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/heimdex/shotmanager/internal/logging"
)

const (
	// Default values
	DefaultPort            = 8788
	DefaultLogLevel        = "info"
	DefaultDataDir         = ".shotmanager"
	DefaultFrameRate       = 25.0
	DefaultEditStartFrame  = 0
	DefaultNewShotDuration = 50
	DefaultNewShotPrefix   = "Sh"
	DefaultHandles         = 10

	// EnvPrefix is prepended to every key to form its environment variable,
	// e.g. SHOTMANAGER_PORT.
	EnvPrefix = "SHOTMANAGER"

	// ConfigName is the base name of the optional config file.
	ConfigName = ".shotmanager"

	// Database filename
	DBFilename = "shotmanager.db"
)

// Keys
const (
	KeyPort                   = "port"
	KeyLogLevel               = "log_level"
	KeyDataDir                = "data_dir"
	KeyFrameRate              = "frame_rate"
	KeyEditStartFrame         = "edit_start_frame"
	KeyNewShotDuration        = "new_shot_duration"
	KeyNewShotPrefix          = "new_shot_prefix"
	KeyChangeTimeOnShotSwitch = "change_time_on_shot_switch"
	KeyHandles                = "handles"
	KeyHeadless               = "headless"
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	FrameRate() float64
	EditStartFrame() int
	NewShotDuration() int
	NewShotPrefix() string
	ChangeTimeOnShotSwitch() bool
	Handles() int
	Headless() bool
}

// ViperConfig is a Config validated once from a viper instance.
type ViperConfig struct {
	port            int
	logLevel        string
	dataDir         string
	frameRate       float64
	editStartFrame  int
	newShotDuration int
	newShotPrefix   string
	changeTime      bool
	handles         int
	headless        bool
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyDataDir, defaultDataDir())
	v.SetDefault(KeyFrameRate, DefaultFrameRate)
	v.SetDefault(KeyEditStartFrame, DefaultEditStartFrame)
	v.SetDefault(KeyNewShotDuration, DefaultNewShotDuration)
	v.SetDefault(KeyNewShotPrefix, DefaultNewShotPrefix)
	v.SetDefault(KeyChangeTimeOnShotSwitch, true)
	v.SetDefault(KeyHandles, DefaultHandles)
	v.SetDefault(KeyHeadless, false)
}

// Setup prepares v for environment overrides and reads the config file.
// An explicit configFile must exist; the default one is optional.
func Setup(v *viper.Viper, configFile string) error {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// New builds a Config from defaults, the default config file and the
// environment.
func New() (*ViperConfig, error) {
	v := viper.New()
	if err := Setup(v, ""); err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper validates the values held by v.
func FromViper(v *viper.Viper) (*ViperConfig, error) {
	cfg := &ViperConfig{
		port:            v.GetInt(KeyPort),
		logLevel:        v.GetString(KeyLogLevel),
		dataDir:         v.GetString(KeyDataDir),
		frameRate:       v.GetFloat64(KeyFrameRate),
		editStartFrame:  v.GetInt(KeyEditStartFrame),
		newShotDuration: v.GetInt(KeyNewShotDuration),
		newShotPrefix:   v.GetString(KeyNewShotPrefix),
		changeTime:      v.GetBool(KeyChangeTimeOnShotSwitch),
		handles:         v.GetInt(KeyHandles),
		headless:        v.GetBool(KeyHeadless),
	}

	if cfg.port < 1 || cfg.port > 65535 {
		return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", KeyPort)
	}
	if cfg.frameRate <= 0 {
		return nil, fmt.Errorf("invalid %s: must be positive", KeyFrameRate)
	}
	if cfg.editStartFrame < 0 {
		return nil, fmt.Errorf("invalid %s: must not be negative", KeyEditStartFrame)
	}
	if cfg.newShotDuration < 1 {
		return nil, fmt.Errorf("invalid %s: must be at least 1", KeyNewShotDuration)
	}
	if cfg.handles < 0 {
		return nil, fmt.Errorf("invalid %s: must not be negative", KeyHandles)
	}
	if _, err := logging.ParseLevel(cfg.logLevel); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}
	if cfg.dataDir == "" {
		cfg.dataDir = defaultDataDir()
	}
	return cfg, nil
}

// Port returns the HTTP server port
func (c *ViperConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *ViperConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *ViperConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *ViperConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

func (c *ViperConfig) FrameRate() float64 {
	return c.frameRate
}

// EditStartFrame is applied to a new timeline only; a saved timeline keeps
// its own value.
func (c *ViperConfig) EditStartFrame() int {
	return c.editStartFrame
}

func (c *ViperConfig) NewShotDuration() int {
	return c.newShotDuration
}

func (c *ViperConfig) NewShotPrefix() string {
	return c.newShotPrefix
}

func (c *ViperConfig) ChangeTimeOnShotSwitch() bool {
	return c.changeTime
}

// Handles is the number of extra media frames on each side of a shot.
func (c *ViperConfig) Handles() int {
	return c.handles
}

// Headless disables the system tray.
func (c *ViperConfig) Headless() bool {
	return c.headless
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
