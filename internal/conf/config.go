// config.go: defines the configuration settings for the application
package conf

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

// WebServerSettings contains the HTTP server configuration
type WebServerSettings struct {
	Host string // address to bind to
	Port string // port to listen on
}

// DatabaseSettings contains the datastore configuration
type DatabaseSettings struct {
	Type string // "sqlite" or "mysql"
	Path string // sqlite database file path
	DSN  string // mysql connection string
}

// SessionSettings contains the cookie session configuration
type SessionSettings struct {
	Secret   string // key for the cookie store, generated if empty
	Duration int    // session duration in seconds
}

// UnsplashSettings contains Unsplash API configuration
type UnsplashSettings struct {
	AccessKey string
}

// PexelsSettings contains Pexels API configuration
type PexelsSettings struct {
	APIKey string
}

// PixabaySettings contains Pixabay API configuration
type PixabaySettings struct {
	APIKey string
}

// GeminiSettings contains the generative metadata provider configuration
type GeminiSettings struct {
	APIKey string
	Model  string
}

// ProviderSettings groups the external provider credentials. An empty
// credential disables that provider without failing startup.
type ProviderSettings struct {
	Unsplash UnsplashSettings
	Pexels   PexelsSettings
	Pixabay  PixabaySettings
	Gemini   GeminiSettings
}

// LogConfig defines the configuration for file logging
type LogConfig struct {
	Enabled    bool   // true to enable file logging
	Path       string // directory for log files
	MaxSize    int    // maximum log file size in megabytes before rotation
	MaxBackups int    // number of rotated files to keep
	MaxAge     int    // days to retain rotated files
}

// MainSettings contains general application settings
type MainSettings struct {
	Name string    // name of the node/instance
	Log  LogConfig // file logging configuration
}

// Settings is the root configuration structure
type Settings struct {
	Debug bool // true to enable debug logging

	Main      MainSettings
	WebServer WebServerSettings
	Database  DatabaseSettings
	Session   SessionSettings
	Providers ProviderSettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration into a new Settings struct. Defaults apply
// when no config file is present; a missing file is not an error.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	settingsMutex.Lock()
	settingsInstance = settings
	settingsMutex.Unlock()
	return settings, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("ROAMLY")
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file found, rely on defaults and environment
	}

	return nil
}

// validateSettings checks settings that would otherwise fail at first use.
func validateSettings(s *Settings) error {
	switch s.Database.Type {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported database type: %q", s.Database.Type)
	}
	if s.Database.Type == "mysql" && s.Database.DSN == "" {
		return fmt.Errorf("mysql database requires a dsn")
	}
	return nil
}

// GetSettings returns the current settings instance, or nil before Load.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting returns the settings instance, loading it once on first use.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				panic(fmt.Sprintf("error loading settings: %v", err))
			}
		}
	})
	return GetSettings()
}
