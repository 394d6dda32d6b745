package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
	Map       MapConfig
	Nominatim NominatimConfig

	v *viper.Viper
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name      string // sent in the geocoder user agent
	Version   string
	Backend   string // openstreetmap, bing
	TestMode  bool
	Locale    string // overrides the OS default locale when set
	ScriptDir string // served as the map page's base directory
}

// MapConfig holds the initial map view
type MapConfig struct {
	Lat  float64
	Lng  float64
	Zoom int
}

// NominatimConfig holds geocoding service settings
type NominatimConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.photomap")

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("PHOTOMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("app.name", "Photini")
	v.SetDefault("app.version", "2017.8.0")
	v.SetDefault("app.backend", "openstreetmap")
	v.SetDefault("app.testmode", false)
	v.SetDefault("app.locale", "")
	v.SetDefault("app.scriptdir", "./web")
	v.SetDefault("map.lat", 51.0)
	v.SetDefault("map.lng", 0.0)
	v.SetDefault("map.zoom", 11)
	v.SetDefault("nominatim.baseurl", "https://nominatim.openstreetmap.org")
	v.SetDefault("nominatim.timeout", 10*time.Second)
	v.SetDefault("nominatim.ratelimit", 1.0)
}

func fromViper(v *viper.Viper) (*Config, error) {
	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.v = v

	return &cfg, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// UserAgent identifies the application to remote services
func (c *Config) UserAgent() string {
	return c.App.Name + "/" + c.App.Version
}

// Get looks up a credential stored under keys.<section>.<option>.
// Missing keys return an empty string.
func (c *Config) Get(section, option string) string {
	if c.v == nil {
		return ""
	}
	return c.v.GetString("keys." + section + "." + option)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
