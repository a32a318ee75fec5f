package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/labelsync/cmd/application"
	"github.com/agentstation/labelsync/internal/config"
	"github.com/agentstation/labelsync/pkg/constants"
	"github.com/agentstation/labelsync/pkg/errors"
)

// envPrefix namespaces labelsync environment variables, e.g.
// LABELSYNC_ENDPOINT.
const envPrefix = "LABELSYNC"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Sync configuration
	AccessToken      string
	Endpoint         string
	Labels           []string
	AllowAddedLabels bool
	DryRun           bool
	Concurrency      int
	Timeout          time.Duration
	PageSize         int
	Store            string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.labelsync.yaml or ./.labelsync.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(os.Getenv(envPrefix + "_CONFIG"))
}

// loadConfig reads configFile, or searches the standard locations when it
// is empty.
func loadConfig(configFile string) (*Config, error) {
	// .env files are loaded before viper binds the environment
	loadEnvFiles()

	v := viper.GetViper()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	// A missing config file is only an error when one was named
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configFile != "" {
			return nil, errors.WrapResource("read", "config", configFile, err)
		}
	}

	cfg := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		AccessToken:      config.AccessToken(),
		Endpoint:         v.GetString("endpoint"),
		Labels:           v.GetStringSlice("labels"),
		AllowAddedLabels: v.GetBool("allow_added_labels"),
		DryRun:           v.GetBool("dry_run"),
		Concurrency:      v.GetInt("concurrency"),
		Timeout:          v.GetDuration("timeout"),
		PageSize:         v.GetInt("page_size"),
		Store:            v.GetString("store"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", constants.DefaultEndpoint)
	v.SetDefault("concurrency", constants.DefaultConcurrency)
	v.SetDefault("page_size", constants.DefaultPageSize)
	v.SetDefault("store", application.StoreGitHub)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// Settings returns the sync settings held by c.
func (c *Config) Settings() application.Settings {
	return application.Settings{
		AccessToken:      c.AccessToken,
		Endpoint:         c.Endpoint,
		Labels:           append([]string(nil), c.Labels...),
		AllowAddedLabels: c.AllowAddedLabels,
		DryRun:           c.DryRun,
		Concurrency:      c.Concurrency,
		Timeout:          c.Timeout,
		PageSize:         c.PageSize,
		Store:            c.Store,
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overridden, and
// .env.local only fills what .env left unset.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
