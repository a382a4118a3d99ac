package app

import (
	"cmp"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/tabmatch/internal/config"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (TABMATCH_*)
// 3. .env files
// 4. Config file (~/.tabmatch.yaml or ./.tabmatch.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	config.SetDefaults(viper.GetViper())

	readConfigFile(viper.GetString("config"))

	return &Config{
		Verbose:    viper.GetBool("verbose"),
		Quiet:      viper.GetBool("quiet"),
		NoColor:    viper.GetBool("no_color"),
		Format:     viper.GetString(config.KeyFormat),
		ConfigFile: viper.ConfigFileUsed(),
		LogLevel:   logSetting("log_level", ""),
		LogFormat:  logSetting("log_format", "auto"),
		LogOutput:  logSetting("log_output", "stderr"),
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags so they
// take precedence over config file and environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, configFile string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if configFile != "" && configFile != c.ConfigFile {
		readConfigFile(configFile)
		c.ConfigFile = viper.ConfigFileUsed()
	}
}

// readConfigFile reads file, or searches the standard locations when empty.
// A missing file is not an error.
func readConfigFile(file string) {
	if file != "" {
		viper.SetConfigFile(file)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tabmatch")
	}
	_ = viper.ReadInConfig()
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so its values win over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// logSetting reads key from config file or TABMATCH_ environment, then the
// unprefixed LOG_* variable shared with other tools, then defaultValue.
func logSetting(key, defaultValue string) string {
	return cmp.Or(viper.GetString(key), os.Getenv(strings.ToUpper(key)), defaultValue)
}
