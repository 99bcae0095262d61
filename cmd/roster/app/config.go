package app

import (
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
)

var validate = newValidator()

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool   `mapstructure:"verbose"`
	Quiet   bool   `mapstructure:"quiet"`
	NoColor bool   `mapstructure:"no_color"`
	Format  string `mapstructure:"format" validate:"omitempty,oneof=text table json yaml wide auto"`

	// Config file
	ConfigFile string `mapstructure:"config"`

	// Pipeline configuration
	DataDir     string   `mapstructure:"data_dir" validate:"required"`
	OutputFile  string   `mapstructure:"output_file" validate:"required"`
	AdminRoles  []string `mapstructure:"admin_roles" validate:"min=1,dive,required"`
	Strategy    string   `mapstructure:"strategy" validate:"omitempty,oneof=most-recent first-seen"`
	MetricsFile string   `mapstructure:"metrics_file"`

	// Logging configuration
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogOutput string `mapstructure:"log_output"`
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (ROSTER_ prefix)
// 3. .env files
// 4. Config file (~/.roster.yaml or ./.roster.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile(os.Getenv(constants.EnvPrefix + "_CONFIG"))
}

// LoadConfigFile loads configuration like LoadConfig but reads the given
// config file instead of searching the standard locations. A named file
// that cannot be read is an error; a missing file in the search path is not.
func LoadConfigFile(path string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", constants.DefaultDataDir)
	v.SetDefault("output_file", constants.DefaultOutputFile)
	v.SetDefault("admin_roles", []string{constants.DefaultAdminRole})

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("viper", "reading "+path, err)
		}
	} else {
		// Search for config in standard locations
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)

		// Read config file (ignore error if not found)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("viper", "reading config file", err)
			}
		}
	}

	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		DataDir:     v.GetString("data_dir"),
		OutputFile:  v.GetString("output_file"),
		AdminRoles:  splitList(v.GetStringSlice("admin_roles")),
		Strategy:    v.GetString("strategy"),
		MetricsFile: v.GetString("metrics_file"),

		// Logging configuration. LOG_LEVEL stays empty unless set so the
		// -v/-q shortcuts can apply.
		LogLevel:  firstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat: firstNonEmpty(v.GetString("log_format"), getEnvOrDefault("LOG_FORMAT", "auto")),
		LogOutput: firstNonEmpty(v.GetString("log_output"), getEnvOrDefault("LOG_OUTPUT", "stderr")),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.NewConfigError("validator", "validating config", err)
	}

	fe := verrs[0]
	return errors.NewValidationError(fe.Field(), fe.Value(), describe(fe))
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars. Boolean flags
// can only switch an option on.
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

// newValidator reports fields by their config key instead of the Go field name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// describe turns a failed rule into a short message.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "cannot be empty"
	case "min":
		return "needs at least " + fe.Param() + " entry"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed rule " + fe.Tag()
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// Variables already set in the environment are never replaced
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// splitList flattens comma separated entries so ROSTER_ADMIN_ROLES=admin,owner
// and a YAML list both yield the same roles.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
