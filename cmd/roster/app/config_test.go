package app

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/agentstation/roster/pkg/errors"
)

// isolate keeps tests away from a developer's ~/.roster.yaml and shell env.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"ROSTER_CONFIG", "ROSTER_DATA_DIR", "ROSTER_OUTPUT_FILE", "ROSTER_ADMIN_ROLES",
		"ROSTER_STRATEGY", "ROSTER_METRICS_FILE", "ROSTER_FORMAT", "ROSTER_VERBOSE",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
	} {
		t.Setenv(key, "")
	}
}

// TestLoadConfig verifies the defaults.
func TestLoadConfig(t *testing.T) {
	isolate(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.DataDir != "data" {
		t.Errorf("DataDir = %s, want data", config.DataDir)
	}
	if config.OutputFile != "Result.json" {
		t.Errorf("OutputFile = %s, want Result.json", config.OutputFile)
	}
	if !reflect.DeepEqual(config.AdminRoles, []string{"admin"}) {
		t.Errorf("AdminRoles = %v, want [admin]", config.AdminRoles)
	}
	if config.LogLevel != "" {
		t.Errorf("LogLevel = %s, want empty so -v/-q apply", config.LogLevel)
	}
	if config.LogFormat != "auto" {
		t.Errorf("LogFormat = %s, want auto", config.LogFormat)
	}
	if config.LogOutput != "stderr" {
		t.Errorf("LogOutput = %s, want stderr", config.LogOutput)
	}
}

// TestConfig_EnvironmentVariables verifies ROSTER_ prefixed variables.
func TestConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("ROSTER_DATA_DIR", "exports")
	t.Setenv("ROSTER_OUTPUT_FILE", "merged.yaml")
	t.Setenv("ROSTER_ADMIN_ROLES", "admin, owner")
	t.Setenv("ROSTER_STRATEGY", "first-seen")
	t.Setenv("ROSTER_VERBOSE", "true")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.DataDir != "exports" {
		t.Errorf("DataDir = %s, want exports", config.DataDir)
	}
	if config.OutputFile != "merged.yaml" {
		t.Errorf("OutputFile = %s, want merged.yaml", config.OutputFile)
	}
	if !reflect.DeepEqual(config.AdminRoles, []string{"admin", "owner"}) {
		t.Errorf("AdminRoles = %v, want [admin owner]", config.AdminRoles)
	}
	if config.Strategy != "first-seen" {
		t.Errorf("Strategy = %s, want first-seen", config.Strategy)
	}
	if !config.Verbose {
		t.Error("ROSTER_VERBOSE not loaded")
	}
}

// TestConfig_LoggingOptions verifies logging configuration.
func TestConfig_LoggingOptions(t *testing.T) {
	isolate(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", "stdout")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}
	if config.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", config.LogFormat)
	}
	if config.LogOutput != "stdout" {
		t.Errorf("LogOutput = %s, want stdout", config.LogOutput)
	}
}

// TestLoadConfigFile verifies reading an explicit YAML config file.
func TestLoadConfigFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "roster.yaml")
	content := "data_dir: /srv/exports\noutput_file: out.json\nadmin_roles:\n  - admin\n  - auditor\nmetrics_file: roster.prom\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() failed: %v", err)
	}

	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %s, want %s", config.ConfigFile, path)
	}
	if config.DataDir != "/srv/exports" {
		t.Errorf("DataDir = %s, want /srv/exports", config.DataDir)
	}
	if !reflect.DeepEqual(config.AdminRoles, []string{"admin", "auditor"}) {
		t.Errorf("AdminRoles = %v, want [admin auditor]", config.AdminRoles)
	}
	if config.MetricsFile != "roster.prom" {
		t.Errorf("MetricsFile = %s, want roster.prom", config.MetricsFile)
	}

	// Environment beats the file
	t.Setenv("ROSTER_DATA_DIR", "from-env")
	config, err = LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() failed: %v", err)
	}
	if config.DataDir != "from-env" {
		t.Errorf("DataDir = %s, want from-env", config.DataDir)
	}
}

// TestLoadConfigFile_Missing verifies that a named but missing file is an error.
func TestLoadConfigFile_Missing(t *testing.T) {
	isolate(t)

	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadConfigFile() succeeded, want error")
	}
	var configErr *errors.ConfigError
	if !errors.As(err, &configErr) {
		t.Errorf("error = %T, want *errors.ConfigError", err)
	}
}

// TestConfig_Validate verifies the struct constraints.
func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{DataDir: "data", OutputFile: "Result.json", AdminRoles: []string{"admin"}}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, field: "data_dir"},
		{name: "empty output file", mutate: func(c *Config) { c.OutputFile = "" }, field: "output_file"},
		{name: "no admin roles", mutate: func(c *Config) { c.AdminRoles = nil }, field: "admin_roles"},
		{name: "blank admin role", mutate: func(c *Config) { c.AdminRoles = []string{""} }, field: "admin_roles[0]"},
		{name: "unknown strategy", mutate: func(c *Config) { c.Strategy = "newest" }, field: "strategy"},
		{name: "unknown format", mutate: func(c *Config) { c.Format = "xml" }, field: "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)

			err := config.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *errors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *errors.ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %s, want %s", verr.Field, tt.field)
			}
		})
	}
}

// TestConfig_UpdateFromFlags verifies flag precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "info", Verbose: true}

	config.UpdateFromFlags(false, true, true, "", "")
	if config.Format != "yaml" {
		t.Errorf("Format = %s, want yaml kept when flag is empty", config.Format)
	}
	if !config.Verbose || !config.Quiet || !config.NoColor {
		t.Errorf("booleans = %v/%v/%v, want all true", config.Verbose, config.Quiet, config.NoColor)
	}

	config.UpdateFromFlags(false, false, false, "json", "error")
	if config.Format != "json" {
		t.Errorf("Format = %s, want json", config.Format)
	}
	if config.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want error", config.LogLevel)
	}
}
