package persistence

import (
	"path/filepath"
	"strings"
)

// Format is a persisted dataset encoding.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// FormatFromPath picks the format from the file extension.
// Anything other than .yaml or .yml is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Options is the configuration for Save.
type Options struct {
	format    Format
	formatSet bool
	mkdirs    bool
}

// Format returns the configured format and whether it was set explicitly.
func (o *Options) Format() (Format, bool) {
	return o.format, o.formatSet
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		format: FormatJSON,
		mkdirs: true,
	}
}

// Apply applies the given options to the save options.
func (o *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(o)
	}
	return *o
}

// Option is a function that configures save options.
type Option func(*Options)

// WithFormat overrides the format implied by the file extension.
func WithFormat(f Format) Option {
	return func(o *Options) {
		o.format = f
		o.formatSet = true
	}
}

// WithoutMkdirs disables creating missing parent directories.
func WithoutMkdirs() Option {
	return func(o *Options) {
		o.mkdirs = false
	}
}
