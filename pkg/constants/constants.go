// Package constants provides shared constants used throughout the roster codebase.
// This includes file permissions, layouts, defaults and the user-visible
// messages printed by the query command.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Format constants
const (
	// TimestampLayout is the layout of created_at in every source format and in the output file
	TimestampLayout = "2006-01-02 15:04:05"

	// PhoneDigits is the length of a normalized phone number
	PhoneDigits = 9

	// MaxEmailSuffixLength is the longest accepted top-level suffix of an email address
	MaxEmailSuffixLength = 4

	// CSVDelimiter separates columns in delimited source files
	CSVDelimiter = ';'

	// OutputIndent is the indentation used when persisting the dataset
	OutputIndent = "  "
)

// Default values
const (
	// DefaultDataDir is the directory tree scanned for source files
	DefaultDataDir = "data"

	// DefaultOutputFile is where the merged dataset is written
	DefaultOutputFile = "Result.json"

	// DefaultAdminRole is the role granting elevated query access when none is configured
	DefaultAdminRole = "admin"

	// EnvPrefix is the prefix for environment variables read by viper
	EnvPrefix = "ROSTER"

	// ConfigName is the config file name (without extension) searched in $HOME and .
	ConfigName = ".roster"
)

// User-visible messages printed by the query command.
const (
	MsgInvalidLogin   = "Invalid login"
	MsgAccessDenied   = "Access denied."
	MsgInvalidCommand = "Invalid command: %s"
	MsgNoCommand      = "No command provided."
	MsgNoChildren     = "User has no children"
)
