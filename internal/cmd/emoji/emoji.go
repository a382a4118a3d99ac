// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output.
const (
	// Success marks completed operations and the detected identifier column.
	Success = "✓"

	// Error marks failed operations and unreadable or unwritable files.
	Error = "✗"

	// Warning marks non-blocking issues such as an empty spreadsheet.
	Warning = "!"

	// Info marks informational outcomes such as a cancelled run.
	Info = "i"
)
