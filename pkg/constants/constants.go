// Package constants provides shared constants used throughout the tabmatch codebase.
// This includes matching defaults, limits, file permissions and the labels used
// when exporting comparison results.
package constants

// Matching defaults
const (
	// DefaultThreshold is the default minimum similarity for fuzzy candidates
	DefaultThreshold = 90

	// DefaultDuplicatesThreshold is the default minimum similarity for near-duplicate pairs
	DefaultDuplicatesThreshold = 85

	// MinDuplicatesThreshold is the lowest threshold accepted by the near-duplicate detector
	MinDuplicatesThreshold = 50

	// MaxThreshold is the highest similarity score
	MaxThreshold = 100

	// DefaultPreviewRows is the number of target rows computed before confirmation
	DefaultPreviewRows = 20

	// MinDuplicateValues is the minimum number of values the detector needs
	MinDuplicateValues = 2
)

// Composite key and candidate formatting
const (
	// CompositeSeparator joins selected column values into one composite value
	CompositeSeparator = " | "

	// CandidateSeparator joins similar candidates of one match result
	CandidateSeparator = ", "

	// ColumnLabelSeparator joins selected column names in exported headers
	ColumnLabelSeparator = " + "
)

// Export labels
const (
	// DefaultReferenceName is used when the reference dataset has no display name
	DefaultReferenceName = "PLANILHA 1"

	// DefaultTargetName is used when the target dataset has no display name
	DefaultTargetName = "PLANILHA 2"

	// FoundYes marks a target row present in the reference dataset
	FoundYes = "Sim"

	// FoundNo marks a target row absent from the reference dataset
	FoundNo = "Não"

	// PairFirstHeader is the exported header of a pair's first value
	PairFirstHeader = "Nome 1"

	// PairSecondHeader is the exported header of a pair's second value
	PairSecondHeader = "Nome 2"

	// PairScoreHeader is the exported header of a pair's score
	PairScoreHeader = "Similaridade (%)"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
