package tabular

import (
	"github.com/agentstation/tabmatch/pkg/errors"
)

// Hint returns the user-facing advice for a load or export failure, or ""
// when err is neither.
func Hint(err error) string {
	switch {
	case errors.IsLocked(err):
		return "The output file is open in another program; close it and try again."
	case errors.IsWriteError(err):
		return "Could not save the results; check permissions and disk space."
	case errors.IsReadError(err):
		return "Could not read the spreadsheet; check whether it is corrupted or password-protected."
	default:
		return ""
	}
}
