package alerts

import (
	"fmt"
	"time"

	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/tabular"
)

// Alert represents a status notification shown to the user.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp time.Time
	Err       error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// FromError classifies err into an alert. Cancellation is informational;
// load and export failures carry the advice for fixing them.
func FromError(err error) *Alert {
	switch {
	case errors.IsCanceled(err):
		return NewInfo("Operation cancelled; no results were saved.")
	case errors.IsValidationError(err):
		return NewError("Invalid input").WithError(err)
	case errors.IsReadError(err), errors.IsWriteError(err):
		return NewError(tabular.Hint(err)).WithError(err)
	case errors.IsTaskError(err):
		return NewError("The comparison stopped unexpectedly").WithError(err)
	default:
		return NewError("Unexpected error").WithError(err)
	}
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	message := fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}
