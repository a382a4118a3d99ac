// Package config exposes validated configuration values read through viper.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/tabmatch/pkg/constants"
	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/normalize"
)

// EnvPrefix prefixes every environment variable read by tabmatch.
const EnvPrefix = "TABMATCH"

// Configuration keys.
const (
	KeyThreshold           = "threshold"
	KeyDuplicatesThreshold = "duplicates_threshold"
	KeyMode                = "mode"
	KeyPreviewRows         = "preview_rows"
	KeyReferenceName       = "reference_name"
	KeyTargetName          = "target_name"
	KeyFormat              = "format"
	KeyYes                 = "yes"
)

// SetDefaults registers the default value of every matching key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyThreshold, constants.DefaultThreshold)
	v.SetDefault(KeyDuplicatesThreshold, constants.DefaultDuplicatesThreshold)
	v.SetDefault(KeyMode, normalize.Standard.String())
	v.SetDefault(KeyPreviewRows, constants.DefaultPreviewRows)
}

// EnvName returns the environment variable consulted for key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(EnvName(key))
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// GetInt returns key as an integer.
func GetInt(key string) (int, error) {
	raw := strings.TrimSpace(GetString(key))
	if raw == "" {
		return 0, nil
	}
	var n int
	if _, err := fmt.Sscan(raw, &n); err != nil {
		return 0, errors.NewValidationError(key, raw, "must be an integer")
	}
	return n, nil
}

// GetFloat returns key as a float.
func GetFloat(key string) (float64, error) {
	raw := strings.TrimSpace(GetString(key))
	if raw == "" {
		return 0, nil
	}
	var f float64
	if _, err := fmt.Sscan(strings.Replace(raw, ",", ".", 1), &f); err != nil {
		return 0, errors.NewValidationError(key, raw, "must be a number")
	}
	return f, nil
}

// Threshold returns the fuzzy threshold of two-dataset comparisons.
func Threshold() (float64, error) {
	return ranged(KeyThreshold, 0, constants.MaxThreshold)
}

// DuplicatesThreshold returns the threshold of near-duplicate scans.
func DuplicatesThreshold() (float64, error) {
	return ranged(KeyDuplicatesThreshold, constants.MinDuplicatesThreshold, constants.MaxThreshold)
}

// PreviewRows returns how many target rows a comparison previews.
func PreviewRows() (int, error) {
	n, err := GetInt(KeyPreviewRows)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.NewValidationError(KeyPreviewRows, n, "must be at least 1")
	}
	return n, nil
}

// Mode returns the configured normalization mode.
func Mode() (normalize.Mode, error) {
	return normalize.ParseMode(GetString(KeyMode))
}

func ranged(key string, lo, hi float64) (float64, error) {
	f, err := GetFloat(key)
	if err != nil {
		return 0, err
	}
	if f < lo || f > hi {
		return 0, errors.NewValidationError(key, f, fmt.Sprintf("must be between %g and %g", lo, hi))
	}
	return f, nil
}
