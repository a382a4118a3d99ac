package config

import (
	"github.com/spf13/viper"

	"github.com/agentstation/tabmatch/pkg/constants"
	"github.com/agentstation/tabmatch/pkg/normalize"
)

// Settings are the matching defaults commands start from before applying
// their own flags.
type Settings struct {
	Threshold           float64
	DuplicatesThreshold float64
	Mode                normalize.Mode
	PreviewRows         int
	ReferenceName       string
	TargetName          string
	AssumeYes           bool
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		Threshold:           constants.DefaultThreshold,
		DuplicatesThreshold: constants.DefaultDuplicatesThreshold,
		Mode:                normalize.Standard,
		PreviewRows:         constants.DefaultPreviewRows,
	}
}

// Load reads and validates the settings from viper.
func Load() (*Settings, error) {
	s := Defaults()
	var err error
	if s.Threshold, err = Threshold(); err != nil {
		return nil, err
	}
	if s.DuplicatesThreshold, err = DuplicatesThreshold(); err != nil {
		return nil, err
	}
	if s.Mode, err = Mode(); err != nil {
		return nil, err
	}
	if s.PreviewRows, err = PreviewRows(); err != nil {
		return nil, err
	}
	s.ReferenceName = GetString(KeyReferenceName)
	s.TargetName = GetString(KeyTargetName)
	s.AssumeYes = viper.GetBool(KeyYes)
	return s, nil
}
