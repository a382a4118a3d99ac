package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/normalize"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestDefaults(t *testing.T) {
	resetViper(t)
	SetDefaults(viper.GetViper())

	threshold, err := Threshold()
	require.NoError(t, err)
	assert.Equal(t, 90.0, threshold)

	dup, err := DuplicatesThreshold()
	require.NoError(t, err)
	assert.Equal(t, 85.0, dup)

	rows, err := PreviewRows()
	require.NoError(t, err)
	assert.Equal(t, 20, rows)

	mode, err := Mode()
	require.NoError(t, err)
	assert.Equal(t, normalize.Standard, mode)
}

func TestThresholdRanges(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		get     func() (float64, error)
		want    float64
		wantErr bool
	}{
		{name: "threshold zero", key: KeyThreshold, value: 0, get: Threshold, want: 0},
		{name: "threshold comma decimal", key: KeyThreshold, value: "87,5", get: Threshold, want: 87.5},
		{name: "threshold above range", key: KeyThreshold, value: 101, get: Threshold, wantErr: true},
		{name: "threshold not a number", key: KeyThreshold, value: "high", get: Threshold, wantErr: true},
		{name: "duplicates lower bound", key: KeyDuplicatesThreshold, value: 50, get: DuplicatesThreshold, want: 50},
		{name: "duplicates below range", key: KeyDuplicatesThreshold, value: 49, get: DuplicatesThreshold, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			viper.Set(tt.key, tt.value)

			got, err := tt.get()
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreviewRows_Invalid(t *testing.T) {
	resetViper(t)
	viper.Set(KeyPreviewRows, 0)
	_, err := PreviewRows()
	assert.True(t, errors.IsValidationError(err))
}

func TestMode(t *testing.T) {
	resetViper(t)
	viper.Set(KeyMode, "remove-stopwords")
	mode, err := Mode()
	require.NoError(t, err)
	assert.Equal(t, normalize.RemoveStopwords, mode)

	viper.Set(KeyMode, "phonetic")
	_, err = Mode()
	assert.True(t, errors.IsValidationError(err))
}

func TestGetString_EnvFallback(t *testing.T) {
	resetViper(t)
	t.Setenv("TABMATCH_REFERENCE_NAME", "Clientes")
	assert.Equal(t, "Clientes", GetString(KeyReferenceName))

	viper.Set(KeyReferenceName, "Cadastro")
	assert.Equal(t, "Cadastro", GetString(KeyReferenceName))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "TABMATCH_PREVIEW_ROWS", EnvName("preview-rows"))
	assert.Equal(t, "TABMATCH_THRESHOLD", EnvName(KeyThreshold))
}

func TestLoad(t *testing.T) {
	resetViper(t)
	SetDefaults(viper.GetViper())
	viper.Set(KeyThreshold, 75)
	viper.Set(KeyMode, "ignore-punctuation")
	viper.Set(KeyTargetName, "Pedidos")
	viper.Set(KeyYes, true)

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Settings{
		Threshold:           75,
		DuplicatesThreshold: 85,
		Mode:                normalize.IgnorePunctuation,
		PreviewRows:         20,
		TargetName:          "Pedidos",
		AssumeYes:           true,
	}, s)
}

func TestLoad_Invalid(t *testing.T) {
	resetViper(t)
	SetDefaults(viper.GetViper())
	viper.Set(KeyPreviewRows, -3)

	_, err := Load()
	assert.True(t, errors.IsValidationError(err))
}
