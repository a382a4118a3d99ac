package normalize

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tabmatch/internal/cmd/application"
	"github.com/agentstation/tabmatch/pkg/errors"
)

func TestNormalizeCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []Form
	}{
		{
			name: "configured mode",
			args: []string{"José da Silva Jr."},
			want: []Form{{Input: "José da Silva Jr.", Normalized: "JOSE DA SILVA JR"}},
		},
		{
			name: "mode flag",
			args: []string{"--mode", "remove-stopwords", "Padaria s/a", "Mercado EIRELI"},
			want: []Form{
				{Input: "Padaria s/a", Normalized: "PADARIA"},
				{Input: "Mercado EIRELI", Normalized: "MERCADO"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &application.Mock{OutputFormatFunc: func() string { return "json" }}
			cmd := NewCommand(app)
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())

			var got []Form
			require.NoError(t, json.Unmarshal(out.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCommand_InvalidMode(t *testing.T) {
	cmd := NewCommand(&application.Mock{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--mode", "soundex", "x"})
	assert.True(t, errors.IsValidationError(cmd.Execute()))
}
