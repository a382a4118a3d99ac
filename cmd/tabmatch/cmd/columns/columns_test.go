package columns

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tabmatch/internal/cmd/application"
	"github.com/agentstation/tabmatch/pkg/dataset"
)

func TestColumnsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clientes.csv")
	require.NoError(t, os.WriteFile(path, []byte("NOME,C.P.F.,CIDADE\n,111,\nAna,222,Recife\n"), 0o644))

	app := &application.Mock{OutputFormatFunc: func() string { return "json" }}
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	var got []Column
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []Column{
		{Index: 1, Name: "NOME", Sample: "Ana"},
		{Index: 2, Name: "C.P.F.", Identifier: true, Sample: "111"},
		{Index: 3, Name: "CIDADE", Sample: "Recife"},
	}, got)
}

func TestSamples(t *testing.T) {
	d := dataset.New("x", []string{"A", "B"}, [][]string{{" ", "1"}, {"x", "2"}})
	assert.Equal(t, map[string]string{"A": "x", "B": "1"}, Samples(d))
}
