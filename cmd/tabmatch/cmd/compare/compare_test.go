package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tabmatch/internal/cmd/application"
	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/reconcile"
	"github.com/agentstation/tabmatch/pkg/tabular"
)

type fixture struct {
	dir, ref, target string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:    dir,
		ref:    filepath.Join(dir, "clientes.csv"),
		target: filepath.Join(dir, "pedidos.csv"),
	}
	require.NoError(t, os.WriteFile(f.ref, []byte("NOME,CIDADE\nJosé da Silva,Recife\nMaria Souza,Olinda\n"), 0o644))
	require.NoError(t, os.WriteFile(f.target, []byte("CLIENTE\nJOSE DA SILVA\nMaria Souza Lima\nPedro Alves\n"), 0o644))
	return f
}

func execute(ctx context.Context, t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	app := &application.Mock{OutputFormatFunc: func() string { return "json" }}
	cmd := NewCommand(app)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestCompare_Export(t *testing.T) {
	f := newFixture(t)
	outPath := filepath.Join(f.dir, "resultado.csv")

	stdout, stderr, err := execute(context.Background(), t, "",
		f.ref, f.target,
		"--ref-cols", "NOME",
		"--target-cols", "CLI*",
		"--threshold", "80",
		"--out", outPath,
		"--yes",
	)
	require.NoError(t, err)

	var preview []reconcile.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &preview))
	assert.Len(t, preview, 3)
	assert.Contains(t, stderr, "Results saved to "+outPath)

	got, err := tabular.Load(outPath)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"CLIENTE NA PLANILHA pedidos",
		"ESTÁ NA PLANILHA clientes",
		"NOME SIMILARES NA PLANILHA clientes",
	}, got.Columns)
	assert.Equal(t, [][]string{
		{"JOSE DA SILVA", "Sim", ""},
		{"MARIA SOUZA LIMA", "Não", "MARIA SOUZA (81,5%)"},
		{"PEDRO ALVES", "Não", ""},
	}, got.Rows())
}

func TestCompare_Declined(t *testing.T) {
	f := newFixture(t)
	outPath := filepath.Join(f.dir, "resultado.xlsx")

	_, stderr, err := execute(context.Background(), t, "n\n",
		f.ref, f.target, "--ref-cols", "NOME", "--target-cols", "CLIENTE", "--out", outPath)
	require.NoError(t, err)

	assert.Contains(t, stderr, "Compare all 3 rows of pedidos? [y/N]")
	assert.Contains(t, stderr, "Comparison not started")
	assert.NoFileExists(t, outPath)
}

func TestCompare_Cancelled(t *testing.T) {
	f := newFixture(t)
	outPath := filepath.Join(f.dir, "resultado.xlsx")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, stderr, err := execute(ctx, t, "",
		f.ref, f.target, "--ref-cols", "NOME", "--target-cols", "CLIENTE", "--out", outPath, "--yes")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Operation cancelled")
	assert.NoFileExists(t, outPath)
}

func TestCompare_ValidationErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown column", args: []string{"--ref-cols", "TELEFONE", "--target-cols", "CLIENTE"}},
		{name: "threshold out of range", args: []string{"--ref-cols", "NOME", "--target-cols", "CLIENTE", "--threshold", "150"}},
		{name: "unknown mode", args: []string{"--ref-cols", "NOME", "--target-cols", "CLIENTE", "--mode", "phonetic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{f.ref, f.target, "--yes"}, tt.args...)
			_, _, err := execute(context.Background(), t, "", args...)
			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}

func TestCompare_UnreadableFile(t *testing.T) {
	f := newFixture(t)
	_, _, err := execute(context.Background(), t, "",
		filepath.Join(f.dir, "missing.xlsx"), f.target, "--ref-cols", "NOME", "--target-cols", "CLIENTE")
	assert.True(t, errors.IsReadError(err))
}
