package tabmatch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/logging"
	"github.com/agentstation/tabmatch/pkg/reconcile"
	"github.com/agentstation/tabmatch/pkg/task"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	logging.DisableLoggingForTest(t)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestClient_Reconcile(t *testing.T) {
	dir := t.TempDir()
	tm, err := New(WithThreshold(90))
	require.NoError(t, err)

	ref, err := tm.Load(writeCSV(t, dir, "base.csv", "NOME,CPF\nJOAO DA SILVA,111\nMaria Souza,12345678900\n"))
	require.NoError(t, err)
	target, err := tm.Load(writeCSV(t, dir, "clientes.csv", "CLIENTE,CPF\nJOAO SILVA DA,\nPedro,123.456.789-00\nCarla,\n"))
	require.NoError(t, err)

	var mu sync.Mutex
	var progress []int
	var finished []task.Status
	tm.OnProgress(func(op string, pct int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, reconcile.Operation, op)
		progress = append(progress, pct)
	})
	tm.OnFinished(func(_ string, status task.Status) {
		finished = append(finished, status)
	})

	report, err := tm.Reconcile(context.Background(), ref, target,
		reconcile.WithReferenceColumns("NOME"),
		reconcile.WithTargetColumns("CLIENTE"),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"CLIENTE NA PLANILHA clientes",
		"ESTÁ NA PLANILHA base",
		"NOME SIMILARES NA PLANILHA base",
	}, report.Headers)
	assert.Equal(t, [][]string{
		{"JOAO SILVA DA", "Não", "JOAO DA SILVA (100,0%)"},
		{"PEDRO", "Sim", ""},
		{"CARLA", "Não", ""},
	}, report.Records())
	assert.Equal(t, reconcile.Summary{Total: 3, Found: 1, WithMatch: 1, Missing: 1}, report.Summary)
	assert.Equal(t, []int{33, 66, 100}, progress)
	assert.Equal(t, []task.Status{task.Completed}, finished)

	out := filepath.Join(dir, "resultado")
	require.NoError(t, tm.Export(out, report.Headers, report.Records()))
	_, err = os.Stat(out + ".xlsx")
	assert.NoError(t, err)
}

func TestClient_Duplicates(t *testing.T) {
	dir := t.TempDir()
	tm, err := New()
	require.NoError(t, err)

	ds, err := tm.Load(writeCSV(t, dir, "nomes.csv", "NOME\nMaria Souza\nMaria Sousa\nPedro\n"))
	require.NoError(t, err)

	pairs, err := tm.Duplicates(context.Background(), ds, "NOME")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "Maria Souza", pairs[0].A)

	_, err = tm.Duplicates(context.Background(), ds, "CPF")
	assert.True(t, errors.IsValidationError(err))
}

func TestClient_CancelledRunReturnsNoReport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	tm, err := New()
	require.NoError(t, err)
	ds, err := tm.Load(writeCSV(t, dir, "nomes.csv", "NOME\nAna\nBia\n"))
	require.NoError(t, err)

	report, err := tm.Reconcile(ctx, ds, ds, reconcile.WithReferenceColumns("NOME"), reconcile.WithTargetColumns("NOME"))
	assert.Nil(t, report)
	assert.True(t, errors.IsCanceled(err))
}

func TestNew_InvalidOptions(t *testing.T) {
	for _, opt := range []Option{
		WithThreshold(-1),
		WithDuplicatesThreshold(40),
		WithPreviewRows(0),
	} {
		_, err := New(opt)
		assert.True(t, errors.IsValidationError(err))
	}
}
