package duplicates

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tabmatch/pkg/dataset"
	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/similarity"
	"github.com/agentstation/tabmatch/pkg/task"
)

func detect(t *testing.T, values []string, threshold float64) []Pair {
	t.Helper()
	d, err := New(values, WithThreshold(threshold))
	require.NoError(t, err)
	out := d.Run(context.Background(), task.NewHandle(nil))
	require.Equal(t, task.Completed, out.Status)
	return out.Value
}

func TestDetect(t *testing.T) {
	pairs := detect(t, []string{"Maria Souza", "Maria Sousa", "Pedro", "Maria Souza", "  "}, 85)

	require.Len(t, pairs, 2)
	assert.Equal(t, Pair{A: "Maria Souza", B: "Maria Sousa", Score: 90.9}, pairs[0])
	assert.Equal(t, Pair{A: "Maria Sousa", B: "Maria Souza", Score: 90.9}, pairs[1])
	for _, p := range pairs {
		assert.NotEqual(t, p.A, p.B)
	}
}

func TestDetect_IntegerScoreOnThreshold(t *testing.T) {
	a := strings.Repeat("A", 50)
	b := strings.Repeat("A", 29) + strings.Repeat("B", 21)

	pairs := detect(t, []string{a, b}, 58)
	require.Len(t, pairs, 1)
	assert.Equal(t, Pair{A: a, B: b, Score: 58}, pairs[0])

	assert.Empty(t, detect(t, []string{a, b}, 58.1))
}

func TestDetect_OrderSensitive(t *testing.T) {
	assert.Empty(t, detect(t, []string{"JOAO DA SILVA", "JOAO SILVA DA"}, 90))
	assert.Less(t, similarity.Ratio("JOAO DA SILVA", "JOAO SILVA DA"), 90.0)
}

func TestDetect_CaseAndAccentSensitive(t *testing.T) {
	pairs := detect(t, []string{"JOSÉ", "JOSE", "jose"}, 50)

	require.Len(t, pairs, 1)
	assert.Equal(t, Pair{A: "JOSÉ", B: "JOSE", Score: 75}, pairs[0])
}

func TestDetect_Symmetric(t *testing.T) {
	values := []string{"Ana Paula", "Ana Paola", "Anna Paula", "Paula Ana"}
	for i := range values {
		for j := range values {
			assert.Equal(t, similarity.Ratio(values[i], values[j]), similarity.Ratio(values[j], values[i]))
		}
	}

	forward := detect(t, values, 50)
	reversed := make([]string, len(values))
	for i, v := range values {
		reversed[len(values)-1-i] = v
	}
	backward := detect(t, reversed, 50)
	assert.Len(t, backward, len(forward))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		opts   []Option
	}{
		{name: "single value", values: []string{"Ana", " ", ""}},
		{name: "threshold too low", values: []string{"Ana", "Bia"}, opts: []Option{WithThreshold(49.9)}},
		{name: "threshold too high", values: []string{"Ana", "Bia"}, opts: []Option{WithThreshold(100.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.values, tt.opts...)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestFromDataset(t *testing.T) {
	ds := dataset.New("nomes", []string{"NOME"}, [][]string{{" Ana "}, {""}, {"Ana"}, {"Bia"}})

	d, err := FromDataset(ds, "NOME")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 3, d.TotalPairs())

	_, err = FromDataset(ds, "CPF")
	assert.True(t, errors.IsValidationError(err))
}

func TestDetector_Progress(t *testing.T) {
	values := make([]string, 30)
	for i := range values {
		values[i] = string(rune('A'+i%26)) + "x"
	}
	d, err := New(values, WithThreshold(50))
	require.NoError(t, err)

	var last int
	calls := 0
	out := d.Run(context.Background(), task.NewHandle(func(p int) {
		assert.GreaterOrEqual(t, p, last)
		last = p
		calls++
	}))

	require.Equal(t, task.Completed, out.Status)
	assert.Equal(t, 100, last)
	assert.LessOrEqual(t, calls, 101)
}

func TestDetector_CancelDiscardsPairs(t *testing.T) {
	values := make([]string, 200)
	for i := range values {
		values[i] = "Maria Souza"
		if i%2 == 1 {
			values[i] = "Maria Sousa"
		}
	}
	d, err := New(values, WithThreshold(50))
	require.NoError(t, err)

	var h *task.Handle
	h = task.NewHandle(func(p int) {
		if p >= 5 {
			h.Cancel()
		}
	})

	out := d.Run(context.Background(), h)
	assert.Equal(t, task.Cancelled, out.Status)
	assert.Nil(t, out.Value)
	assert.True(t, errors.IsCanceled(out.Err))
}

func TestSort(t *testing.T) {
	pairs := []Pair{
		{A: "bruno", B: "Bruna", Score: 90},
		{A: "Ana", B: "Anna", Score: 95},
		{A: "ana", B: "Ane", Score: 90},
		{A: "Carla", B: "Carlos", Score: 80},
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{BySimilarityDesc, []string{"Ana", "ana", "bruno", "Carla"}},
		{BySimilarityAsc, []string{"Carla", "ana", "bruno", "Ana"}},
		{ByFirstAsc, []string{"ana", "Ana", "bruno", "Carla"}},
		{ByFirstDesc, []string{"Carla", "bruno", "Ana", "ana"}},
		{BySecondAsc, []string{"ana", "Ana", "bruno", "Carla"}},
		{BySecondDesc, []string{"Carla", "bruno", "Ana", "ana"}},
	}

	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			sorted := Sort(pairs, tt.order)
			got := make([]string, len(sorted))
			for i, p := range sorted {
				got[i] = p.A
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "bruno", pairs[0].A, "Sort must not reorder its input")
}

func TestParseSortOrder(t *testing.T) {
	for _, o := range SortOrders() {
		got, err := ParseSortOrder(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}

	got, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, BySimilarityDesc, got)

	_, err = ParseSortOrder("random")
	assert.True(t, errors.IsValidationError(err))
}

func TestRecordsAndMessage(t *testing.T) {
	pairs := []Pair{{A: "Ana", B: "Anna", Score: 85.7}}

	assert.Equal(t, []string{"Nome 1", "Nome 2", "Similaridade (%)"}, Headers())
	assert.Equal(t, [][]string{{"Ana", "Anna", "85.7"}}, Records(pairs))
	assert.Equal(t, "Found 1 pair(s) of similar values.", Message(pairs))
	assert.Equal(t, "No similar pairs found at the configured threshold.", Message(nil))
}
