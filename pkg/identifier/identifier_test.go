package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/tabmatch/pkg/dataset"
)

func TestDetectColumn(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   string
		found  bool
	}{
		{name: "exact", header: []string{"NOME", "CPF"}, want: "CPF", found: true},
		{name: "punctuated lowercase", header: []string{"c.p.f", "NOME"}, want: "c.p.f", found: true},
		{name: "spaced", header: []string{"NOME", " C P F "}, want: "C P F", found: true},
		{name: "first wins", header: []string{"cpf", "CPF"}, want: "cpf", found: true},
		{name: "longer header", header: []string{"CPF DO CLIENTE"}},
		{name: "absent", header: []string{"NOME", "CNPJ"}},
		{name: "ordinal indicator dropped", header: []string{"NOME", "CPFº"}, want: "CPFº", found: true},
		{name: "non-ascii letter dropped", header: []string{"CPFπ"}, want: "CPFπ", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := DetectColumn(dataset.New("", tt.header, nil))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, col)
		})
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "12345678900", Digits("123.456.789-00"))
	assert.Equal(t, "", Digits("sem número"))
	assert.Equal(t, "", Digits(""))
}

func TestBuildSet(t *testing.T) {
	ds := dataset.New("ref", []string{"CPF"}, [][]string{{"123.456.789-00"}, {""}, {"n/a"}, {"12345678900"}, {"987"}})

	set := BuildSet(ds, "CPF")
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("123 456 789 00"))
	assert.True(t, set.Contains("987"))
	assert.False(t, set.Contains("n/a"))
	assert.False(t, set.Contains("111"))
}

func TestMatcher(t *testing.T) {
	ref := dataset.New("ref", []string{"NOME", "CPF"}, [][]string{{"Ana", "12345678900"}})
	withID := dataset.New("alvo", []string{"Nome", "cpf"}, [][]string{{"Outra", "123.456.789-00"}, {"Ana", ""}})
	withoutID := dataset.New("alvo", []string{"NOME"}, [][]string{{"Ana"}})

	m := NewMatcher(ref, withID)
	assert.True(t, m.Active())
	assert.Equal(t, 1, m.Size())
	assert.True(t, m.Match(withID.Records[0]))
	assert.False(t, m.Match(withID.Records[1]))

	inactive := NewMatcher(ref, withoutID)
	assert.False(t, inactive.Active())
	assert.False(t, inactive.Match(dataset.Record{"CPF": "12345678900"}))

	var nilMatcher *Matcher
	assert.False(t, nilMatcher.Match(dataset.Record{}))
}
