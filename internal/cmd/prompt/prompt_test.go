package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  Result
	}{
		{"y\n", Confirmed},
		{"YES\n", Confirmed},
		{"sim\n", Confirmed},
		{"n\n", Declined},
		{"\n", Declined},
		{"", Declined},
		{"y", Confirmed},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			got := Confirm(strings.NewReader(tt.input), &out, "Run the full comparison?")
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasPrefix(out.String(), "Run the full comparison? [y/N] "))
		})
	}
}

func TestConfirmContext(t *testing.T) {
	t.Run("answer", func(t *testing.T) {
		var out bytes.Buffer
		got := ConfirmContext(context.Background(), strings.NewReader("s\n"), &out, "Continue?")
		assert.Equal(t, Confirmed, got)
		assert.Equal(t, "Continue? [y/N] ", out.String())
	})

	t.Run("interrupted", func(t *testing.T) {
		r, w := io.Pipe()
		defer w.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		got := ConfirmContext(ctx, r, &out, "Continue?")
		assert.Equal(t, Declined, got)
		assert.Equal(t, "Continue? [y/N] \n", out.String())
	})
}
