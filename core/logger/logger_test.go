package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		in   []any
		want []any
	}{
		{"empty", nil, nil},
		{"pairs", []any{"k", 1}, []any{"k", 1}},
		{"single error", []any{boom}, []any{"error", boom}},
		{"dangling", []any{"k", 1, boom}, []any{"k", 1, "error", boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize(tt.in))
		})
	}
}
