package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaldonado/obrix/cmd/tui/internal/view"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1234,50", 123450},
		{"1234.50", 123450},
		{"1.234,50", 123450},
		{"$ 1.234,50", 123450},
		{"500", 50000},
		{" 500 ", 50000},
		{"0,99", 99},
	}

	for _, tt := range tests {
		got, err := view.ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "12,34,56"} {
		_, err := view.ParseAmount(in)
		assert.Error(t, err, in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$ 1.234,50", view.FormatAmount(123450))
	assert.Equal(t, "$ 0,99", view.FormatAmount(99))
}

func TestFormatPages(t *testing.T) {
	assert.Equal(t, "1 [2] 3", view.FormatPages(3, 2))
	assert.Equal(t, "1 [2] 3 … 12", view.FormatPages(12, 2))
	assert.Equal(t, "1 … 5 [6] 7 … 12", view.FormatPages(12, 6))
	assert.Equal(t, "1 … 10 [11] 12", view.FormatPages(12, 11))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-03-08", view.FormatDate(time.Date(2024, 3, 8, 15, 4, 5, 0, time.UTC)))
}
