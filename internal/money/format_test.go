package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		minor  int64
		symbol bool
		want   string
	}{
		{1050, true, "R$ 10,50"},
		{5, false, "0,05"},
		{0, false, "0,00"},
		{9, true, "R$ 0,09"},
		{-150, false, "-1,50"},
		{-5, false, "-0,05"},
		{-150, true, "R$ -1,50"},
		{100, false, "1,00"},
		{123456, false, "1.234,56"},
		{100000000, false, "1.000.000,00"},
		{-98765432, false, "-987.654,32"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(FromMinor(tt.minor), tt.symbol))
		})
	}
}

func TestFormatterForOtherCurrency(t *testing.T) {
	f, err := NewFormatter("usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", f.Code())
	assert.Equal(t, "$ 1,234.56", f.Format(FromMinor(123456), true))

	_, err = NewFormatter("XXX-unknown")
	assert.Error(t, err)

	_, err = NewFormatter("JPY")
	assert.Error(t, err)
}

func TestFormatLargeAmount(t *testing.T) {
	a, err := ParseCanonical("123456789012345678901234")
	require.NoError(t, err)
	assert.Equal(t, "1.234.567.890.123.456.789.012,34", Format(a, false))
}
