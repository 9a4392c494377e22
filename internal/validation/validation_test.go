package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		input   string
		wantErr bool
	}{
		{"name ok", AccountName, "Checking", false},
		{"name blank", AccountName, "   ", true},
		{"name too long", AccountName, strings.Repeat("x", 101), true},
		{"type asset", AccountType, "asset", false},
		{"type passivo", AccountType, "Passivo", false},
		{"type equity", AccountType, "equity", true},
		{"amount", Amount, "10,5", false},
		{"amount integer", Amount, "10", false},
		{"amount zero", Amount, "0,00", true},
		{"amount dot", Amount, "10.50", true},
		{"amount three decimals", Amount, "10,505", true},
		{"amount negative", Amount, "-1", true},
		{"initial empty", InitialBalance, "", false},
		{"initial zero", InitialBalance, "0", false},
		{"initial bad", InitialBalance, "abc", true},
		{"date empty", Date, "", false},
		{"date ok", Date, "2024-02-29", false},
		{"date impossible", Date, "2023-02-29", true},
		{"date other layout", Date, "29/02/2024", true},
		{"month ok", Month, "2024-02", false},
		{"month bad", Month, "2024-13", true},
		{"kind income", ExternalKind, "income", false},
		{"kind despesa", ExternalKind, "despesa", false},
		{"kind other", ExternalKind, "refund", true},
		{"required", Required("description"), "lunch", false},
		{"required blank", Required("description"), " ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMessagesHaveNoFieldPrefix(t *testing.T) {
	err := AccountType("equity")
	assert.NotContains(t, err.Error(), "type:")

	err = Required("description")("")
	assert.Equal(t, "description is required", err.Error())
}
