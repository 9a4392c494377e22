package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
)

// DefaultCurrency is the currency used by Format.
const DefaultCurrency = gomoney.BRL

// Formatter renders amounts with a currency's grapheme and separators.
type Formatter struct {
	code     string
	grapheme string
	decimal  string
	thousand string
}

var defaultFormatter = mustFormatter(DefaultCurrency)

// NewFormatter builds a formatter for an ISO 4217 code known to go-money.
// Only two-decimal currencies are accepted because amounts are counted in cents.
func NewFormatter(code string) (*Formatter, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	cur := gomoney.GetCurrency(code)
	if cur == nil {
		return nil, fmt.Errorf("unknown currency '%s'", code)
	}
	if cur.Fraction != 2 {
		return nil, fmt.Errorf("currency '%s' uses %d decimals, only 2 are supported", code, cur.Fraction)
	}

	return &Formatter{
		code:     cur.Code,
		grapheme: cur.Grapheme,
		decimal:  cur.Decimal,
		thousand: cur.Thousand,
	}, nil
}

func mustFormatter(code string) *Formatter {
	f, err := NewFormatter(code)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the ISO code of the formatter's currency.
func (f *Formatter) Code() string { return f.code }

// Format renders a with thousands separators and exactly two decimals.
// The minus sign sits right before the digits, after the optional symbol.
func (f *Formatter) Format(a Amount, withSymbol bool) string {
	digits := a.Abs().String()
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}

	intPart, fracPart := digits[:len(digits)-2], digits[len(digits)-2:]

	var b strings.Builder
	if withSymbol {
		b.WriteString(f.grapheme)
		b.WriteString(" ")
	}
	if a.IsNegative() {
		b.WriteString("-")
	}
	b.WriteString(group(intPart, f.thousand))
	b.WriteString(f.decimal)
	b.WriteString(fracPart)

	return b.String()
}

// Format renders a in the default currency, e.g. Format(FromMinor(1050), true) is "R$ 10,50".
func Format(a Amount, withSymbol bool) string {
	return defaultFormatter.Format(a, withSymbol)
}

func group(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}

	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
