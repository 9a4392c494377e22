// Package money implements exact monetary amounts counted in minor currency units.
//
// An Amount never goes through floating point: it wraps an integer-valued
// decimal.Decimal (arbitrary precision) holding the number of cents.
package money

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"

	"github.com/hance08/bolso/internal/apperr"
	"github.com/shopspring/decimal"
)

var (
	looseInputPattern = regexp.MustCompile(`^(\d+)(?:,(\d{0,2}))?$`)
	canonicalPattern  = regexp.MustCompile(`^[+-]?\d+$`)
)

// Amount is an immutable count of minor units.
type Amount struct {
	v decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// FromMinor returns the amount of n minor units.
func FromMinor(n int64) Amount { return Amount{v: decimal.New(n, 0)} }

func (a Amount) Add(b Amount) Amount { return Amount{v: a.v.Add(b.v)} }
func (a Amount) Sub(b Amount) Amount { return Amount{v: a.v.Sub(b.v)} }
func (a Amount) Neg() Amount         { return Amount{v: a.v.Neg()} }
func (a Amount) Abs() Amount         { return Amount{v: a.v.Abs()} }
func (a Amount) Cmp(b Amount) int    { return a.v.Cmp(b.v) }
func (a Amount) Sign() int           { return a.v.Sign() }
func (a Amount) Equal(b Amount) bool { return a.v.Equal(b.v) }
func (a Amount) IsZero() bool        { return a.v.IsZero() }
func (a Amount) IsPositive() bool    { return a.v.IsPositive() }
func (a Amount) IsNegative() bool    { return a.v.IsNegative() }

// String returns the bare base-10 count of minor units, e.g. "1050".
func (a Amount) String() string { return a.v.String() }

// ParseInput parses user-typed amounts of the form digits[,digits{0,2}].
// A single fractional digit counts as tenths: "10,5" is 1050, not 1005.
func ParseInput(text string) (Amount, error) {
	input := strings.TrimSpace(text)

	m := looseInputPattern.FindStringSubmatch(input)
	if m == nil {
		return Zero, apperr.NewParseError(text, "expected digits optionally followed by ',' and up to 2 decimals")
	}

	frac := m[2]
	for len(frac) < 2 {
		frac += "0"
	}

	v, err := decimal.NewFromString(m[1] + frac)
	if err != nil {
		return Zero, apperr.NewParseError(text, err.Error())
	}

	return Amount{v: v}, nil
}

// FormatInput renders a in the loose input format without grouping, so that
// ParseInput reads non-negative values back: 1050 becomes "10,50".
func FormatInput(a Amount) string {
	digits := a.Abs().String()
	for len(digits) < 3 {
		digits = "0" + digits
	}

	sign := ""
	if a.IsNegative() {
		sign = "-"
	}
	return sign + digits[:len(digits)-2] + "," + digits[len(digits)-2:]
}

// ParseCanonical parses the persisted form: a bare integer count of minor units.
//
// Strings shorter than two characters are rejected, so "5" is not a valid
// canonical amount. FormatCanonical pads small values so that everything it
// writes parses back.
func ParseCanonical(text string) (Amount, error) {
	if len(text) < 2 {
		return Zero, apperr.NewParseError(text, "canonical amount needs at least 2 characters")
	}
	if !canonicalPattern.MatchString(text) {
		return Zero, apperr.NewParseError(text, "not an integer number of minor units")
	}

	v, err := decimal.NewFromString(text)
	if err != nil {
		return Zero, apperr.NewParseError(text, err.Error())
	}

	return Amount{v: v}, nil
}

// FormatCanonical renders the persisted form of a.
// Values in [0,10) are zero-padded to two digits ("05").
func FormatCanonical(a Amount) string {
	s := a.String()
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// Value implements driver.Valuer using the canonical form.
func (a Amount) Value() (driver.Value, error) {
	return FormatCanonical(a), nil
}

// Scan implements sql.Scanner from the canonical form.
func (a *Amount) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	case nil:
		return fmt.Errorf("money: cannot scan NULL into Amount")
	default:
		return fmt.Errorf("money: cannot scan %T into Amount", src)
	}

	parsed, err := ParseCanonical(text)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
