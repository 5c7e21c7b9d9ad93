package unit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Code says what a Unit amount is counted in. It is either a Denomination
// of ZEL or a FiatRate.
type Code interface {
	fmt.Stringer

	// toSatoshis converts an amount counted in this code to satoshis, unrounded.
	toSatoshis(amount decimal.Decimal) (decimal.Decimal, error)
}

// Denomination a named fraction of one ZEL
type Denomination string

// Recognized denominations.
const (
	ZEL      Denomination = "ZEL"
	MZEL     Denomination = "mZEL"
	Bits     Denomination = "bits"
	Satoshis Denomination = "satoshis"
)

// coinExponent one ZEL is 10^8 satoshis
const coinExponent = 8

// fiatPrecision decimal places kept when converting to fiat
const fiatPrecision = 2

// exponents maps a denomination to the power of ten of satoshis in one unit of it.
var exponents = map[Denomination]int32{
	ZEL:      coinExponent,
	MZEL:     5,
	Bits:     2,
	Satoshis: 0,
}

// ParseDenomination checks that s names a known denomination.
func ParseDenomination(s string) (Denomination, error) {
	d := Denomination(s)
	if err := d.validate(); err != nil {
		return "", err
	}
	return d, nil
}

func (d Denomination) String() string {
	return string(d)
}

// PerCoin how many units of d make one ZEL
func (d Denomination) PerCoin() float64 {
	return decimal.New(1, coinExponent-exponents[d]).InexactFloat64()
}

func (d Denomination) validate() error {
	if _, ok := exponents[d]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCode, string(d))
	}
	return nil
}

func (d Denomination) toSatoshis(amount decimal.Decimal) (decimal.Decimal, error) {
	if err := d.validate(); err != nil {
		return decimal.Zero, err
	}
	return amount.Shift(exponents[d]), nil
}

// FiatRate an exchange rate in fiat units per one ZEL. Only rates greater than zero are usable.
type FiatRate float64

func (r FiatRate) String() string {
	return strconv.FormatFloat(float64(r), 'f', -1, 64)
}

func (r FiatRate) validate() error {
	f := float64(r)
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, f)
	}
	return nil
}

func (r FiatRate) dec() decimal.Decimal {
	return decimal.NewFromFloat(float64(r))
}

func (r FiatRate) toSatoshis(amount decimal.Decimal) (decimal.Decimal, error) {
	if err := r.validate(); err != nil {
		return decimal.Zero, err
	}
	return amount.Div(r.dec()).Shift(coinExponent), nil
}

// ParseCode reads a denomination name or a numeric fiat rate.
func ParseCode(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if d, err := ParseDenomination(s); err == nil {
		return d, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCode, s)
	}
	rate := FiatRate(f)
	if err := rate.validate(); err != nil {
		return nil, err
	}
	return rate, nil
}
