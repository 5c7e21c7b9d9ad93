// Package unit holds Unit, an immutable amount of ZEL that converts between
// denominations and to or from fiat amounts at a given exchange rate.
//
// A Unit keeps the amount and code it was built from, and a canonical count of
// satoshis (10^-8 ZEL) from which every other denomination is derived.
package unit

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is anything an amount can be read from
type Value interface {
	int | int64 | float64 | string | decimal.Decimal
}

var maxSatoshis = decimal.NewFromInt(math.MaxInt64)

const (
	// maxIntegerDigits is the number of digits in math.MaxInt64
	maxIntegerDigits = 19

	// maxFractionDigits bounds the precision an amount may carry
	maxFractionDigits = 18
)

// Unit an amount of ZEL. The zero Unit is 0 satoshis.
type Unit struct {
	// amount as given at construction, counted in code
	amount decimal.Decimal

	// code the amount was given in
	code Code

	// satoshis canonical value, always a whole number
	satoshis int64

	// literal the amount's JSON number text when parsed from JSON, written back verbatim
	literal string
}

// New builds a Unit from an amount counted in code.
// The amount is converted to satoshis in decimal arithmetic and rounded to the
// nearest satoshi, halves away from zero.
func New[V Value](amount V, code Code) (Unit, error) {
	d, err := toDecimal(amount)
	if err != nil {
		return Unit{}, err
	}
	return newUnit(d, code)
}

// FromZEL builds a Unit from an amount of ZEL
func FromZEL[V Value](amount V) (Unit, error) {
	return New(amount, ZEL)
}

// FromMilis builds a Unit from an amount of mZEL
func FromMilis[V Value](amount V) (Unit, error) {
	return New(amount, MZEL)
}

// FromMillis is FromMilis
func FromMillis[V Value](amount V) (Unit, error) {
	return New(amount, MZEL)
}

// FromBits builds a Unit from an amount of bits
func FromBits[V Value](amount V) (Unit, error) {
	return New(amount, Bits)
}

// FromSatoshis builds a Unit from an amount of satoshis
func FromSatoshis[V Value](amount V) (Unit, error) {
	return New(amount, Satoshis)
}

// FromFiat builds a Unit from a fiat amount, where rate is fiat units per ZEL
func FromFiat[V Value](amount V, rate FiatRate) (Unit, error) {
	return New(amount, rate)
}

func newUnit(amount decimal.Decimal, code Code) (Unit, error) {
	if code == nil {
		return Unit{}, fmt.Errorf("%w: missing code", ErrUnknownCode)
	}
	amount, err := checkMagnitude(amount)
	if err != nil {
		return Unit{}, err
	}
	sats, err := code.toSatoshis(amount)
	if err != nil {
		return Unit{}, err
	}
	sats = sats.Round(0)
	if sats.Abs().GreaterThan(maxSatoshis) {
		return Unit{}, fmt.Errorf("%w: amount in %v overflows satoshis", ErrInvalidAmount, code)
	}
	return Unit{
		amount:   amount,
		code:     code,
		satoshis: sats.IntPart(),
	}, nil
}

// checkMagnitude rejects amounts whose exponent makes them too large to hold
// in satoshis or too precise to keep, before any arithmetic expands them.
// A zero written with an out of range exponent, like 0e100, becomes plain 0.
func checkMagnitude(amount decimal.Decimal) (decimal.Decimal, error) {
	exp := amount.Exponent()
	if amount.IsZero() {
		if exp < -maxFractionDigits || exp > maxIntegerDigits {
			return decimal.Zero, nil
		}
		return amount, nil
	}
	if exp < -maxFractionDigits {
		return decimal.Decimal{}, fmt.Errorf("%w: exponent %d exceeds %d fractional digits", ErrInvalidAmount, exp, maxFractionDigits)
	}
	if exp > maxIntegerDigits || int64(exp)+int64(amount.NumDigits()) > maxIntegerDigits {
		return decimal.Decimal{}, fmt.Errorf("%w: exponent %d exceeds %d integer digits", ErrInvalidAmount, exp, maxIntegerDigits)
	}
	return amount, nil
}

func toDecimal(amount interface{}) (decimal.Decimal, error) {
	switch v := amount.(type) {
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, v)
		}
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, v, err)
		}
		return d, nil
	case decimal.Decimal:
		return v, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported type %T", ErrInvalidAmount, amount)
	}
}

// Amount the amount as given at construction
func (u Unit) Amount() decimal.Decimal {
	return u.amount
}

// Code the code the amount was given in
func (u Unit) Code() Code {
	if u.code == nil {
		return Satoshis
	}
	return u.code
}

func (u Unit) in(d Denomination) float64 {
	return decimal.New(u.satoshis, -exponents[d]).InexactFloat64()
}

func (u Unit) coins() decimal.Decimal {
	return decimal.New(u.satoshis, -coinExponent)
}

// ZEL the value in ZEL
func (u Unit) ZEL() float64 {
	return u.in(ZEL)
}

// MZEL the value in mZEL
func (u Unit) MZEL() float64 {
	return u.in(MZEL)
}

// UZEL the value in uZEL, which is the same as bits
func (u Unit) UZEL() float64 {
	return u.in(Bits)
}

// Bits the value in bits
func (u Unit) Bits() float64 {
	return u.in(Bits)
}

// Satoshis the canonical value
func (u Unit) Satoshis() int64 {
	return u.satoshis
}

// To converts to a denomination, or to a fiat amount when code is a FiatRate.
// Fiat amounts are rounded to two decimal places.
func (u Unit) To(code Code) (float64, error) {
	switch c := code.(type) {
	case Denomination:
		if err := c.validate(); err != nil {
			return 0, err
		}
		return u.in(c), nil
	case FiatRate:
		if err := c.validate(); err != nil {
			return 0, err
		}
		return u.coins().Mul(c.dec()).Round(fiatPrecision).InexactFloat64(), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownCode, code)
	}
}

// AtRate the fiat value at rate fiat units per ZEL
func (u Unit) AtRate(rate FiatRate) (float64, error) {
	return u.To(rate)
}

// ToZEL is ZEL
func (u Unit) ToZEL() float64 {
	return u.ZEL()
}

// ToMilis is MZEL
func (u Unit) ToMilis() float64 {
	return u.MZEL()
}

// ToMillis is MZEL
func (u Unit) ToMillis() float64 {
	return u.MZEL()
}

// ToBits is Bits
func (u Unit) ToBits() float64 {
	return u.Bits()
}

// ToSatoshis is Satoshis
func (u Unit) ToSatoshis() int64 {
	return u.Satoshis()
}

// Equal reports whether both units hold the same number of satoshis
func (u Unit) Equal(other Unit) bool {
	return u.satoshis == other.satoshis
}

// String the amount and code as given at construction, e.g. "1.3 ZEL" or "43 @350"
func (u Unit) String() string {
	if rate, ok := u.Code().(FiatRate); ok {
		return fmt.Sprintf("%v @%v", u.amount, rate)
	}
	return fmt.Sprintf("%v %v", u.amount, u.Code())
}

// Inspect a debug form in satoshis, e.g. "<Unit: 130000000 satoshis>"
func (u Unit) Inspect() string {
	return fmt.Sprintf("<Unit: %d satoshis>", u.satoshis)
}

// GoString makes %#v print Inspect
func (u Unit) GoString() string {
	return u.Inspect()
}
