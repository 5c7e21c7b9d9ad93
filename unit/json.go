package unit

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Object the amount and code a Unit was built from
type Object struct {
	Amount decimal.Decimal
	Code   Code
}

// wireUnit the JSON shape of a Unit, {"amount": <number>, "code": <string or number>}
type wireUnit struct {
	Amount json.Number     `json:"amount"`
	Code   json.RawMessage `json:"code"`
}

// ToObject returns the construction amount and code
func (u Unit) ToObject() Object {
	return Object{
		Amount: u.amount,
		Code:   u.Code(),
	}
}

// FromObject builds a Unit from an Object
func FromObject(o Object) (Unit, error) {
	return newUnit(o.Amount, o.Code)
}

// FromJSON parses the JSON form of a Unit
func FromJSON(data []byte) (Unit, error) {
	var w wireUnit
	err := json.Unmarshal(data, &w)
	if err != nil {
		return Unit{}, fmt.Errorf("decoding unit json: %w", err)
	}

	if w.Amount == "" {
		return Unit{}, fmt.Errorf("%w: missing amount", ErrInvalidAmount)
	}
	amount, err := decimal.NewFromString(w.Amount.String())
	if err != nil {
		return Unit{}, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, w.Amount, err)
	}

	code, err := decodeCode(w.Code)
	if err != nil {
		return Unit{}, err
	}

	u, err := newUnit(amount, code)
	if err != nil {
		return Unit{}, err
	}
	u.literal = w.Amount.String()
	return u, nil
}

// decodeCode reads a JSON string as a Denomination and a JSON number as a FiatRate
func decodeCode(raw json.RawMessage) (Code, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: missing code", ErrUnknownCode)
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding unit code: %w", err)
		}
		return ParseDenomination(s)
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCode, raw)
	}
	rate := FiatRate(f)
	if err := rate.validate(); err != nil {
		return nil, err
	}
	return rate, nil
}

func encodeCode(code Code) (json.RawMessage, error) {
	switch c := code.(type) {
	case Denomination:
		return json.Marshal(string(c))
	case FiatRate:
		return json.Marshal(float64(c))
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCode, code)
	}
}

// MarshalJSON emits the amount and code the Unit was built from.
// An amount parsed from JSON keeps its original number text, e.g. 1e-7.
func (u Unit) MarshalJSON() ([]byte, error) {
	code, err := encodeCode(u.Code())
	if err != nil {
		return nil, err
	}
	amount := u.literal
	if amount == "" {
		amount = u.amount.String()
	}
	return json.Marshal(wireUnit{
		Amount: json.Number(amount),
		Code:   code,
	})
}

// UnmarshalJSON parses the form written by MarshalJSON. On error u is left untouched.
func (u *Unit) UnmarshalJSON(data []byte) error {
	parsed, err := FromJSON(data)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
