package exchange

import (
	"context"
	"errors"
	"fmt"
	"go-zel-rate-proxy"
	"go-zel-rate-proxy/coinbase"
	"go-zel-rate-proxy/unit"
)

// ErrUnknownCurrency is returned when there is no rate for the requested currency
var ErrUnknownCurrency = errors.New("unknown currency")

// Service interface for converting ZEL to and from other currencies
type Service interface {
	// Convert u into a ZEL denomination, or into a fiat currency at the current rate
	Convert(ctx context.Context, u unit.Unit, to proxy.Currency) (proxy.Exchanged, error)

	// FromFiat builds a Unit from an amount of a fiat currency at the current rate
	FromFiat(ctx context.Context, amount proxy.Amount, from proxy.Currency) (unit.Unit, error)
}

// service converts with rates quoted against base
type service struct {
	// coinbaseService to lookup exchange rates.
	coinbaseService coinbase.Service

	// base the currency code the rate source lists ZEL under
	base proxy.Currency
}

// NewService constructs a valid Service
func NewService(s coinbase.Service, base proxy.Currency) Service {
	return &service{
		coinbaseService: s,
		base:            base,
	}
}

// Convert computes a conversion from ZEL to a denomination or fiat currency.
// As a side-effect the cache of exchange rates might be updated.
func (s *service) Convert(ctx context.Context, u unit.Unit, to proxy.Currency) (proxy.Exchanged, error) {
	if d, err := unit.ParseDenomination(string(to)); err == nil {
		amount, err := u.To(d)
		if err != nil {
			return proxy.Exchanged{}, fmt.Errorf("convert to [%v]: %w", to, err)
		}
		return proxy.Exchanged{
			Rate:   proxy.Rate(d.PerCoin()),
			Amount: proxy.Amount(amount),
		}, nil
	}

	rate, err := s.rate(ctx, to)
	if err != nil {
		return proxy.Exchanged{}, err
	}

	amount, err := u.AtRate(unit.FiatRate(rate))
	if err != nil {
		return proxy.Exchanged{}, fmt.Errorf("convert to [%v]: %w", to, err)
	}

	return proxy.Exchanged{
		Rate:   rate,
		Amount: proxy.Amount(amount),
	}, nil
}

// FromFiat converts a fiat amount to ZEL at the current rate.
func (s *service) FromFiat(ctx context.Context, amount proxy.Amount, from proxy.Currency) (unit.Unit, error) {
	rate, err := s.rate(ctx, from)
	if err != nil {
		return unit.Unit{}, err
	}

	u, err := unit.FromFiat(float64(amount), unit.FiatRate(rate))
	if err != nil {
		return unit.Unit{}, fmt.Errorf("convert from [%v]: %w", from, err)
	}
	return u, nil
}

// rate looks up how many units of currency one ZEL is worth
func (s *service) rate(ctx context.Context, currency proxy.Currency) (proxy.Rate, error) {
	rates, err := s.coinbaseService.ExchangeRates(ctx, s.base)
	if err != nil {
		return 0, fmt.Errorf("rates for [%v]: %w", s.base, err)
	}

	rate, ok := rates[currency]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownCurrency, currency)
	}
	return rate, nil
}
