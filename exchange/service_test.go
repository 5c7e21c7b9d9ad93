package exchange

import (
	"bytes"
	"context"
	"errors"
	"go-zel-rate-proxy"
	"go-zel-rate-proxy/unit"
	"reflect"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mock struct {
	exchangeRates map[proxy.Currency]proxy.Rates
}

func (m *mock) ExchangeRates(_ context.Context, currency proxy.Currency) (proxy.Rates, error) {
	rates, ok := m.exchangeRates[currency]
	if !ok {
		return nil, errors.New("bad currency")
	}
	return rates, nil
}

func newTestService() *service {
	zelRates := proxy.Rates{
		"USD": 350.0,
		"GBP": 10.0,
	}

	return &service{
		coinbaseService: &mock{
			exchangeRates: map[proxy.Currency]proxy.Rates{"ZEL": zelRates},
		},
		base: "ZEL",
	}
}

func mustUnit(t *testing.T, amount float64, code unit.Code) unit.Unit {
	u, err := unit.New(amount, code)
	require.NoError(t, err)
	return u
}

func TestService_Convert(t *testing.T) {
	service := newTestService()

	type args struct {
		u  unit.Unit
		to proxy.Currency
	}
	tests := []struct {
		name    string
		args    args
		want    proxy.Exchanged
		wantErr bool
	}{
		{
			"zel -> usd",
			args{mustUnit(t, 1.3, unit.FiatRate(350)), "USD"},
			proxy.Exchanged{Rate: 350.0, Amount: 1.3},
			false,
		},
		{
			"zel -> gbp",
			args{mustUnit(t, 0.0123, unit.ZEL), "GBP"},
			proxy.Exchanged{Rate: 10.0, Amount: 0.12},
			false,
		},
		{
			"zel -> mZEL",
			args{mustUnit(t, 1.3, unit.ZEL), "mZEL"},
			proxy.Exchanged{Rate: 1000.0, Amount: 1300.0},
			false,
		},
		{
			"bits -> satoshis",
			args{mustUnit(t, 1.3, unit.Bits), "satoshis"},
			proxy.Exchanged{Rate: 100000000.0, Amount: 130.0},
			false,
		},
		{
			"zel -> xyz",
			args{mustUnit(t, 10.0, unit.ZEL), "XYZ"},
			proxy.Exchanged{},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.Convert(context.Background(), tt.args.u, tt.args.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("Convert() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Convert() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestService_ConvertUnknownCurrency(t *testing.T) {
	service := newTestService()

	_, err := service.Convert(context.Background(), mustUnit(t, 1, unit.ZEL), "XYZ")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestService_ConvertRatesUnavailable(t *testing.T) {
	service := newTestService()
	service.base = "FLUX"

	_, err := service.Convert(context.Background(), mustUnit(t, 1, unit.ZEL), "USD")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownCurrency)
}

func TestService_FromFiat(t *testing.T) {
	service := newTestService()

	u, err := service.FromFiat(context.Background(), 43, "USD")
	require.NoError(t, err)
	assert.Equal(t, 0.12285714, u.ZEL())
	assert.Equal(t, unit.FiatRate(350), u.Code())

	_, err = service.FromFiat(context.Background(), 43, "XYZ")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestLoggingService(t *testing.T) {
	var buf bytes.Buffer
	s := NewLoggingService(log.NewLogfmtLogger(&buf), newTestService())

	got, err := s.Convert(context.Background(), mustUnit(t, 1.3, unit.ZEL), "mZEL")
	require.NoError(t, err)
	assert.Equal(t, proxy.Amount(1300), got.Amount)
	assert.Contains(t, buf.String(), "method=convert")
	assert.Contains(t, buf.String(), "satoshis=130000000")

	buf.Reset()
	_, err = s.FromFiat(context.Background(), 43, "XYZ")
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "method=from_fiat")
	assert.Contains(t, buf.String(), "err=")
}
