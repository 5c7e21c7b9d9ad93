package http

import (
	"context"
	"errors"
	"go-zel-rate-proxy"
	"go-zel-rate-proxy/exchange"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
)

type rates map[proxy.Currency]proxy.Rates

func (r rates) ExchangeRates(_ context.Context, currency proxy.Currency) (proxy.Rates, error) {
	found, ok := r[currency]
	if !ok {
		return nil, errors.New("bad rate")
	}
	return found, nil
}

func TestServer_ServeHTTP(t *testing.T) {
	allRates := rates{
		"ZEL": proxy.Rates{
			"USD": 350.0,
			"GBP": 10.0,
		},
	}

	service := exchange.NewService(allRates, "ZEL")
	server := NewServer(service, log.NewNopLogger())

	w := httptest.NewRecorder()
	msg := `{"amount":1.3, "code":"350", "to":"USD"}`
	r := httptest.NewRequest("POST", "/api/convert", strings.NewReader(msg))

	server.ServeHTTP(w, r)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, `{"exchange":350,"amount":1.3,"original":{"amount":1.3,"code":350}}`, strings.TrimSpace(w.Body.String()))

	w = httptest.NewRecorder()
	msg = `{"amount":"0.0123", "code":"ZEL", "to":"GBP"}`
	r = httptest.NewRequest("POST", "/api/convert", strings.NewReader(msg))

	server.ServeHTTP(w, r)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, `{"exchange":10,"amount":0.12,"original":{"amount":0.0123,"code":"ZEL"}}`, strings.TrimSpace(w.Body.String()))
}
