package coinbase

import (
	"context"
	"go-zel-rate-proxy"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ExchangeRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.True(t, strings.HasSuffix(req.URL.String(), "/exchange-rates?currency=ZEL"))
		response := `{
			"data": {
				"currency": "ZEL",
				"rates": {
					"USD": "350.0",
					"GBP": "1.2",
					"XYZ": "0"
				}
			}
		}`
		_, _ = rw.Write([]byte(response))
	}))
	defer server.Close()

	s := NewService(server.URL, time.Second)

	rates, err := s.ExchangeRates(context.Background(), "ZEL")

	require.NoError(t, err)
	assert.Equal(t, proxy.Rate(350.0), rates["USD"])
	assert.Equal(t, proxy.Rate(1.2), rates["GBP"])
	_, ok := rates["XYZ"]
	assert.False(t, ok, "non-positive rates are dropped")
}

func TestService_ExchangeRatesBadRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		_, _ = rw.Write([]byte(`{"data":{"currency":"ZEL","rates":{"USD":"lots"}}}`))
	}))
	defer server.Close()

	s := &service{url: server.URL}

	_, err := s.ExchangeRates(context.Background(), "ZEL")
	assert.Error(t, err)
}

func TestService_ExchangeRatesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
		_, _ = rw.Write([]byte(`{"errors":[{"id":"not_found"}]}`))
	}))
	defer server.Close()

	s := &service{url: server.URL}

	_, err := s.ExchangeRates(context.Background(), "ZEL")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestService_ExchangeRatesTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		time.Sleep(50 * time.Millisecond)
		_, _ = rw.Write([]byte("{}"))
	}))
	defer server.Close()

	s := NewService(server.URL, 1*time.Millisecond)

	_, err := s.ExchangeRates(context.Background(), "ZEL")

	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "Client.Timeout")) // fragile :-(
}
