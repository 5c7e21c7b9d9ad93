package coinbase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-zel-rate-proxy"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const ApiUrlBase = "https://api.coinbase.com/v2"

// ErrUnexpectedStatus is returned when the rates endpoint answers with a non-2xx status
var ErrUnexpectedStatus = errors.New("unexpected http status")

// Service wraps the coinbase REST API
type Service interface {
	ExchangeRates(ctx context.Context, currency proxy.Currency) (proxy.Rates, error)
}

// service coinbase API
type service struct {
	// url base API url
	url string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a valid coinbase Service against url, e.g. ApiUrlBase.
func NewService(url string, timeout time.Duration) Service {
	return &service{
		url: url,
		client: http.Client{
			Timeout: timeout,
		},
	}
}

// ExchangeRates loads the current exchange rates for a given currency, keyed by target currency.
// Rates that are not positive are left out.
func (s *service) ExchangeRates(ctx context.Context, currency proxy.Currency) (proxy.Rates, error) {
	type Response struct {
		Data struct {
			Currency string
			Rates    map[string]string // maps currency codes to rates
		}
	}

	url := fmt.Sprintf("%v/exchange-rates?currency=%v", s.url, currency)

	request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedStatus, httpResponse.Status)
	}

	var response Response
	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("reading json: %w", err)
	}

	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	rates := proxy.Rates{}
	for k, v := range response.Data.Rates {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("bad rate value [%v]: %w", k, err)
		}
		if !d.IsPositive() {
			continue
		}
		rates[proxy.Currency(k)] = proxy.Rate(d.InexactFloat64())
	}

	return rates, nil
}
