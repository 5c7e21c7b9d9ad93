package coinbase

import (
	"context"
	"go-zel-rate-proxy"
	"time"

	"github.com/go-kit/log"
)

// loggingService decorates a coinbase.Service with logging.
// Besides the number of rates returned, it logs the rate of each watched quote currency.
type loggingService struct {
	next   Service
	logger log.Logger
	watch  []proxy.Currency
}

// NewLoggingService returns a Service that logs every lookup, including the rates of watch
func NewLoggingService(logger log.Logger, s Service, watch ...proxy.Currency) Service {
	return &loggingService{
		next:   s,
		logger: logger,
		watch:  watch,
	}
}

func (s *loggingService) ExchangeRates(ctx context.Context, base proxy.Currency) (rates proxy.Rates, err error) {
	defer func(begin time.Time) {
		keyvals := []interface{}{
			"method", "exchange_rates",
			"base", base,
			"rate_count", len(rates),
		}
		for _, quote := range s.watch {
			rate, ok := rates[quote]
			if !ok {
				keyvals = append(keyvals, string(quote), "missing")
				continue
			}
			keyvals = append(keyvals, string(quote), rate)
		}
		keyvals = append(keyvals, "took", time.Since(begin), "err", err)
		s.logger.Log(keyvals...)
	}(time.Now())
	return s.next.ExchangeRates(ctx, base)
}
