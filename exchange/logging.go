package exchange

import (
	"context"
	"go-zel-rate-proxy"
	"go-zel-rate-proxy/unit"
	"time"

	"github.com/go-kit/log"
)

// loggingService decorates an exchange.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Convert(ctx context.Context, u unit.Unit, to proxy.Currency) (ex proxy.Exchanged, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "convert",
			"unit", u,
			"satoshis", u.Satoshis(),
			"to", to,
			"rate", ex.Rate,
			"converted_amount", ex.Amount,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Convert(ctx, u, to)
}

func (s *loggingService) FromFiat(ctx context.Context, amount proxy.Amount, from proxy.Currency) (u unit.Unit, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "from_fiat",
			"amount", amount,
			"from", from,
			"satoshis", u.Satoshis(),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FromFiat(ctx, amount, from)
}
