package coinbase

import (
	"context"
	"fmt"
	"go-zel-rate-proxy"
	"sync"
	"time"

	"github.com/go-kit/log"
)

// cachingService decorates a coinbase.Service with a cache of exchange rates.
// The cachingService is concurrency safe and will periodically refresh cached values.
type cachingService struct {
	// next the service being decorated with a cache
	next Service
	// cache the cache of rates
	cache map[proxy.Currency]proxy.Rates

	// updateFrequency how often to refresh cached values
	updateFrequency time.Duration

	// lock synchronizes access to cache to make it concurrency safe
	lock sync.RWMutex

	// ctx bounds the periodic refreshes; when done, refreshing stops and entries are dropped
	ctx context.Context

	logger log.Logger
}

// NewCachingService returns a new caching Service. Cached currencies are refreshed until ctx is done.
func NewCachingService(ctx context.Context, updateFrequency time.Duration, logger log.Logger, s Service) Service {
	return &cachingService{
		ctx:             ctx,
		next:            s,
		cache:           map[proxy.Currency]proxy.Rates{},
		updateFrequency: updateFrequency,
		lock:            sync.RWMutex{},
		logger:          logger,
	}
}

// ExchangeRates looks up exchange rates and caches the results
func (s *cachingService) ExchangeRates(ctx context.Context, currency proxy.Currency) (proxy.Rates, error) {
	s.lock.RLock()
	rates, ok := s.cache[currency]
	s.lock.RUnlock()

	if !ok {
		// Concurrent misses for the same currency each hit the underlying service; only the first
		// one to store its result starts the periodic refresh.
		rates, firstTime, err := s.refreshNow(ctx, currency)
		if err != nil {
			return nil, fmt.Errorf("refreshing cache [%v]: %w", currency, err)
		}
		if firstTime {
			s.logger.Log("msg", "scheduling periodic refresh", "currency", currency)
			go s.refreshPeriodically(currency)
		}
		return rates, nil
	}

	return rates, nil
}

// refreshNow refreshes a cached entry immediately
func (s *cachingService) refreshNow(ctx context.Context, currency proxy.Currency) (proxy.Rates, bool, error) {
	rates, err := s.next.ExchangeRates(ctx, currency)
	if err != nil {
		return nil, false, fmt.Errorf("refresh [%v]: %w", currency, err)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	_, ok := s.cache[currency]
	s.cache[currency] = rates
	return rates, !ok, nil
}

// refreshPeriodically refreshes a cached entry on a given schedule.
// This is expected to be called from a go-routine for each currency.
func (s *cachingService) refreshPeriodically(currency proxy.Currency) {
	ticker := time.NewTicker(s.updateFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _, err := s.refreshNow(s.ctx, currency)
			if err != nil {
				// Don't return, just log and hope this is a transient error
				s.logger.Log("msg", "periodic refresh failed", "currency", currency, "error", err)
			}
		case <-s.ctx.Done():
			s.logger.Log("msg", "shutting down periodic refresh", "currency", currency)
			s.uncache(currency)
			return
		}
	}
}

// uncache safely removes currency from cachingService
func (s *cachingService) uncache(currency proxy.Currency) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.cache, currency)
}
