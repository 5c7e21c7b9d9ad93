package main

import (
	"context"
	"go-zel-rate-proxy"
	"go-zel-rate-proxy/coinbase"
	"go-zel-rate-proxy/config"
	"go-zel-rate-proxy/exchange"
	"go-zel-rate-proxy/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	nhttp "net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	w := log.NewSyncWriter(os.Stderr)
	logger := log.NewLogfmtLogger(w)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfg, err := config.Load(level.Warn(logger))
	if err != nil {
		level.Error(logger).Log("msg", "loading config", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, level.Allow(level.ParseDefault(cfg.LogLevel, level.InfoValue())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coinbaseService := coinbase.NewService(cfg.RatesURL, cfg.Timeout)
	coinbaseService = coinbase.NewLoggingService(level.Debug(log.With(logger, "component", "coinbase_rest")), coinbaseService, "USD")
	coinbaseService = coinbase.NewCachingService(ctx, cfg.RefreshInterval, level.Info(log.With(logger, "component", "coinbase_cache")), coinbaseService)
	coinbaseService = coinbase.NewLoggingService(level.Debug(log.With(logger, "component", "coinbase_cache")), coinbaseService)

	exchangeService := exchange.NewService(coinbaseService, proxy.Currency(cfg.BaseCurrency))
	exchangeService = exchange.NewLoggingService(level.Info(log.With(logger, "component", "exchange")), exchangeService)

	handler := http.NewServer(exchangeService, level.Warn(log.With(logger, "component", "http")))
	server := &nhttp.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	level.Info(logger).Log("msg", "listening", "addr", server.Addr, "base_currency", cfg.BaseCurrency)
	if err := server.ListenAndServe(); err != nil && err != nhttp.ErrServerClosed {
		level.Error(logger).Log("msg", "server stopped", "err", err)
		os.Exit(1)
	}
}
