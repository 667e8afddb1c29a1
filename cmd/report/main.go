package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"

	"StockLens/internal/chart"
	"StockLens/internal/collector"
	"StockLens/internal/config"
	"StockLens/internal/logging"
	"StockLens/internal/pipeline"
	"StockLens/internal/scheduler"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath, ".env")
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("[FATAL] init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	logger.Info("StockLens starting", zap.String("config", cfgPath))

	start, end, _ := cfg.Window()
	req := pipeline.Request{Symbol: cfg.Report.Symbol, Start: start, End: end}

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case config.ProviderMock:
		fetcher = &collector.MockFetcher{Price: 2000}
	default:
		fetcher = collector.NewYahooFetcher(cfg.DataSource.BaseURL, cfg.DataSource.ExchangeSuffix, cfg.Proxy, cfg.DataSource.Timeout)
	}
	logger.Info("data source", zap.String("name", fetcher.Name()))

	col := collector.NewCollector(fetcher, cfg.DataSource.Timeout, collector.RetryPolicy{
		Retries: cfg.DataSource.Retries,
		Backoff: cfg.DataSource.RetryBackoff,
	}, logger)

	p := pipeline.New(col, os.Stdout, pipeline.Options{
		HeadRows: cfg.Display.HeadRows,
		Chart: chart.Options{
			IncreasingColor: cfg.Chart.IncreasingColor,
			DecreasingColor: cfg.Chart.DecreasingColor,
		},
	}, logger)

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var page atomic.Pointer[[]byte]
	job := func(ctx context.Context) error {
		res, err := p.Run(ctx, req)
		if err != nil {
			return err
		}
		if res.Chart == nil {
			return nil
		}
		html, err := chart.Page(res.Chart)
		if err != nil {
			return err
		}
		page.Store(&html)
		if cfg.Chart.Output != "" {
			if err := chart.Export(cfg.Chart.Output, res.Chart); err != nil {
				return err
			}
			logger.Info("chart exported", zap.String("path", cfg.Chart.Output))
		}
		return nil
	}

	sched := scheduler.NewScheduler(ctx, job, logger)
	if err := sched.RunNow(); err != nil {
		logger.Error("report failed", zap.Error(err))
		if cfg.Schedule.Cron == "" {
			logger.Sync() //nolint:errcheck
			os.Exit(1)
		}
	}

	if cfg.Schedule.Cron == "" && cfg.Chart.ServeAddr == "" {
		return
	}

	if cfg.Schedule.Cron != "" {
		if err := sched.Register(cfg.Schedule.Cron); err != nil {
			logger.Fatal("register schedule", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	}

	if cfg.Chart.ServeAddr != "" {
		current := func() []byte {
			if b := page.Load(); b != nil {
				return *b
			}
			return nil
		}
		if err := chart.Serve(ctx, cfg.Chart.ServeAddr, current, logger); err != nil {
			logger.Error("chart server", zap.Error(err))
		}
	} else {
		logger.Info("StockLens is running. Press Ctrl+C to stop.")
		<-ctx.Done()
	}

	logger.Info("shutdown signal received, stopping...")
}
