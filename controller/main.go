package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"time"

	"leetcrack/internal/config"
	"leetcrack/internal/crack"
	"leetcrack/internal/messages"
	"leetcrack/internal/telemetry"
	"leetcrack/internal/verify"
)

func main() {
	startTotal := time.Now()

	a, err := parseArgs(os.Args[1:])
	if err != nil {
		usage(err)
		os.Exit(2)
	}
	cfg, err := loadConfig(a)
	if err != nil {
		usage(err)
		os.Exit(2)
	}

	logger := telemetry.NewLogger(os.Stderr, a.verbose)
	slog.SetDefault(logger)
	if a.metricsAddr != "" {
		if _, _, err := telemetry.ServeMetrics(a.metricsAddr, logger); err != nil {
			usage(fmt.Errorf("metrics listener: %w", err))
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startParse := time.Now()
	t, words, err := prepare(a, cfg)
	if err != nil {
		usage(err)
		os.Exit(2)
	}
	var tm timings
	tm.parse = time.Since(startParse)
	logger.Info("loaded", "user", a.username, "alg", t.alg, "words", len(words), "budget", t.budget)

	var out outcome
	if a.local {
		out, err = runLocal(ctx, t, words, cfg, logger)
	} else {
		out, err = runDistributed(ctx, a.port, t, words, cfg, logger, &tm)
	}
	if err != nil {
		usage(err)
		os.Exit(2)
	}
	tm.total = time.Since(startTotal)

	printReport(os.Stdout, out, tm)
	if out.status == messages.StatusError {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(a args) (config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if a.workers > 0 {
		cfg.Workers = a.workers
	}
	if a.budget > 0 {
		cfg.Budget = a.budget
	}
	if a.parallel > 0 {
		cfg.Parallel = a.parallel
	}
	return cfg, cfg.Validate()
}

func prepare(a args, cfg config.Config) (target, []string, error) {
	fullHash, err := verify.LoadHash(a.credPath, a.username)
	if err != nil {
		return target{}, nil, err
	}
	alg, err := verify.DetectAlg(fullHash)
	if err != nil {
		return target{}, nil, err
	}
	words, err := crack.ReadWordsFile(a.dictPath)
	if err != nil {
		return target{}, nil, err
	}
	if len(words) == 0 {
		return target{}, nil, fmt.Errorf("dictionary is empty")
	}
	return target{
		username: a.username,
		fullHash: fullHash,
		alg:      alg,
		budget:   cfg.Budget,
		// 0 unless set by -j or the config, so workers use their own cores
		parallel: cfg.Parallel,
	}, words, nil
}

func runLocal(ctx context.Context, t target, words []string, cfg config.Config, logger *slog.Logger) (outcome, error) {
	v, err := verify.New(t.alg, t.username, t.fullHash)
	if err != nil {
		return outcome{}, err
	}
	start := time.Now()
	res, err := crack.Search(ctx, words, v, crack.Options{
		Table:         cfg.Table(),
		Budget:        t.budget,
		Parallel:      cfg.Parallelism(),
		ExpandWorkers: cfg.ExpandWorkers,
		Logger:        logger,
	})
	out := outcome{status: messages.StatusNotFound, tried: res.Tried, computeNs: time.Since(start).Nanoseconds()}
	switch {
	case err != nil:
		out.status, out.errs = messages.StatusError, []string{err.Error()}
	case res.Found:
		out.status, out.password, out.word = messages.StatusFound, res.Password, res.Word
	}
	return out, nil
}

func runDistributed(ctx context.Context, port int, t target, words []string, cfg config.Config, logger *slog.Logger, tm *timings) (outcome, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return outcome{}, fmt.Errorf("listen failed: %w", err)
	}
	defer ln.Close()
	logger.Info("listening", "addr", ln.Addr().String(), "workers", cfg.Workers)

	n := min(cfg.Workers, len(words))
	workers, err := acceptWorkers(ctx, ln, n, cfg.AcceptTimeout, logger)
	if err != nil {
		return outcome{}, err
	}

	start := time.Now()
	out, err := dispatch(ctx, workers, t, words, logger)
	tm.dispatch = time.Since(start)
	return out, err
}

func usage(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	fmt.Fprintln(os.Stderr, "usage: controller -f <credential file> -u <username> -d <dictionary> (-p <port> [-w workers] | -local) [-b budget] [-j parallel] [-config file] [-metrics addr] [-v]")
}
