package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"leetcrack/internal/config"
	"leetcrack/internal/crack"
	"leetcrack/internal/messages"
	"leetcrack/internal/verify"
)

func validateJob(job *messages.JobMsg) error {
	if job.Budget == 0 {
		return fmt.Errorf("invalid budget")
	}
	if job.FullHash == "" {
		return fmt.Errorf("empty hash field")
	}
	alg, err := verify.DetectAlg(job.FullHash)
	if err != nil {
		return err
	}
	if alg != job.Alg {
		return fmt.Errorf("hash is %s, job says %s", alg, job.Alg)
	}
	if len(job.Words) == 0 {
		return fmt.Errorf("empty word list")
	}
	return nil
}

// crackJob checks every variant of the job's words. Parallelism comes from
// the -j flag, then the job, then the config file or this machine's cores.
func crackJob(ctx context.Context, job *messages.JobMsg, cfg config.Config, parallel int, logger *slog.Logger) *messages.ResultMsg {
	res := &messages.ResultMsg{Type: messages.RESULT, JobID: job.JobID}
	start := time.Now()
	defer func() { res.WorkerComputeNs = time.Since(start).Nanoseconds() }()

	v, err := verify.New(job.Alg, job.Username, job.FullHash)
	if err != nil {
		res.Status, res.Error = messages.StatusError, err.Error()
		return res
	}

	if parallel == 0 {
		parallel = job.Parallel
	}
	if parallel == 0 {
		parallel = cfg.Parallelism()
	}
	logger = logger.With("job", job.JobID.String())
	logger.Info("cracking", "words", len(job.Words), "alg", job.Alg, "budget", job.Budget, "parallel", parallel)

	found, err := crack.Search(ctx, job.Words, v, crack.Options{
		Table:         cfg.Table(),
		Budget:        job.Budget,
		Parallel:      parallel,
		ExpandWorkers: cfg.ExpandWorkers,
		Logger:        logger,
	})
	res.Tried = found.Tried
	switch {
	case err != nil:
		res.Status, res.Error = messages.StatusError, err.Error()
	case found.Found:
		res.Status, res.Password, res.Word = messages.StatusFound, found.Password, found.Word
	default:
		res.Status = messages.StatusNotFound
	}
	return res
}
