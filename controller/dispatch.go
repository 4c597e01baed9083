package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"leetcrack/internal/crack"
	"leetcrack/internal/messages"
)

type workerConn struct {
	conn  net.Conn
	r     *bufio.Reader
	name  string
	cores int
}

// target is everything a job needs except the words.
type target struct {
	username string
	fullHash string
	alg      string
	budget   uint
	parallel int
}

// outcome merges the results of every worker.
type outcome struct {
	status    messages.Status
	password  string
	word      string
	tried     int64
	computeNs int64 // slowest worker
	errs      []string
}

var errFound = errors.New("password found")

// registerTimeout bounds the REGISTER exchange when no accept timeout is set.
const registerTimeout = 30 * time.Second

// acceptWorkers waits for n workers and acknowledges their registration.
// Workers speaking another protocol version are rejected and not counted.
func acceptWorkers(ctx context.Context, ln net.Listener, n int, timeout time.Duration, logger *slog.Logger) ([]*workerConn, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
		if tl, ok := ln.(*net.TCPListener); ok {
			if err := tl.SetDeadline(deadline); err != nil {
				return nil, err
			}
		}
	}
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	var workers []*workerConn
	for len(workers) < n {
		conn, err := ln.Accept()
		if err != nil {
			closeAll(workers)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("accept failed after %d of %d workers: %w", len(workers), n, err)
		}
		w, err := registerWithin(ctx, conn, deadline)
		if err != nil {
			logger.Warn("worker rejected", "remote", conn.RemoteAddr().String(), "error", err)
			conn.Close()
			continue
		}
		logger.Info("worker registered", "worker", w.name, "cores", w.cores, "remote", conn.RemoteAddr().String())
		workers = append(workers, w)
	}
	return workers, nil
}

// registerWithin runs register on conn, giving up at deadline (or after
// registerTimeout when deadline is zero) or when ctx is done.
func registerWithin(ctx context.Context, conn net.Conn, deadline time.Time) (*workerConn, error) {
	if deadline.IsZero() {
		deadline = time.Now().Add(registerTimeout)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	w, err := register(conn)
	if !stop() {
		// ctx fired and closed conn
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		return nil, err
	}
	return w, nil
}

func register(conn net.Conn) (*workerConn, error) {
	r := bufio.NewReader(conn)
	var reg messages.RegisterMsg
	if err := messages.RecvLine(r, &reg); err != nil {
		return nil, fmt.Errorf("read REGISTER failed: %w", err)
	}
	if reg.Type != messages.REGISTER {
		_ = messages.Send(conn, messages.AckMsg{Type: messages.ACK, Status: messages.StatusError, Error: "expected REGISTER"})
		return nil, fmt.Errorf("protocol error: expected REGISTER")
	}
	if reg.Version != messages.ProtocolVersion {
		_ = messages.Send(conn, messages.AckMsg{Type: messages.ACK, Status: messages.StatusError, Error: "unsupported version " + reg.Version})
		return nil, fmt.Errorf("unsupported version %q", reg.Version)
	}
	if err := messages.Send(conn, messages.AckMsg{Type: messages.ACK, Status: messages.StatusOK}); err != nil {
		return nil, fmt.Errorf("send ACK failed: %w", err)
	}
	return &workerConn{conn: conn, r: r, name: reg.Worker, cores: reg.Cores}, nil
}

// dispatch splits words across workers, one job each, and waits for the
// results. The first FOUND result closes the remaining connections.
func dispatch(ctx context.Context, workers []*workerConn, t target, words []string, logger *slog.Logger) (outcome, error) {
	defer closeAll(workers)

	chunks := crack.Split(words, len(workers))
	var (
		mu  sync.Mutex
		out = outcome{status: messages.StatusNotFound}
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		w := workers[i]
		g.Go(func() error {
			stop := context.AfterFunc(gctx, func() { w.conn.Close() })
			defer stop()

			job := messages.NewJob(t.username, t.fullHash, t.alg, t.budget, t.parallel, chunk)
			logger.Info("job dispatched", "job", job.JobID.String(), "worker", w.name, "words", len(chunk))
			if err := messages.Send(w.conn, job); err != nil {
				return fmt.Errorf("send JOB to %s failed: %w", w.name, err)
			}

			var res messages.ResultMsg
			if err := messages.RecvLine(w.r, &res); err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("read RESULT from %s failed: %w", w.name, err)
			}
			if res.Type != messages.RESULT {
				return fmt.Errorf("protocol error: expected RESULT from %s", w.name)
			}

			mu.Lock()
			defer mu.Unlock()
			out.tried += res.Tried
			out.computeNs = max(out.computeNs, res.WorkerComputeNs)
			switch res.Status {
			case messages.StatusFound:
				if out.status != messages.StatusFound {
					out.status, out.password, out.word = messages.StatusFound, res.Password, res.Word
				}
				return errFound
			case messages.StatusError:
				out.errs = append(out.errs, fmt.Sprintf("%s: %s", w.name, res.Error))
			}
			return nil
		})
	}

	err := g.Wait()
	mu.Lock()
	defer mu.Unlock()
	if out.status == messages.StatusFound {
		return out, nil
	}
	if err != nil {
		return out, err
	}
	if len(out.errs) > 0 {
		// Any error means part of the dictionary went unchecked.
		out.status = messages.StatusError
	}
	return out, nil
}

func closeAll(workers []*workerConn) {
	for _, w := range workers {
		w.conn.Close()
	}
}
