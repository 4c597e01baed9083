package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"runtime"

	"leetcrack/internal/config"
	"leetcrack/internal/messages"
	"leetcrack/internal/telemetry"
)

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		usage(err)
		os.Exit(2)
	}

	cfg, err := config.Load(a.configPath)
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

	addr := net.JoinHostPort(a.host, fmt.Sprint(a.port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		usage(fmt.Errorf("controller unreachable: %w", err))
		os.Exit(2)
	}
	defer conn.Close()
	logger.Info("connected", "controller", addr)

	if err := serve(ctx, conn, a, cfg, logger); err != nil {
		logger.Error("job failed", "error", err)
		os.Exit(2)
	}
}

// serve runs one REGISTER/ACK/JOB/RESULT exchange on conn.
func serve(ctx context.Context, conn io.ReadWriter, a args, cfg config.Config, logger *slog.Logger) error {
	r := bufio.NewReader(conn)

	// REGISTER
	reg := messages.RegisterMsg{
		Type:    messages.REGISTER,
		Worker:  hostnameOr("worker"),
		Version: messages.ProtocolVersion,
		Cores:   runtime.NumCPU(),
	}
	if err := messages.Send(conn, reg); err != nil {
		return fmt.Errorf("send REGISTER failed: %w", err)
	}

	var ack messages.AckMsg
	if err := messages.RecvLine(r, &ack); err != nil {
		return fmt.Errorf("read ACK failed: %w", err)
	}
	if ack.Type != messages.ACK || ack.Status != messages.StatusOK {
		return fmt.Errorf("registration rejected: %s", ack.Error)
	}

	// JOB
	var job messages.JobMsg
	if err := messages.RecvLine(r, &job); err != nil {
		sendError(conn, &job, fmt.Errorf("read JOB failed: %w", err))
		return err
	}
	if job.Type != messages.JOB {
		err := fmt.Errorf("protocol error: expected JOB")
		sendError(conn, &job, err)
		return err
	}
	if err := validateJob(&job); err != nil {
		sendError(conn, &job, err)
		return err
	}

	res := crackJob(ctx, &job, cfg, a.parallel, logger)
	logger.Info("job done", "job", job.JobID.String(), "status", res.Status, "tried", res.Tried)

	// RESULT (exactly one final result)
	if err := messages.Send(conn, res); err != nil {
		return fmt.Errorf("send RESULT failed: %w", err)
	}
	return nil
}

func sendError(w io.Writer, job *messages.JobMsg, err error) {
	_ = messages.Send(w, &messages.ResultMsg{
		Type:   messages.RESULT,
		JobID:  job.JobID,
		Status: messages.StatusError,
		Error:  err.Error(),
	})
}

func usage(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	fmt.Fprintln(os.Stderr, "usage: worker -c <controller_host> -p <port> [-j parallel] [-config file] [-metrics addr] [-v]")
}

func hostnameOr(fallback string) string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return fallback
	}
	return h
}
