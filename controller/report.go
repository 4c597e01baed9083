package main

import (
	"fmt"
	"io"
	"time"

	"leetcrack/internal/messages"
)

type timings struct {
	parse    time.Duration
	dispatch time.Duration // jobs out to results in; zero for local runs
	total    time.Duration
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func printReport(w io.Writer, out outcome, tm timings) {
	fmt.Fprintln(w, "----- FINAL RESULT -----")
	fmt.Fprintf(w, "status: %s\n", out.status)
	if out.status == messages.StatusFound {
		fmt.Fprintf(w, "password: %s\n", out.password)
		fmt.Fprintf(w, "permutation of: %s\n", out.word)
	}
	for _, e := range out.errs {
		fmt.Fprintf(w, "error: %s\n", e)
	}
	fmt.Fprintf(w, "candidates_tried: %d\n", out.tried)

	fmt.Fprintln(w, "----- TIMING -----")
	fmt.Fprintf(w, "controller_parse_ms: %.3f\n", ms(tm.parse))
	if tm.dispatch > 0 {
		fmt.Fprintf(w, "dispatch_round_trip_ms: %.3f\n", ms(tm.dispatch))
	}
	fmt.Fprintf(w, "compute_ms: %.3f\n", float64(out.computeNs)/1e6)
	fmt.Fprintf(w, "total_end_to_end_ms: %.3f\n", ms(tm.total))
}
