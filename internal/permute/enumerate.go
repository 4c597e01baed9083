package permute

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrNoCompleteSequence means every branch was pruned before reaching the
// rule's length.
var ErrNoCompleteSequence = errors.New("no complete sequence under ceiling")

// minChunk is the smallest frontier slice handed to one goroutine.
const minChunk = 64

// Enumerate expands the empty stack breadth first, one position per round,
// and returns the last non-empty frontier.
//
// When the ceiling prunes every branch before the table is exhausted the
// returned stacks are shorter than r.Len(). Use EnumerateComplete to have
// that reported as an error.
func Enumerate[T any](r *Rule[T]) []Stack[Step[T]] {
	out, _ := enumerateRounds(r)
	return out
}

// enumerateRounds is Enumerate that also reports how many rounds ran,
// counting the final one that produced nothing. Every round either grows
// the stacks by one position or ends the loop, so it never exceeds
// r.Len()+1.
func enumerateRounds[T any](r *Rule[T]) ([]Stack[Step[T]], int) {
	frontier := []Stack[Step[T]]{New[Step[T]]()}
	for rounds := 1; ; rounds++ {
		var next []Stack[Step[T]]
		for _, s := range frontier {
			next = r.AppendExpand(next, s)
		}
		if len(next) == 0 {
			return frontier, rounds
		}
		frontier = next
	}
}

// EnumerateComplete is Enumerate, but fails with ErrNoCompleteSequence
// unless the result holds full-length sequences.
func EnumerateComplete[T any](r *Rule[T]) ([]Stack[Step[T]], error) {
	out := Enumerate(r)
	if err := checkComplete(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnumerateConcurrent produces the same stacks in the same order as
// EnumerateComplete. Each round splits the frontier into chunks expanded by
// at most workers goroutines, joined before the next round starts.
func EnumerateConcurrent[T any](ctx context.Context, r *Rule[T], workers int) ([]Stack[Step[T]], error) {
	if workers < 1 {
		workers = 1
	}
	frontier := []Stack[Step[T]]{New[Step[T]]()}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := expandRound(ctx, r, frontier, workers)
		if err != nil {
			return nil, err
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	if err := checkComplete(r, frontier); err != nil {
		return nil, err
	}
	return frontier, nil
}

func expandRound[T any](ctx context.Context, r *Rule[T], frontier []Stack[Step[T]], workers int) ([]Stack[Step[T]], error) {
	chunk := (len(frontier) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}
	parts := make([][]Stack[Step[T]], (len(frontier)+chunk-1)/chunk)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range parts {
		lo := i * chunk
		hi := min(lo+chunk, len(frontier))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var out []Stack[Step[T]]
			for _, s := range frontier[lo:hi] {
				out = r.AppendExpand(out, s)
			}
			parts[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := 0
	for _, p := range parts {
		n += len(p)
	}
	next := make([]Stack[Step[T]], 0, n)
	for _, p := range parts {
		next = append(next, p...)
	}
	return next, nil
}

func checkComplete[T any](r *Rule[T], out []Stack[Step[T]]) error {
	if len(out) == 0 {
		return ErrNoCompleteSequence
	}
	if got := out[0].Size(); got < r.Len() {
		return fmt.Errorf("%w: reached %d of %d positions", ErrNoCompleteSequence, got, r.Len())
	}
	return nil
}
