// Package crack runs dictionary words through the leetspeak variant
// generator and tests every variant against a verifier.
package crack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"leetcrack/internal/leet"
	"leetcrack/internal/verify"
)

// Options control a Search. Zero values select the defaults.
type Options struct {
	Table    *leet.Table
	Budget   uint
	Parallel int
	// ExpandWorkers > 1 generates each word's variants on that many
	// goroutines. Worth it for long words with large budgets.
	ExpandWorkers int
	Logger        *slog.Logger
}

// Result of a search. Word is the dictionary entry Password was derived from.
type Result struct {
	Found    bool
	Password string
	Word     string
	Tried    int64
}

var errFound = errors.New("match found")

func (o Options) withDefaults() Options {
	if o.Table == nil {
		o.Table = leet.Default()
	}
	if o.Budget == 0 {
		o.Budget = leet.DefaultBudget
	}
	if o.Parallel < 1 {
		o.Parallel = 1
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Search tries the variants of each word until one verifies. With
// Parallel > 1 words are checked concurrently and the first match found
// stops new verification calls; which match wins is then not tied to
// dictionary order.
func Search(ctx context.Context, words []string, v verify.Verifier, opts Options) (Result, error) {
	opts = opts.withDefaults()
	s := &searcher{v: v, opts: opts}

	var err error
	if opts.Parallel == 1 {
		err = s.sequential(ctx, words)
	} else {
		err = s.parallel(ctx, words)
	}

	res := Result{Tried: s.tried.Load()}
	if m := s.match.Load(); m != nil {
		res.Found, res.Password, res.Word = true, m.password, m.word
		searchResults.WithLabelValues("found").Inc()
		opts.Logger.Info("match found", "word", m.word, "tried", res.Tried)
		return res, nil
	}
	if err != nil {
		searchResults.WithLabelValues("error").Inc()
		return res, err
	}
	searchResults.WithLabelValues("not_found").Inc()
	opts.Logger.Info("no match", "words", len(words), "tried", res.Tried)
	return res, nil
}

type match struct {
	word, password string
}

type searcher struct {
	v     verify.Verifier
	opts  Options
	tried atomic.Int64
	match atomic.Pointer[match]
	once  sync.Once
}

func (s *searcher) sequential(ctx context.Context, words []string) error {
	for _, w := range words {
		if err := s.checkWord(ctx, w); err != nil {
			if errors.Is(err, errFound) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (s *searcher) parallel(ctx context.Context, words []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Parallel)
	for _, w := range words {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return s.checkWord(gctx, w)
		})
	}
	err := g.Wait()
	if errors.Is(err, errFound) {
		return nil
	}
	if err == nil {
		err = ctx.Err()
	}
	return err
}

// checkWord returns errFound on a match so that an errgroup cancels its
// siblings.
func (s *searcher) checkWord(ctx context.Context, word string) error {
	variants, err := s.variants(ctx, word)
	if err != nil {
		return err
	}
	variantsPerWord.Observe(float64(len(variants)))
	s.opts.Logger.Debug("checking word", "word", word, "variants", len(variants))

	for _, cand := range variants {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := s.v.Verify(cand)
		s.tried.Add(1)
		candidatesTried.Inc()
		if err != nil {
			return fmt.Errorf("verify %q: %w", cand, err)
		}
		if ok {
			s.once.Do(func() {
				s.match.Store(&match{word: word, password: cand})
			})
			return errFound
		}
	}
	wordsChecked.Inc()
	return nil
}

func (s *searcher) variants(ctx context.Context, word string) ([]string, error) {
	if s.opts.ExpandWorkers > 1 {
		return s.opts.Table.VariantsConcurrent(ctx, word, s.opts.Budget, s.opts.ExpandWorkers)
	}
	return s.opts.Table.Variants(word, s.opts.Budget)
}
