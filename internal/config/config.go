// Package config loads the optional YAML settings shared by controller and
// worker. Command-line flags override anything set here.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"leetcrack/internal/leet"
	"leetcrack/internal/permute"
)

var ErrInvalid = errors.New("invalid config")

// Config is the on-disk settings file.
type Config struct {
	// Budget is the exclusive substitution-cost ceiling per candidate.
	Budget uint `yaml:"budget"`
	// Parallel is words checked concurrently; 0 leaves it to each process.
	Parallel int `yaml:"parallel"`
	// ExpandWorkers > 1 spreads variant generation of each word over that
	// many goroutines.
	ExpandWorkers int `yaml:"expand_workers"`
	// Workers is how many worker connections the controller waits for.
	Workers       int           `yaml:"workers"`
	AcceptTimeout time.Duration `yaml:"accept_timeout"`
	// Substitutions replaces the built-in replacements of single characters.
	Substitutions map[string][]Substitution `yaml:"substitutions,omitempty"`
}

type Substitution struct {
	To   string `yaml:"to"`
	Cost uint   `yaml:"cost"`
}

func Default() Config {
	return Config{
		Budget:        leet.DefaultBudget,
		Workers:       1,
		AcceptTimeout: 2 * time.Minute,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse the config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Budget == 0:
		return fmt.Errorf("%w: budget must be positive", ErrInvalid)
	case c.Parallel < 0:
		return fmt.Errorf("%w: parallel is negative", ErrInvalid)
	case c.ExpandWorkers < 0:
		return fmt.Errorf("%w: expand_workers is negative", ErrInvalid)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalid)
	case c.AcceptTimeout < 0:
		return fmt.Errorf("%w: accept_timeout is negative", ErrInvalid)
	}
	for from, subs := range c.Substitutions {
		if utf8.RuneCountInString(from) != 1 {
			return fmt.Errorf("%w: substitution key %q is not one character", ErrInvalid, from)
		}
		for _, s := range subs {
			if utf8.RuneCountInString(s.To) != 1 {
				return fmt.Errorf("%w: replacement %q for %q is not one character", ErrInvalid, s.To, from)
			}
		}
	}
	return nil
}

// Parallelism is Parallel, or the local CPU count when unset.
func (c Config) Parallelism() int {
	if c.Parallel > 0 {
		return c.Parallel
	}
	return runtime.NumCPU()
}

// Table is the default leet table with Substitutions applied.
func (c Config) Table() *leet.Table {
	t := leet.Default()
	for from, subs := range c.Substitutions {
		r, _ := utf8.DecodeRuneInString(from)
		choices := make([]permute.Choice[rune], 0, len(subs))
		for _, s := range subs {
			to, _ := utf8.DecodeRuneInString(s.To)
			choices = append(choices, permute.Choice[rune]{Value: to, Cost: s.Cost})
		}
		t = t.With(r, choices)
	}
	return t
}
