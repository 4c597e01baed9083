package main

import (
	"flag"
	"fmt"
)

type args struct {
	credPath    string
	username    string
	dictPath    string
	port        int
	local       bool
	configPath  string
	metricsAddr string
	verbose     bool

	// Overrides for config values; zero means "not given".
	workers  int
	budget   uint
	parallel int
}

func parseArgs(argv []string) (args, error) {
	var a args
	fs := flag.NewFlagSet("controller", flag.ContinueOnError)
	fs.StringVar(&a.credPath, "f", "", "path to credential (shadow-style) file")
	fs.StringVar(&a.username, "u", "", "username")
	fs.StringVar(&a.dictPath, "d", "", "path to dictionary file")
	fs.IntVar(&a.port, "p", 0, "port")
	fs.BoolVar(&a.local, "local", false, "crack in-process instead of dispatching to workers")
	fs.StringVar(&a.configPath, "config", "", "optional YAML config file")
	fs.StringVar(&a.metricsAddr, "metrics", "", "serve Prometheus metrics on this address")
	fs.BoolVar(&a.verbose, "v", false, "debug logging")
	fs.IntVar(&a.workers, "w", 0, "number of workers to wait for")
	fs.UintVar(&a.budget, "b", 0, "substitution cost budget (exclusive)")
	fs.IntVar(&a.parallel, "j", 0, "words checked concurrently per process")
	if err := fs.Parse(argv); err != nil {
		return args{}, err
	}

	if a.credPath == "" || a.username == "" || a.dictPath == "" {
		return args{}, fmt.Errorf("missing required argument")
	}
	if !a.local && (a.port <= 0 || a.port > 65535) {
		return args{}, fmt.Errorf("missing required argument")
	}
	if a.workers < 0 || a.parallel < 0 {
		return args{}, fmt.Errorf("-w and -j must not be negative")
	}
	return a, nil
}
