package main

import (
	"flag"
	"fmt"
)

type args struct {
	host        string
	port        int
	configPath  string
	parallel    int
	metricsAddr string
	verbose     bool
}

func parseArgs(argv []string) (args, error) {
	var a args
	fs := flag.NewFlagSet("worker", flag.ContinueOnError)
	fs.StringVar(&a.host, "c", "", "controller host")
	fs.IntVar(&a.port, "p", 0, "controller port")
	fs.StringVar(&a.configPath, "config", "", "optional YAML config file")
	fs.IntVar(&a.parallel, "j", 0, "words checked concurrently (default from job or config)")
	fs.StringVar(&a.metricsAddr, "metrics", "", "serve Prometheus metrics on this address")
	fs.BoolVar(&a.verbose, "v", false, "debug logging")
	if err := fs.Parse(argv); err != nil {
		return args{}, err
	}

	if a.host == "" || a.port <= 0 || a.port > 65535 {
		return args{}, fmt.Errorf("missing required argument")
	}
	if a.parallel < 0 {
		return args{}, fmt.Errorf("-j must not be negative")
	}
	return a, nil
}
