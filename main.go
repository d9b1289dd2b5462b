package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/UncatchableAlex/Coding-Projects/pkg/engine"
	"github.com/UncatchableAlex/Coding-Projects/pkg/preset"
)

func main() {
	cfg := engine.DefaultConfig()
	var (
		configPath string
		numbers    string
		target     int64
		presets    string
	)

	flag.StringVar(&configPath, "config", "", "YAML config file (flags override it)")
	flag.StringVar(&numbers, "numbers", "", "operands, comma separated (e.g. 1,2,3,4,5,6)")
	flag.Int64Var(&target, "target", 0, "target value for -numbers")
	flag.StringVar(&presets, "preset", "", "comma separated presets ("+strings.Join(preset.Names(), ", ")+")")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json, latex)")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "puzzles solved in parallel")
	flag.BoolVar(&cfg.Verify, "verify", cfg.Verify, "re-parse and check every rendered expression")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "debug logging")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "stop starting new puzzles after this long (0 = none)")
	flag.Parse()

	if configPath != "" {
		fileCfg, err := engine.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		// Explicitly set flags win over the file.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "format":
				fileCfg.Format = cfg.Format
			case "workers":
				fileCfg.Workers = cfg.Workers
			case "verify":
				fileCfg.Verify = cfg.Verify
			case "verbose":
				fileCfg.Verbose = cfg.Verbose
			case "timeout":
				fileCfg.Timeout = cfg.Timeout
			}
		})
		cfg = fileCfg
	}

	if numbers != "" {
		nums, err := engine.ParseNumbers(numbers)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg.Puzzles = append(cfg.Puzzles, preset.Puzzle{Name: "cli", Numbers: nums, Target: target})
	}
	if presets != "" {
		for _, name := range strings.Split(presets, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Presets = append(cfg.Presets, name)
			}
		}
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	e, err := engine.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	report, err := e.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("done", "elapsed", time.Since(start))

	if err := engine.Write(os.Stdout, cfg.Format, report); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}
}
