package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"poolburn/internal/collector"
	"poolburn/internal/config"
	"poolburn/internal/coordinator"
	"poolburn/internal/core"
	"poolburn/internal/httpuser"
	"poolburn/internal/lifecycle"
	"poolburn/internal/profile"
	"poolburn/internal/progress"
	"poolburn/internal/ratelimit"
)

const (
	ExitSuccess         = 0
	ExitThresholdFailed = 1
	ExitError           = 2
)

func main() {
	host := flag.String("host", "http://localhost:8080", "base URL of the target service")
	users := flag.Int("users", config.DefaultUsers, "number of virtual users to spawn")
	spawnRate := flag.Float64("spawn-rate", config.DefaultSpawnRate, "users started per second (0 = all at once)")
	duration := flag.Duration("duration", config.DefaultDuration, "test duration")
	rps := flag.Int("rps", 0, "global request rate cap (0 = unlimited)")
	profiles := flag.String("profiles", "", "comma-separated profile names to run (default: all)")
	configPath := flag.String("config", "", "path to YAML config file")
	output := flag.String("output", "text", "output format: text, json")
	quiet := flag.Bool("quiet", false, "suppress progress output during test")
	verbose := flag.Bool("verbose", false, "enable debug output (request/response logging)")
	maxIterations := flag.Int("max-iterations", 0, "max iterations per user (0 = unlimited)")
	warmup := flag.Int("warmup", 0, "warmup iterations before collecting metrics (per-user)")
	flag.Parse()

	if *output != "text" && *output != "json" {
		fmt.Fprintf(os.Stderr, "error: --output must be 'text' or 'json', got %q\n", *output)
		os.Exit(ExitError)
	}

	var thresholds *collector.Thresholds
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
		// Explicit flags win over the config file.
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["host"] {
			*host = cfg.Target
		}
		if !set["users"] {
			*users = cfg.Users
		}
		if !set["spawn-rate"] {
			*spawnRate = cfg.SpawnRate
		}
		if !set["duration"] {
			*duration = cfg.Duration
		}
		if !set["rps"] {
			*rps = cfg.RPS
		}
		if !set["profiles"] {
			*profiles = strings.Join(cfg.Profiles, ",")
		}
		if !set["max-iterations"] {
			*maxIterations = cfg.Execution.MaxIterations
		}
		if !set["warmup"] {
			*warmup = cfg.Execution.WarmupIterations
		}
		thresholds = cfg.Thresholds
	}

	if *users < 1 {
		fmt.Fprintln(os.Stderr, "error: --users must be >= 1")
		os.Exit(ExitError)
	}

	var debugLogger *httpuser.DebugLogger
	if *verbose {
		debugLogger = httpuser.NewDebugLogger(os.Stderr)
	}

	client := httpuser.NewClient(*host, &http.Client{Timeout: 30 * time.Second}, debugLogger)
	registry, err := httpuser.DefaultRegistry(client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
	if *profiles != "" {
		registry, err = registry.Select(strings.Split(*profiles, ",")...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
	}

	limiter := ratelimit.NewLimiter(*rps)
	allocs := registry.Allocate(*users)
	workers := make([]core.Workflow, 0, *users)
	for _, p := range profile.SpawnOrder(allocs) {
		u, err := httpuser.NewUser(p, limiter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
		workers = append(workers, u)
	}

	coll := collector.NewCollector()
	coord := coordinator.NewCoordinator(coll)
	prog := progress.NewProgress(coll, coord.ActiveUsers, *quiet)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	interrupted := false
	go func() {
		<-sigCh
		interrupted = true
		if !*quiet {
			fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		}
		cancel()
	}()

	hooks := lifecycle.NewHooks(os.Stderr)
	if !*quiet {
		hooks.TestStart(*host)
		for _, a := range allocs {
			prog.Printf("  %-14s weight %d -> %d users", a.Profile.Name, a.Profile.Weight, a.Users)
		}
		prog.Printf("Spawning %d users at %.1f/s for %v", *users, *spawnRate, *duration)
	}

	runnerConfig := core.RunnerConfig{
		MaxIterations: *maxIterations,
		WarmupIters:   *warmup,
	}

	prog.Start()
	ramp := ratelimit.NewSpawnRamp(len(workers), *spawnRate)
	coord.RunRamp(ctx, workers, ramp, runnerConfig)
	coord.Wait()
	coll.Close()
	prog.Stop()

	if !*quiet {
		hooks.TestStop()
	}

	metrics := coll.Compute()

	var thresholdResults *collector.ThresholdResults
	if thresholds != nil {
		thresholdResults = thresholds.Check(metrics)
	}

	if *output == "json" {
		collector.FormatJSON(os.Stdout, metrics, thresholdResults)
	} else {
		collector.FormatText(os.Stdout, metrics, thresholdResults)
	}

	if interrupted {
		os.Exit(ExitSuccess)
	}

	if thresholdResults != nil && !thresholdResults.Passed {
		if *output == "text" {
			fmt.Fprintln(os.Stderr, "\nThreshold check failed!")
		}
		os.Exit(ExitThresholdFailed)
	}

	os.Exit(ExitSuccess)
}
