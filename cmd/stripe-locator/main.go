package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/stripe-locator/internal/batch"
	"github.com/ironsheep/stripe-locator/internal/config"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	folder := flag.String("folder", "", "image folder (overrides batch.folder)")
	debugDir := flag.String("debug-dir", "", "write class and match rasters here (overrides batch.debug_dir)")
	showVersion := flag.Bool("version", false, "print version information")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "stripe-locator - locate red/white striped targets in a folder of photos")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: stripe-locator [options]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Reads <folder>/input.txt, a comma-separated list of image names, and")
		fmt.Fprintln(os.Stderr, "writes <folder>/output.txt with one (x,y) entry per image.")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("stripe-locator %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if *folder != "" {
		cfg.Batch.Folder = *folder
	}
	if *debugDir != "" {
		cfg.Batch.DebugDir = *debugDir
	}

	if cfg.Debug() {
		log.Printf("stripe-locator v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := batch.NewRunner(cfg, log.Default())
	if err != nil {
		log.Fatalf("Setup error: %v", err)
	}
	if _, err := runner.Run(ctx); err != nil {
		log.Fatalf("Batch error: %v", err)
	}
}
