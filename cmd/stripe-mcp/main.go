package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/stripe-locator/internal/config"
	"github.com/ironsheep/stripe-locator/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("stripe-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("stripe-mcp - MCP server for locating red/white striped targets")
			fmt.Println()
			fmt.Println("Usage: stripe-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  STRIPE_LOCATOR_CONFIG=<file>           Read settings from a YAML file")
			fmt.Println("  STRIPE_LOCATOR_LOG_LEVEL=debug         Enable debug logging")
			fmt.Println("  STRIPE_LOCATOR_DETECTOR_KEEP_RATIO=..  Override any detector setting")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	marker, err := cfg.Marker.RGBA()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Stripe MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Detector: %+v", cfg.Detector)
	}

	srv := server.NewWithOptions(cfg.Detector.Options(), marker)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
