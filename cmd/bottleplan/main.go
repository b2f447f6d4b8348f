package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/vsinha/bottleplan/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		configDir = flag.String("config", ".", "Directory searched for .env / config.env")
		outputDir = flag.String("output", "", "Output directory for results (optional)")
		format    = flag.String("format", "text", "Output format: text, json")
		verbose   = flag.Bool("verbose", false, "Print the record after every planning step")
		debug     = flag.Bool("debug", false, "Trace every record mutation to the log")
		help      = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		ConfigDir: *configDir,
		OutputDir: *outputDir,
		Format:    *format,
		Verbose:   *verbose,
		Debug:     *debug,
		Help:      *help,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := commands.NewPlanCommand(config)
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
