package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func runBootstrap(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var (
		manifestDir  = fs.String("manifest-dir", "", "Path to manifests directory (default from settings)")
		settingsPath = fs.String("settings", "", "Path to runner settings file (default preflight.toml)")
		quiet        = fs.Bool("quiet", false, "Quiet mode - suppress the summary")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: preflight run <tool> [options]

Bootstrap a tool before the build matrix runs: add its toolchain
components, resolve the latest release tag and the target triple for this
platform, then download and execute its installer.

Examples:
  preflight run cross
  preflight run cross --manifest-dir ci/manifests

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: tool name is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	toolName := fs.Arg(0)

	settings := loadSettings(*settingsPath)
	orchestrator := newOrchestrator(settings, *manifestDir)

	result, err := orchestrator.Bootstrap(ctx, toolName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !*quiet {
		fmt.Println(result.Summary())
	}
}
