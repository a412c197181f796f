package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func runComponents(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("components", flag.ExitOnError)
	var (
		manifestDir  = fs.String("manifest-dir", "", "Path to manifests directory (default from settings)")
		settingsPath = fs.String("settings", "", "Path to runner settings file (default preflight.toml)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: preflight components <tool> [options]

Add a tool's toolchain components (e.g. rustup component add rustfmt)
without touching the tool itself. The first rejected component aborts.

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

	if err := orchestrator.AddComponents(ctx, toolName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
