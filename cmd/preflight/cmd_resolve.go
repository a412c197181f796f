package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
)

func runResolve(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	var (
		manifestDir  = fs.String("manifest-dir", "", "Path to manifests directory (default from settings)")
		settingsPath = fs.String("settings", "", "Path to runner settings file (default preflight.toml)")
		jsonOutput   = fs.Bool("json", false, "Emit the resolution as JSON")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: preflight resolve <tool> [options]

Print the latest release tag and the target triple this platform resolves
to, without installing anything.

Examples:
  preflight resolve cross
  preflight resolve cross --json

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

	resolution, err := orchestrator.Resolve(ctx, toolName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		out := struct {
			Tool   string `json:"tool"`
			Tag    string `json:"tag"`
			Target string `json:"target"`
		}{toolName, resolution.Tag, resolution.Target}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("tag: %s\ntarget: %s\n", resolution.Tag, resolution.Target)
}
