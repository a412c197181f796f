package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/preflight/internal/external-adapters/yaml"
)

func runList(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var (
		manifestDir  = fs.String("manifest-dir", "", "Path to manifests directory (default from settings)")
		settingsPath = fs.String("settings", "", "Path to runner settings file (default preflight.toml)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: preflight list [options]

List all available tool manifests.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	settings := loadSettings(*settingsPath)
	dir := *manifestDir
	if dir == "" {
		dir = settings.ManifestDir
	}

	manifests, err := yaml.NewManifestRepository(dir).ListManifests(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing manifests: %v\n", err)
		os.Exit(1)
	}

	if len(manifests) == 0 {
		fmt.Println("No manifests found.")
		return
	}

	for _, m := range manifests {
		if m.Description != "" {
			fmt.Printf("%-16s %s\n", m.Name, m.Description)
		} else {
			fmt.Println(m.Name)
		}
	}
}
