// Package main provides the preflight CLI for bootstrapping CI toolchains.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ochairo/preflight/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/preflight/internal/domain-orchestrators"
	"github.com/ochairo/preflight/internal/external-adapters/toml"
	"github.com/ochairo/preflight/internal/external-adapters/yaml"
	"github.com/ochairo/preflight/internal/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "run":
		runBootstrap(ctx, os.Args[2:])
	case "resolve":
		runResolve(ctx, os.Args[2:])
	case "components":
		runComponents(ctx, os.Args[2:])
	case "list":
		runList(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`preflight - CI toolchain bootstrap utility

Usage:
  preflight <command> [options]

Commands:
  run         Bootstrap a tool: add components, resolve tag/target, install
  resolve     Print the latest release tag and target triple for a tool
  components  Add a tool's toolchain components only
  list        List available tool manifests

Use "preflight <command> --help" for more information about a command.`)
}

// loadSettings loads runner settings, exiting on a malformed file
func loadSettings(path string) toml.Settings {
	settings, err := toml.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return settings
}

// newOrchestrator wires the production gateways behind the orchestrator
func newOrchestrator(settings toml.Settings, manifestDir string) *orchestrators.BootstrapOrchestrator {
	if manifestDir == "" {
		manifestDir = settings.ManifestDir
	}

	logger := logging.New(settings.LogLevel)
	verifier := gateways.NewPayloadVerifier(logger)

	return orchestrators.NewBootstrapOrchestrator(
		yaml.NewManifestRepository(manifestDir),
		gateways.NewToolchainGateway(),
		gateways.NewRemoteTagLister(settings.HTTPTimeout()),
		gateways.NewScriptInstaller(verifier, settings.InstallTimeout()),
		logger,
	)
}
