// Package orchestrators coordinates the bootstrap workflow across the
// domain services and gateways.
package orchestrators

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ochairo/preflight/internal/domain/entities"
	"github.com/ochairo/preflight/internal/domain/interfaces"
	"github.com/ochairo/preflight/internal/domain/interfaces/gateways"
	"github.com/ochairo/preflight/internal/domain/interfaces/repositories"
	"github.com/ochairo/preflight/internal/domain/services"
)

// BootstrapOrchestrator runs the one-shot bootstrap procedure for a tool:
// add toolchain components, resolve the target triple from the platform
// signal, select the latest release tag, run the installer. Strictly
// sequential and fail-fast; the first error aborts every later step.
type BootstrapOrchestrator struct {
	manifests repositories.ManifestRepository
	toolchain gateways.ToolchainManager
	tags      gateways.TagLister
	installer gateways.Installer
	logger    interfaces.Logger
}

// NewBootstrapOrchestrator creates a new bootstrap orchestrator
func NewBootstrapOrchestrator(
	manifests repositories.ManifestRepository,
	toolchain gateways.ToolchainManager,
	tags gateways.TagLister,
	installer gateways.Installer,
	logger interfaces.Logger,
) *BootstrapOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &BootstrapOrchestrator{
		manifests: manifests,
		toolchain: toolchain,
		tags:      tags,
		installer: installer,
		logger:    logger,
	}
}

// Resolution is the outcome of tag and target resolution for a tool
type Resolution struct {
	Signal string // Raw platform signal read from the environment
	Target string
	Tag    string
}

// BootstrapResult contains the result of a bootstrap run
type BootstrapResult struct {
	Manifest          *entities.Manifest
	Resolution        Resolution
	ComponentDuration time.Duration
	ResolveDuration   time.Duration
	InstallDuration   time.Duration
	TotalDuration     time.Duration
	Success           bool
	Error             error
}

// Bootstrap executes the complete bootstrap workflow for a named tool.
func (o *BootstrapOrchestrator) Bootstrap(ctx context.Context, toolName string) (*BootstrapResult, error) {
	startTime := time.Now()
	result := &BootstrapResult{}

	// Step 1: Load the tool manifest
	manifest, err := o.manifests.GetManifest(ctx, toolName)
	if err != nil {
		result.Error = fmt.Errorf("failed to load manifest: %w", err)
		return result, result.Error
	}
	result.Manifest = manifest

	// Step 2: Add toolchain components. A rejected component aborts the
	// run before any remote query happens.
	componentStart := time.Now()
	if err := o.toolchain.AddComponents(ctx, manifest.Components); err != nil {
		result.Error = err
		return result, result.Error
	}
	result.ComponentDuration = time.Since(componentStart)

	// Step 3: Resolve platform signal, target triple, and release tag
	resolveStart := time.Now()
	resolution, err := o.resolve(ctx, manifest)
	if err != nil {
		result.Error = err
		return result, result.Error
	}
	result.Resolution = *resolution
	result.ResolveDuration = time.Since(resolveStart)

	o.logger.Info("resolved release",
		interfaces.F("tool", manifest.Name),
		interfaces.F("tag", resolution.Tag),
		interfaces.F("target", resolution.Target),
	)

	// Step 4: Run the external installer with the resolved parameters
	installStart := time.Now()
	invocation := entities.Invocation{
		Force:  true,
		Repo:   manifest.Installer.Repo,
		Tag:    resolution.Tag,
		Target: resolution.Target,
	}
	if err := o.installer.Install(ctx, manifest, invocation); err != nil {
		result.Error = err
		return result, result.Error
	}
	result.InstallDuration = time.Since(installStart)

	result.Success = true
	result.TotalDuration = time.Since(startTime)
	return result, nil
}

// Resolve computes the target triple and latest release tag for a tool
// without installing anything.
func (o *BootstrapOrchestrator) Resolve(ctx context.Context, toolName string) (*Resolution, error) {
	manifest, err := o.manifests.GetManifest(ctx, toolName)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return o.resolve(ctx, manifest)
}

// AddComponents runs only the toolchain component step for a tool.
func (o *BootstrapOrchestrator) AddComponents(ctx context.Context, toolName string) error {
	manifest, err := o.manifests.GetManifest(ctx, toolName)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	return o.toolchain.AddComponents(ctx, manifest.Components)
}

func (o *BootstrapOrchestrator) resolve(ctx context.Context, manifest *entities.Manifest) (*Resolution, error) {
	// The platform signal is read once per run; an unset variable is an
	// ordinary non-Linux signal, not an error.
	signal := ""
	if manifest.Targets.SignalEnv != "" {
		signal = os.Getenv(manifest.Targets.SignalEnv)
	}
	target := services.ResolveTarget(signal, manifest.Targets)

	tags, err := o.tags.ListTags(ctx, manifest.Tag.Source)
	if err != nil {
		return nil, err
	}

	tag, err := services.SelectLatestTag(tags, manifest.Tag.Pattern)
	if err != nil {
		return nil, err
	}

	return &Resolution{Signal: signal, Target: target, Tag: tag}, nil
}

// Summary returns a human-readable summary of the run
func (r *BootstrapResult) Summary() string {
	if !r.Success {
		return fmt.Sprintf("Bootstrap failed: %v", r.Error)
	}

	return fmt.Sprintf(`Bootstrap successful!
Tool: %s
Tag: %s
Target: %s
Components: %v
Install: %v
Total: %v`,
		r.Manifest.Name,
		r.Resolution.Tag,
		r.Resolution.Target,
		r.ComponentDuration,
		r.InstallDuration,
		r.TotalDuration,
	)
}
