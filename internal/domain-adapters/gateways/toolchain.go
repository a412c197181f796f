package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ochairo/preflight/internal/domain/entities"
)

// ToolchainGateway adds components to the host toolchain by shelling out to
// its manager (e.g., rustup component add rustfmt). Components install one
// at a time, in manifest order, and the first rejection aborts the rest.
type ToolchainGateway struct{}

// NewToolchainGateway creates a new toolchain gateway
func NewToolchainGateway() *ToolchainGateway {
	return &ToolchainGateway{}
}

// AddComponents installs each named component via the configured manager.
// Returns a *entities.ComponentInstallError for the first component the
// manager rejects; components after it are never attempted.
func (g *ToolchainGateway) AddComponents(ctx context.Context, cfg entities.ComponentConfig) error {
	if len(cfg.Names) == 0 {
		return nil
	}
	if cfg.Manager == "" {
		return &entities.ComponentInstallError{
			Component: cfg.Names[0],
			ExitCode:  -1,
			Err:       fmt.Errorf("no toolchain manager configured"),
		}
	}

	for _, name := range cfg.Names {
		if err := g.addComponent(ctx, cfg, name); err != nil {
			return err
		}
	}
	return nil
}

func (g *ToolchainGateway) addComponent(ctx context.Context, cfg entities.ComponentConfig, name string) error {
	args := append(append([]string{}, cfg.AddArgs...), name)

	//nolint:gosec // G204: Manager and args come from the tool manifest
	cmd := exec.CommandContext(ctx, cfg.Manager, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	fmt.Fprintf(os.Stderr, "Adding toolchain component: %s\n", name)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	detail := strings.TrimSpace(stderr.String())
	if detail != "" {
		err = fmt.Errorf("%w: %s", err, detail)
	}

	return &entities.ComponentInstallError{
		Component: name,
		ExitCode:  exitCode,
		Err:       err,
	}
}
