package gateways

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ochairo/preflight/internal/domain/entities"
)

func TestToolchainGateway_AddComponents(t *testing.T) {
	tests := []struct {
		name    string
		cfg     entities.ComponentConfig
		wantErr bool
	}{
		{
			name:    "no components is a no-op",
			cfg:     entities.ComponentConfig{},
			wantErr: false,
		},
		{
			name: "manager accepts every component",
			cfg: entities.ComponentConfig{
				Manager: "true",
				Names:   []string{"rustfmt-preview", "clippy-preview"},
			},
			wantErr: false,
		},
		{
			name: "manager rejects a component",
			cfg: entities.ComponentConfig{
				Manager: "false",
				Names:   []string{"rustfmt-preview"},
			},
			wantErr: true,
		},
		{
			name: "components without a manager",
			cfg: entities.ComponentConfig{
				Names: []string{"rustfmt-preview"},
			},
			wantErr: true,
		},
		{
			name: "manager binary missing",
			cfg: entities.ComponentConfig{
				Manager: "preflight-no-such-manager",
				Names:   []string{"rustfmt-preview"},
			},
			wantErr: true,
		},
	}

	gateway := NewToolchainGateway()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gateway.AddComponents(context.Background(), tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("AddComponents() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToolchainGateway_ReportsExitCode(t *testing.T) {
	gateway := NewToolchainGateway()

	cfg := entities.ComponentConfig{
		Manager: "/bin/sh",
		AddArgs: []string{"-c", "exit 42"},
		Names:   []string{"ignored"},
	}

	err := gateway.AddComponents(context.Background(), cfg)
	if err == nil {
		t.Fatal("AddComponents() expected error")
	}

	var compErr *entities.ComponentInstallError
	if !errors.As(err, &compErr) {
		t.Fatalf("AddComponents() error = %T, want *entities.ComponentInstallError", err)
	}
	if compErr.ExitCode != 42 {
		t.Errorf("ComponentInstallError.ExitCode = %d, want 42", compErr.ExitCode)
	}
	if compErr.Component != "ignored" {
		t.Errorf("ComponentInstallError.Component = %q, want %q", compErr.Component, "ignored")
	}
}

func TestToolchainGateway_StopsAtFirstFailure(t *testing.T) {
	tmpDir := t.TempDir()
	before := filepath.Join(tmpDir, "before")
	after := filepath.Join(tmpDir, "after")

	// Each "component" is a shell snippet run as sh -c <name>, so the
	// middle one failing must leave the third untouched.
	cfg := entities.ComponentConfig{
		Manager: "/bin/sh",
		AddArgs: []string{"-c"},
		Names: []string{
			fmt.Sprintf("touch %q", before),
			"exit 1",
			fmt.Sprintf("touch %q", after),
		},
	}

	gateway := NewToolchainGateway()
	err := gateway.AddComponents(context.Background(), cfg)

	var compErr *entities.ComponentInstallError
	if !errors.As(err, &compErr) {
		t.Fatalf("AddComponents() error = %v, want *entities.ComponentInstallError", err)
	}
	if compErr.Component != "exit 1" {
		t.Errorf("ComponentInstallError.Component = %q, want the failing entry", compErr.Component)
	}

	if _, err := os.Stat(before); err != nil {
		t.Error("component before the failure should have run")
	}
	if _, err := os.Stat(after); err == nil {
		t.Error("component after the failure should not have run")
	}
}
