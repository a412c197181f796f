// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/preflight/internal/domain/entities"
)

// TagLister defines the remote tag listing query. Implementations return
// the raw tag names in remote order; filtering and version selection happen
// in the domain services.
type TagLister interface {
	// ListTags lists all tags for a source reference such as
	// "github:owner/repo" or "git:https://host/owner/repo"
	ListTags(ctx context.Context, source string) ([]string, error)
}

// Installer defines the external installer invocation: download the
// installer payload, verify it per manifest, execute it with the resolved
// invocation flags.
type Installer interface {
	Install(ctx context.Context, manifest *entities.Manifest, inv entities.Invocation) error
}

// ToolchainManager defines the host toolchain's "add component" operation.
// Implementations abort on the first rejected component.
type ToolchainManager interface {
	AddComponents(ctx context.Context, cfg entities.ComponentConfig) error
}

// PayloadVerifier verifies a downloaded installer payload before execution.
// An empty VerifyConfig is a no-op.
type PayloadVerifier interface {
	Verify(ctx context.Context, payloadPath string, cfg entities.VerifyConfig) error
}
