// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/preflight/internal/domain/entities"
)

// ManifestRepository defines the interface for accessing tool manifests
type ManifestRepository interface {
	// GetManifest retrieves a tool manifest by name
	GetManifest(ctx context.Context, name string) (*entities.Manifest, error)

	// ListManifests returns all available tool manifests
	ListManifests(ctx context.Context) ([]*entities.Manifest, error)
}
