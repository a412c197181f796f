package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/preflight/internal/domain/entities"
)

// ManifestRepository implements repositories.ManifestRepository using YAML
// files, one manifest per tool under a manifests directory.
type ManifestRepository struct {
	manifestDir string
	parser      *ManifestParser
}

// NewManifestRepository creates a new YAML-based manifest repository
func NewManifestRepository(manifestDir string) *ManifestRepository {
	return &ManifestRepository{
		manifestDir: manifestDir,
		parser:      NewManifestParser(),
	}
}

// GetManifest retrieves a tool manifest by name
func (r *ManifestRepository) GetManifest(_ context.Context, name string) (*entities.Manifest, error) {
	filePath := filepath.Join(r.manifestDir, name+".yml")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("manifest not found: %s", name)
	}

	return r.parser.ParseFile(filePath)
}

// ListManifests returns all available tool manifests
func (r *ManifestRepository) ListManifests(_ context.Context) ([]*entities.Manifest, error) {
	entries, err := os.ReadDir(r.manifestDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest directory: %w", err)
	}

	manifests := make([]*entities.Manifest, 0)
	for _, entry := range entries {
		// Skip non-YAML files
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}

		filePath := filepath.Join(r.manifestDir, entry.Name())
		manifest, err := r.parser.ParseFile(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Fprintf(os.Stderr, "Warning: failed to parse %s: %v\n", entry.Name(), err)
			continue
		}

		manifests = append(manifests, manifest)
	}

	return manifests, nil
}
