// Package yaml provides YAML-based manifest parsing and repository
// implementations, with JSON Schema validation of the raw document.
package yaml

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/ochairo/preflight/internal/domain/entities"
)

//go:embed manifest.schema.json
var manifestSchema string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// compiledSchema compiles the embedded manifest schema once
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(manifestSchema))
		if err != nil {
			schemaErr = fmt.Errorf("failed to read embedded schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("manifest.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("failed to register embedded schema: %w", err)
			return
		}

		schema, schemaErr = compiler.Compile("manifest.schema.json")
	})
	return schema, schemaErr
}

// yamlManifest represents the raw YAML structure
type yamlManifest struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Tag         yamlTag        `yaml:"tag"`
	Installer   yamlInstaller  `yaml:"installer"`
	Targets     yamlTargets    `yaml:"targets"`
	Components  yamlComponents `yaml:"components"`
}

type yamlTag struct {
	Source  string `yaml:"source"`
	Pattern string `yaml:"pattern"`
}

type yamlInstaller struct {
	URL            string     `yaml:"url"`
	Repo           string     `yaml:"repo"`
	ExtraArgs      []string   `yaml:"extra_args"`
	TimeoutMinutes int        `yaml:"timeout_minutes"`
	Verify         yamlVerify `yaml:"verify"`
}

type yamlVerify struct {
	SHA256          string `yaml:"sha256"`
	GPGKeyFile      string `yaml:"gpg_key_file"`
	GPGKeyURL       string `yaml:"gpg_key_url"`
	GPGSignatureURL string `yaml:"gpg_signature_url"`
	MinisignKeyFile string `yaml:"minisign_key_file"`
	MinisignSigURL  string `yaml:"minisign_signature_url"`
}

type yamlTargets struct {
	SignalEnv string            `yaml:"signal_env"`
	ByOS      map[string]string `yaml:"by_os"`
	Default   string            `yaml:"default"`
}

type yamlComponents struct {
	Manager string   `yaml:"manager"`
	AddArgs []string `yaml:"add_args"`
	Names   []string `yaml:"names"`
}

// ManifestParser parses YAML manifest files
type ManifestParser struct{}

// NewManifestParser creates a new YAML parser
func NewManifestParser() *ManifestParser {
	return &ManifestParser{}
}

// ParseFile parses a YAML manifest file into a Manifest entity
func (p *ManifestParser) ParseFile(filePath string) (*entities.Manifest, error) {
	//nolint:gosec // G304: filePath is a manifest path from the repository
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse validates YAML bytes against the manifest schema and converts them
// into a Manifest entity.
func (p *ManifestParser) Parse(data []byte) (*entities.Manifest, error) {
	if err := p.validate(data); err != nil {
		return nil, err
	}

	var raw yamlManifest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	manifest := &entities.Manifest{
		Name:        raw.Name,
		Description: raw.Description,
		Tag: entities.TagConfig{
			Source:  raw.Tag.Source,
			Pattern: raw.Tag.Pattern,
		},
		Installer: entities.InstallerConfig{
			URL:            raw.Installer.URL,
			Repo:           raw.Installer.Repo,
			ExtraArgs:      raw.Installer.ExtraArgs,
			TimeoutMinutes: raw.Installer.TimeoutMinutes,
			Verify: entities.VerifyConfig{
				SHA256:          raw.Installer.Verify.SHA256,
				GPGKeyFile:      raw.Installer.Verify.GPGKeyFile,
				GPGKeyURL:       raw.Installer.Verify.GPGKeyURL,
				GPGSignatureURL: raw.Installer.Verify.GPGSignatureURL,
				MinisignKeyFile: raw.Installer.Verify.MinisignKeyFile,
				MinisignSigURL:  raw.Installer.Verify.MinisignSigURL,
			},
		},
		Targets: entities.TargetMap{
			SignalEnv: raw.Targets.SignalEnv,
			ByOS:      raw.Targets.ByOS,
			Default:   raw.Targets.Default,
		},
		Components: entities.ComponentConfig{
			Manager: raw.Components.Manager,
			AddArgs: raw.Components.AddArgs,
			Names:   raw.Components.Names,
		},
	}

	return manifest, nil
}

// validate checks the raw document against the embedded JSON Schema. The
// YAML is round-tripped through JSON because the validator speaks JSON
// values, not yaml.Node trees.
func (p *ManifestParser) validate(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert manifest to JSON: %w", err)
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("failed to reload manifest for validation: %w", err)
	}

	if err := sch.Validate(instance); err != nil {
		return fmt.Errorf("manifest schema validation failed: %w", err)
	}
	return nil
}
