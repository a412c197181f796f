package yaml

import (
	"strings"
	"testing"
)

const crossManifestYAML = `
name: cross
description: Zero-setup cross compilation

tag:
  source: git:https://github.com/japaric/cross
  pattern: '^v[0-9.]+$'

installer:
  url: https://japaric.github.io/trust/install.sh
  repo: japaric/cross

targets:
  signal_env: TRAVIS_OS_NAME
  by_os:
    linux: x86_64-unknown-linux-musl
  default: x86_64-apple-darwin

components:
  manager: rustup
  add_args: [component, add]
  names:
    - rustfmt-preview
    - clippy-preview
`

func TestParse_ValidManifest(t *testing.T) {
	parser := NewManifestParser()

	manifest, err := parser.Parse([]byte(crossManifestYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if manifest.Name != "cross" {
		t.Errorf("Name = %q, want %q", manifest.Name, "cross")
	}
	if manifest.Tag.Source != "git:https://github.com/japaric/cross" {
		t.Errorf("Tag.Source = %q", manifest.Tag.Source)
	}
	if manifest.Tag.Pattern != `^v[0-9.]+$` {
		t.Errorf("Tag.Pattern = %q", manifest.Tag.Pattern)
	}
	if manifest.Installer.Repo != "japaric/cross" {
		t.Errorf("Installer.Repo = %q", manifest.Installer.Repo)
	}
	if manifest.Targets.SignalEnv != "TRAVIS_OS_NAME" {
		t.Errorf("Targets.SignalEnv = %q", manifest.Targets.SignalEnv)
	}
	if got := manifest.Targets.ByOS["linux"]; got != "x86_64-unknown-linux-musl" {
		t.Errorf("Targets.ByOS[linux] = %q", got)
	}
	if manifest.Targets.Default != "x86_64-apple-darwin" {
		t.Errorf("Targets.Default = %q", manifest.Targets.Default)
	}
	if manifest.Components.Manager != "rustup" {
		t.Errorf("Components.Manager = %q", manifest.Components.Manager)
	}
	if len(manifest.Components.Names) != 2 {
		t.Errorf("Components.Names = %v, want 2 entries", manifest.Components.Names)
	}
}

func TestParse_InvalidManifests(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing required name",
			yaml: `
tag:
  source: github:japaric/cross
installer:
  url: https://example.com/install.sh
  repo: japaric/cross
targets:
  default: x86_64-apple-darwin
`,
		},
		{
			name: "missing installer section",
			yaml: `
name: cross
tag:
  source: github:japaric/cross
targets:
  default: x86_64-apple-darwin
`,
		},
		{
			name: "tag source with unknown scheme",
			yaml: `
name: cross
tag:
  source: ftp://example.com/tags
installer:
  url: https://example.com/install.sh
  repo: japaric/cross
targets:
  default: x86_64-apple-darwin
`,
		},
		{
			name: "wrong type for components names",
			yaml: `
name: cross
tag:
  source: github:japaric/cross
installer:
  url: https://example.com/install.sh
  repo: japaric/cross
targets:
  default: x86_64-apple-darwin
components:
  manager: rustup
  names: rustfmt-preview
`,
		},
		{
			name: "unknown top-level key",
			yaml: `
name: cross
tag:
  source: github:japaric/cross
installer:
  url: https://example.com/install.sh
  repo: japaric/cross
targets:
  default: x86_64-apple-darwin
channel: stable
`,
		},
		{
			name: "not yaml at all",
			yaml: `{{{`,
		},
	}

	parser := NewManifestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parser.Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() expected error, got nil")
			}
		})
	}
}

func TestParse_SchemaErrorNamesTheProblem(t *testing.T) {
	parser := NewManifestParser()

	_, err := parser.Parse([]byte(`
tag:
  source: github:japaric/cross
installer:
  url: https://example.com/install.sh
  repo: japaric/cross
targets:
  default: x86_64-apple-darwin
`))
	if err == nil {
		t.Fatal("Parse() expected schema error")
	}
	if !strings.Contains(err.Error(), "schema validation failed") {
		t.Errorf("Parse() error = %v, want schema validation mention", err)
	}
}
