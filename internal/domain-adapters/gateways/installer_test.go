package gateways

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ochairo/preflight/internal/domain/entities"
)

type failingVerifier struct {
	err error
}

func (v *failingVerifier) Verify(_ context.Context, _ string, _ entities.VerifyConfig) error {
	return v.err
}

func serveScript(t *testing.T, script string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(script))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestScriptInstaller_PassesInvocationFlags(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args.txt")
	server := serveScript(t, fmt.Sprintf("#!/bin/sh\necho \"$@\" > %q\n", argsFile))

	manifest := &entities.Manifest{
		Name:      "cross",
		Installer: entities.InstallerConfig{URL: server.URL},
	}
	inv := entities.Invocation{
		Force:  true,
		Repo:   "japaric/cross",
		Tag:    "v1.2.0",
		Target: "x86_64-unknown-linux-musl",
	}

	installer := NewScriptInstaller(nil, time.Minute)
	if err := installer.Install(context.Background(), manifest, inv); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	got, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("installer script never ran: %v", err)
	}
	want := "--force --git japaric/cross --tag v1.2.0 --target x86_64-unknown-linux-musl"
	if strings.TrimSpace(string(got)) != want {
		t.Errorf("installer args = %q, want %q", strings.TrimSpace(string(got)), want)
	}
}

func TestScriptInstaller_ExtraArgsAppended(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args.txt")
	server := serveScript(t, fmt.Sprintf("#!/bin/sh\necho \"$@\" > %q\n", argsFile))

	manifest := &entities.Manifest{
		Name: "cross",
		Installer: entities.InstallerConfig{
			URL:       server.URL,
			ExtraArgs: []string{"--to", "/usr/local/bin"},
		},
	}
	inv := entities.Invocation{Force: true, Repo: "japaric/cross", Tag: "v0.1.16", Target: "x86_64-apple-darwin"}

	installer := NewScriptInstaller(nil, time.Minute)
	if err := installer.Install(context.Background(), manifest, inv); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	got, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("installer script never ran: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(string(got)), "--to /usr/local/bin") {
		t.Errorf("installer args = %q, want extra args last", strings.TrimSpace(string(got)))
	}
}

func TestScriptInstaller_ExecuteFailure(t *testing.T) {
	server := serveScript(t, "#!/bin/sh\nexit 3\n")

	manifest := &entities.Manifest{
		Name:      "cross",
		Installer: entities.InstallerConfig{URL: server.URL},
	}

	installer := NewScriptInstaller(nil, time.Minute)
	err := installer.Install(context.Background(), manifest, entities.Invocation{Tag: "v1.0.0"})
	if err == nil {
		t.Fatal("Install() expected error for failing installer")
	}

	var instErr *entities.InstallerError
	if !errors.As(err, &instErr) {
		t.Fatalf("Install() error = %T, want *entities.InstallerError", err)
	}
	if instErr.Stage != "execute" {
		t.Errorf("InstallerError.Stage = %q, want %q", instErr.Stage, "execute")
	}
	if instErr.ExitCode != 3 {
		t.Errorf("InstallerError.ExitCode = %d, want 3", instErr.ExitCode)
	}
}

func TestScriptInstaller_DownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	manifest := &entities.Manifest{
		Name:      "cross",
		Installer: entities.InstallerConfig{URL: server.URL},
	}

	installer := NewScriptInstaller(nil, time.Minute)
	err := installer.Install(context.Background(), manifest, entities.Invocation{})

	var instErr *entities.InstallerError
	if !errors.As(err, &instErr) {
		t.Fatalf("Install() error = %v, want *entities.InstallerError", err)
	}
	if instErr.Stage != "download" {
		t.Errorf("InstallerError.Stage = %q, want %q", instErr.Stage, "download")
	}
}

func TestScriptInstaller_VerifyFailure(t *testing.T) {
	server := serveScript(t, "#!/bin/sh\nexit 0\n")

	verifyErr := errors.New("checksum mismatch")
	installer := NewScriptInstaller(&failingVerifier{err: verifyErr}, time.Minute)

	manifest := &entities.Manifest{
		Name:      "cross",
		Installer: entities.InstallerConfig{URL: server.URL},
	}

	err := installer.Install(context.Background(), manifest, entities.Invocation{})

	var instErr *entities.InstallerError
	if !errors.As(err, &instErr) {
		t.Fatalf("Install() error = %v, want *entities.InstallerError", err)
	}
	if instErr.Stage != "verify" {
		t.Errorf("InstallerError.Stage = %q, want %q", instErr.Stage, "verify")
	}
	if !errors.Is(err, verifyErr) {
		t.Error("Install() error should wrap the verifier error")
	}
}

func TestScriptInstaller_ManifestTimeout(t *testing.T) {
	server := serveScript(t, "#!/bin/sh\nsleep 10\n")

	manifest := &entities.Manifest{
		Name:      "cross",
		Installer: entities.InstallerConfig{URL: server.URL, TimeoutMinutes: 0},
	}

	// The manifest leaves the timeout unset, so the gateway default applies.
	installer := NewScriptInstaller(nil, 100*time.Millisecond)
	err := installer.Install(context.Background(), manifest, entities.Invocation{})

	var instErr *entities.InstallerError
	if !errors.As(err, &instErr) {
		t.Fatalf("Install() error = %v, want *entities.InstallerError", err)
	}
	if instErr.Stage != "execute" {
		t.Errorf("InstallerError.Stage = %q, want %q", instErr.Stage, "execute")
	}
	if !strings.Contains(instErr.Err.Error(), "timeout") {
		t.Errorf("InstallerError.Err = %v, want timeout mention", instErr.Err)
	}
}
