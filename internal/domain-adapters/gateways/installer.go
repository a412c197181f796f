package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/ochairo/preflight/internal/domain/entities"
	"github.com/ochairo/preflight/internal/domain/interfaces/gateways"
)

const defaultInstallTimeout = 10 * time.Minute

// ScriptInstaller downloads a remote installer payload, verifies it, and
// executes it with the resolved invocation flags. The payload lands in a
// temp directory that is removed afterwards; only the installed binary
// survives on the host.
type ScriptInstaller struct {
	httpClient     *http.Client
	verifier       gateways.PayloadVerifier
	defaultTimeout time.Duration
}

// NewScriptInstaller creates an installer gateway. The verifier may be nil,
// in which case payloads run unverified (matching manifests without a
// verify section).
func NewScriptInstaller(verifier gateways.PayloadVerifier, timeout time.Duration) *ScriptInstaller {
	if timeout <= 0 {
		timeout = defaultInstallTimeout
	}
	return &ScriptInstaller{
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // Long timeout for slow mirrors
		},
		verifier:       verifier,
		defaultTimeout: timeout,
	}
}

// Install runs the full download -> verify -> execute sequence. Every
// failure is an *entities.InstallerError tagged with the stage it died in.
func (s *ScriptInstaller) Install(ctx context.Context, manifest *entities.Manifest, inv entities.Invocation) error {
	tmpDir, err := os.MkdirTemp("", "preflight-*")
	if err != nil {
		return &entities.InstallerError{Stage: "download", Err: fmt.Errorf("failed to create temp dir: %w", err)}
	}
	//nolint:errcheck // Best effort cleanup of temp dir
	defer os.RemoveAll(tmpDir)

	payloadPath := filepath.Join(tmpDir, "install.sh")
	if err := s.downloadPayload(ctx, manifest.Installer.URL, payloadPath); err != nil {
		return &entities.InstallerError{Stage: "download", Err: err}
	}

	if s.verifier != nil {
		if err := s.verifier.Verify(ctx, payloadPath, manifest.Installer.Verify); err != nil {
			return &entities.InstallerError{Stage: "verify", Err: err}
		}
	}

	return s.execute(ctx, manifest, payloadPath, inv)
}

// downloadPayload fetches the installer script to dest
func (s *ScriptInstaller) downloadPayload(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "preflight/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	//nolint:gosec // G304: dest is inside our own temp directory
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0700)
	if err != nil {
		return fmt.Errorf("failed to create payload file: %w", err)
	}
	//nolint:errcheck // Defer close on file being written
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Downloaded installer (%d bytes)\n", written)
	return nil
}

// execute runs the payload under /bin/sh with the invocation flags followed
// by any extra manifest args.
func (s *ScriptInstaller) execute(ctx context.Context, manifest *entities.Manifest, payloadPath string, inv entities.Invocation) error {
	timeout := s.defaultTimeout
	if manifest.Installer.TimeoutMinutes > 0 {
		timeout = time.Duration(manifest.Installer.TimeoutMinutes) * time.Minute
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append([]string{payloadPath}, inv.Flags()...)
	args = append(args, manifest.Installer.ExtraArgs...)

	//nolint:gosec // G204: Executing the downloaded installer is the whole point
	cmd := exec.CommandContext(execCtx, "/bin/sh", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	fmt.Fprintf(os.Stderr, "Installing %s %s for %s\n", manifest.Name, inv.Tag, inv.Target)

	err := cmd.Run()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if execCtx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("installer timeout after %v", timeout)
		}
		return &entities.InstallerError{
			Stage:    "execute",
			ExitCode: exitCode,
			Err:      fmt.Errorf("%w\nStderr: %s", err, stderr.String()),
		}
	}

	if stdout.Len() > 0 {
		fmt.Fprintf(os.Stderr, "Installer output: %s\n", stdout.String())
	}
	return nil
}
