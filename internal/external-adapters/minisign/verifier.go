// Package minisign provides minisign signature verification for installer
// payloads, as an alternative to GPG for projects that sign releases with
// minisign keys.
package minisign

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jedisct1/go-minisign"
)

// Verifier verifies detached minisign signatures (pure Go, no sidecar binary)
type Verifier struct {
	httpClient *http.Client
}

// NewVerifier creates a new minisign verifier
func NewVerifier() *Verifier {
	return &Verifier{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// VerifyFile verifies a local detached .minisig signature over a payload
func (v *Verifier) VerifyFile(payloadPath, sigPath, pubKeyPath string) error {
	pubKey, err := minisign.NewPublicKeyFromFile(pubKeyPath)
	if err != nil {
		return fmt.Errorf("read minisign pubkey: %w", err)
	}

	sig, err := minisign.NewSignatureFromFile(sigPath)
	if err != nil {
		return fmt.Errorf("read minisign signature: %w", err)
	}

	//nolint:gosec // G304: payload path is inside our own temp directory
	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	valid, err := pubKey.Verify(payload, sig)
	if err != nil {
		return fmt.Errorf("minisign: verification error: %w", err)
	}
	if !valid {
		return fmt.Errorf("minisign: signature verification failed")
	}

	return nil
}

// VerifyDetached downloads a detached .minisig signature from sigURL and
// verifies it over the payload with the public key at pubKeyPath.
func (v *Verifier) VerifyDetached(ctx context.Context, payloadPath, sigURL, pubKeyPath string) error {
	if pubKeyPath == "" {
		return fmt.Errorf("minisign signature configured but no public key file given")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", sigURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create signature download request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download signature: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("signature download failed with status %d", resp.StatusCode)
	}

	// Minisign signatures are a few hundred bytes
	sigData, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024))
	if err != nil {
		return fmt.Errorf("failed to read signature: %w", err)
	}

	sigFile, err := os.CreateTemp("", "preflight-minisig-*")
	if err != nil {
		return fmt.Errorf("failed to create signature temp file: %w", err)
	}
	//nolint:errcheck // Best effort cleanup
	defer os.Remove(sigFile.Name())

	if _, err := sigFile.Write(sigData); err != nil {
		_ = sigFile.Close()
		return fmt.Errorf("failed to write signature temp file: %w", err)
	}
	if err := sigFile.Close(); err != nil {
		return fmt.Errorf("failed to close signature temp file: %w", err)
	}

	return v.VerifyFile(payloadPath, sigFile.Name(), pubKeyPath)
}
