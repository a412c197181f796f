package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// checksumVerifier implements checksum verification using pure Go
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// VerifyChecksum verifies a payload's SHA256 digest against an expected hex
// string. Pure Go implementation - no external sha256sum binary needed.
func (v *checksumVerifier) VerifyChecksum(_ context.Context, payloadPath, expectedSum string) error {
	expected := strings.ToLower(strings.TrimSpace(expectedSum))
	if expected == "" {
		return fmt.Errorf("no expected checksum provided")
	}

	actual, err := v.CalculateChecksum(payloadPath)
	if err != nil {
		return err
	}

	if actual != expected {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}

// CalculateChecksum calculates the SHA256 digest of a file
func (v *checksumVerifier) CalculateChecksum(payloadPath string) (string, error) {
	//nolint:gosec // G304: Payload path is inside our own temp directory
	f, err := os.Open(payloadPath)
	if err != nil {
		return "", fmt.Errorf("failed to open payload: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash payload: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
