// Package gpg provides GPG signature verification for installer payloads.
package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
)

const armoredSigPrefix = "-----BEGIN PGP SIGNATURE---"

// Verifier implements GPG signature verification using ProtonMail's
// go-crypto, a maintained fork of golang.org/x/crypto/openpgp.
// This is in external-adapters to isolate the external dependency.
type Verifier struct {
	keyring    openpgp.EntityList
	httpClient *http.Client
}

// NewVerifier creates a new GPG verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ImportKeyFromFile imports a GPG public key from a local file,
// accepting armored or binary keyring formats.
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath comes from the tool manifest
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	keys, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		// Try reading as binary
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return fmt.Errorf("failed to reset file: %w", seekErr)
		}
		keys, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(keys) == 0 {
		return fmt.Errorf("no keys found in file")
	}

	v.keyring = append(v.keyring, keys...)
	return nil
}

// ImportKeyFromURL imports armored GPG public keys published at a URL
func (v *Verifier) ImportKeyFromURL(ctx context.Context, keyURL string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", keyURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download key: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("key download failed with status %d", resp.StatusCode)
	}

	// Limit key file size to 1MB; release signing keys are tiny
	keys, err := openpgp.ReadArmoredKeyRing(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return fmt.Errorf("failed to parse key: %w", err)
	}

	if len(keys) == 0 {
		return fmt.Errorf("no keys found at %s", keyURL)
	}

	v.keyring = append(v.keyring, keys...)
	return nil
}

// VerifySignature verifies a detached signature fetched from sigURL against
// a local payload file.
func (v *Verifier) VerifySignature(ctx context.Context, payloadPath, sigURL string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, import a key first")
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

	// GPG signatures are typically under 1KB; cap well above that
	sigData, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024))
	if err != nil {
		return fmt.Errorf("failed to read signature: %w", err)
	}

	if len(sigData) < 10 {
		return fmt.Errorf("signature file too small to be a valid GPG signature")
	}

	//nolint:gosec // G304: payload path is inside our own temp directory
	payload, err := os.Open(payloadPath)
	if err != nil {
		return fmt.Errorf("failed to open payload: %w", err)
	}
	//nolint:errcheck // Defer close
	defer payload.Close()

	return v.checkDetached(payload, bytes.NewReader(sigData), isArmored(sigData))
}

// VerifySignatureFromFile verifies a detached signature from a local file
func (v *Verifier) VerifySignatureFromFile(payloadPath, sigPath string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, import a key first")
	}

	//nolint:gosec // G304: sigPath comes from the tool manifest
	sigData, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("failed to read signature file: %w", err)
	}

	//nolint:gosec // G304: payload path is inside our own temp directory
	payload, err := os.Open(payloadPath)
	if err != nil {
		return fmt.Errorf("failed to open payload: %w", err)
	}
	//nolint:errcheck // Defer close
	defer payload.Close()

	return v.checkDetached(payload, bytes.NewReader(sigData), isArmored(sigData))
}

func (v *Verifier) checkDetached(signed, signature io.Reader, armored bool) error {
	var err error
	if armored {
		_, err = openpgp.CheckArmoredDetachedSignature(v.keyring, signed, signature, nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(v.keyring, signed, signature, nil)
	}
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

func isArmored(sigData []byte) bool {
	return len(sigData) >= len(armoredSigPrefix) &&
		string(sigData[:len(armoredSigPrefix)]) == armoredSigPrefix
}

// KeyringSize returns the number of keys in the keyring
func (v *Verifier) KeyringSize() int {
	return len(v.keyring)
}
