package gateways

import (
	"context"

	"github.com/ochairo/preflight/internal/domain/entities"
	"github.com/ochairo/preflight/internal/domain/interfaces"
	"github.com/ochairo/preflight/internal/external-adapters/gpg"
	"github.com/ochairo/preflight/internal/external-adapters/minisign"
)

// compositePayloadVerifier implements the PayloadVerifier interface by
// applying every verification the manifest asks for: SHA256 digest,
// detached GPG signature, detached minisign signature. Checks run in that
// order and all requested checks must pass.
type compositePayloadVerifier struct {
	checksum *checksumVerifier
	gpg      *gpg.Verifier
	minisign *minisign.Verifier
	logger   interfaces.Logger
}

// NewPayloadVerifier creates a composite verifier with all dependencies
func NewPayloadVerifier(logger interfaces.Logger) *compositePayloadVerifier {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &compositePayloadVerifier{
		checksum: NewChecksumVerifier(),
		gpg:      gpg.NewVerifier(),
		minisign: minisign.NewVerifier(),
		logger:   logger,
	}
}

// Verify applies the manifest's verification config to a downloaded
// payload. An empty config is a no-op: manifests without a verify section
// run their installer unverified, like the plain curl-pipe-sh they replace.
func (c *compositePayloadVerifier) Verify(ctx context.Context, payloadPath string, cfg entities.VerifyConfig) error {
	if cfg.SHA256 != "" {
		c.logger.Info("verifying payload checksum", interfaces.F("payload", payloadPath))
		if err := c.checksum.VerifyChecksum(ctx, payloadPath, cfg.SHA256); err != nil {
			return err
		}
	}

	if cfg.GPGSignatureURL != "" {
		c.logger.Info("verifying payload GPG signature",
			interfaces.F("payload", payloadPath),
			interfaces.F("signature_url", cfg.GPGSignatureURL),
		)
		if cfg.GPGKeyFile != "" {
			if err := c.gpg.ImportKeyFromFile(cfg.GPGKeyFile); err != nil {
				return err
			}
		}
		if cfg.GPGKeyURL != "" {
			if err := c.gpg.ImportKeyFromURL(ctx, cfg.GPGKeyURL); err != nil {
				return err
			}
		}
		if err := c.gpg.VerifySignature(ctx, payloadPath, cfg.GPGSignatureURL); err != nil {
			return err
		}
	}

	if cfg.MinisignSigURL != "" {
		c.logger.Info("verifying payload minisign signature",
			interfaces.F("payload", payloadPath),
			interfaces.F("signature_url", cfg.MinisignSigURL),
		)
		if err := c.minisign.VerifyDetached(ctx, payloadPath, cfg.MinisignSigURL, cfg.MinisignKeyFile); err != nil {
			return err
		}
	}

	return nil
}
