package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainDocument      = "phpunitxml/document/v1"
	DomainConfiguration = "phpunitxml/configuration/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentDigest identifies the raw bytes of a configuration document.
func DocumentDigest(data []byte) string {
	return hashWithDomain(DomainDocument, data)
}

// ConfigurationDigest identifies the resolved content of a configuration.
// Path and Digest are excluded so that the same content at two locations
// hashes identically.
func ConfigurationDigest(cfg *Configuration) (string, error) {
	c := *cfg
	c.Path = ""
	c.Digest = ""

	canonical, err := MarshalCanonical(&c)
	if err != nil {
		return "", fmt.Errorf("ConfigurationDigest: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainConfiguration, canonical), nil
}
