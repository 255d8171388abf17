package common

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// EncodeBytesToBase58 encodes bytes directly to base58
func EncodeBytesToBase58(bytes []byte) string {
	return base58.Encode(bytes)
}

// DecodeBase58ToBytes decodes base58 string to bytes
func DecodeBase58ToBytes(base58Str string) ([]byte, error) {
	bytes, err := base58.Decode(base58Str)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base58 string: %w", err)
	}
	return bytes, nil
}

// IsValidBase58 checks if a string is valid base58
func IsValidBase58(str string) bool {
	decoded, err := base58.Decode(str)
	return err == nil && len(decoded) > 0
}

// ParsePrivateKeyHex accepts either a 32 byte seed or a 64 byte ed25519 private key in hex.
// A full key is seed || public key, so both forms yield the same key pair.
func ParsePrivateKeyHex(privKeyStr string) (ed25519.PrivateKey, error) {
	privBytes, err := hex.DecodeString(strings.TrimSpace(privKeyStr))
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key hex: %w", err)
	}
	if len(privBytes) != ed25519.SeedSize && len(privBytes) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length %d", len(privBytes))
	}
	return ed25519.NewKeyFromSeed(privBytes[:ed25519.SeedSize]), nil
}

// AddressOf returns the base58 address of the key pair's public half
func AddressOf(priv ed25519.PrivateKey) string {
	return base58.Encode(priv.Public().(ed25519.PublicKey))
}
