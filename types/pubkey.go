package types

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	PubkeyLength  = 32
	MaxSeedLength = 32
)

// Pubkey identifies an account record, a signer or a program.
type Pubkey [PubkeyLength]byte

// ZeroPubkey is the identity of records nobody has claimed yet.
var ZeroPubkey Pubkey

// SystemProgramID owns freshly funded wallet accounts.
var SystemProgramID = Pubkey{}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) Bytes() []byte {
	return p[:]
}

func (p Pubkey) IsZero() bool {
	return p == ZeroPubkey
}

func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePubkey decodes a base58 address
func ParsePubkey(s string) (Pubkey, error) {
	var pk Pubkey
	raw, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("invalid base58 address %q: %w", s, err)
	}
	if len(raw) != PubkeyLength {
		return pk, fmt.Errorf("invalid address length %d, expected %d", len(raw), PubkeyLength)
	}
	copy(pk[:], raw)
	return pk, nil
}

// MustParsePubkey is ParsePubkey for constants and tests
func MustParsePubkey(s string) Pubkey {
	pk, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// PubkeyFromBytes copies a 32 byte slice into a Pubkey.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var pk Pubkey
	if len(b) != PubkeyLength {
		return pk, fmt.Errorf("invalid pubkey length %d, expected %d", len(b), PubkeyLength)
	}
	copy(pk[:], b)
	return pk, nil
}

// CreateWithSeed derives sha256(base || seed || owner), the address clients use to
// provision campaign and donation records without holding their private keys.
func CreateWithSeed(base Pubkey, seed string, owner Pubkey) (Pubkey, error) {
	if len(seed) > MaxSeedLength {
		return Pubkey{}, fmt.Errorf("seed length %d exceeds max %d", len(seed), MaxSeedLength)
	}
	h := sha256.New()
	h.Write(base[:])
	h.Write([]byte(seed))
	h.Write(owner[:])

	var pk Pubkey
	copy(pk[:], h.Sum(nil))
	return pk, nil
}
