package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/mezonai/crowdfund/types"
)

// ComputeAccountsDeltaHash computes a deterministic hash over the accounts one
// instruction changed. Each record is encoded as:
// key(32B)|owner(32B)|balance(8B BE)|len(data)(8B BE)|sha256(data)
// Accounts are sorted by key for determinism.
func ComputeAccountsDeltaHash(updated []*types.Account) [32]byte {
	if len(updated) == 0 {
		return [32]byte{}
	}
	sorted := make([]*types.Account, len(updated))
	copy(sorted, updated)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key[:], sorted[j].Key[:]) < 0
	})

	h := sha256.New()
	buf := make([]byte, 8)
	for _, acc := range sorted {
		h.Write(acc.Key[:])
		h.Write(acc.Owner[:])
		binary.BigEndian.PutUint64(buf, acc.Balance)
		h.Write(buf)
		binary.BigEndian.PutUint64(buf, uint64(len(acc.Data)))
		h.Write(buf)
		dataSum := sha256.Sum256(acc.Data)
		h.Write(dataSum[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// CombineStateHash chains the previous state hash with a delta hash.
// new = SHA256(prev || delta). If prev is zero, returns delta.
func CombineStateHash(prev [32]byte, delta [32]byte) [32]byte {
	if prev == ([32]byte{}) {
		return delta
	}
	h := sha256.New()
	h.Write(prev[:])
	h.Write(delta[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
