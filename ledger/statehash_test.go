package ledger

import (
	"testing"

	"github.com/mezonai/crowdfund/types"
)

func TestComputeAccountsDeltaHashIsOrderIndependent(t *testing.T) {
	a := &types.Account{Key: key(1), Balance: 5, Data: []byte{1}}
	b := &types.Account{Key: key(2), Owner: key(9), Balance: 7}

	h1 := ComputeAccountsDeltaHash([]*types.Account{a, b})
	h2 := ComputeAccountsDeltaHash([]*types.Account{b, a})
	if h1 != h2 {
		t.Fatalf("hash depends on order")
	}

	b.Balance++
	if ComputeAccountsDeltaHash([]*types.Account{a, b}) == h1 {
		t.Fatalf("hash ignores balance")
	}
	if ComputeAccountsDeltaHash(nil) != ([32]byte{}) {
		t.Fatalf("empty delta must hash to zero")
	}
}

func TestCombineStateHash(t *testing.T) {
	delta := ComputeAccountsDeltaHash([]*types.Account{{Key: key(1)}})
	if CombineStateHash([32]byte{}, delta) != delta {
		t.Fatalf("zero prev must return delta")
	}
	if CombineStateHash(delta, delta) == delta {
		t.Fatalf("chained hash must differ from delta")
	}
}
