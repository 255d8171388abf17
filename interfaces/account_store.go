package interfaces

import (
	"github.com/mezonai/crowdfund/types"
)

// AccountStore is the view of account records a program gets for one call.
// The host guarantees exclusive access to every record for the duration of the
// call and applies the call's writes all-or-nothing.
type AccountStore interface {
	// Get returns the record stored under key
	Get(key types.Pubkey) (*types.Account, error)
	// SetData replaces the record's data entirely
	SetData(key types.Pubkey, data []byte) error
	// GetBalance returns the record's spendable funds
	GetBalance(key types.Pubkey) (uint64, error)
	// Transfer moves amount from one record to another; fails if from holds less than amount
	Transfer(from, to types.Pubkey, amount uint64) error
	// IsSigner reports whether key authorized the current call
	IsSigner(key types.Pubkey) bool
	// Owner returns the program allowed to mutate the record's data
	Owner(key types.Pubkey) (types.Pubkey, error)
}
