package types

// Account is one persisted record of the host store.
type Account struct {
	Key     Pubkey `json:"key"`
	Owner   Pubkey `json:"owner"`
	Balance uint64 `json:"balance"`
	Data    []byte `json:"data"`
}

// Clone returns a deep copy so overlays never alias stored data
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	if a.Data != nil {
		cp.Data = make([]byte, len(a.Data))
		copy(cp.Data, a.Data)
	}
	return &cp
}

// IsOwnedBy reports whether program may mutate the record's data
func (a *Account) IsOwnedBy(program Pubkey) bool {
	return a.Owner == program
}

// DataLen is the persisted size used by minimum balance checks.
func (a *Account) DataLen() int {
	return len(a.Data)
}
