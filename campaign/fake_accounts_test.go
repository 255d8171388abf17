package campaign

import (
	"github.com/mezonai/crowdfund/errors"
	"github.com/mezonai/crowdfund/types"
)

// fakeAccounts applies writes immediately, so tests can observe that failed
// operations never reached a mutation.
type fakeAccounts struct {
	accounts map[types.Pubkey]*types.Account
	signers  map[types.Pubkey]bool
	writes   int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		accounts: make(map[types.Pubkey]*types.Account),
		signers:  make(map[types.Pubkey]bool),
	}
}

func (f *fakeAccounts) put(acc *types.Account) {
	f.accounts[acc.Key] = acc
}

func (f *fakeAccounts) sign(key types.Pubkey) {
	f.signers[key] = true
}

func (f *fakeAccounts) account(key types.Pubkey) (*types.Account, error) {
	acc, ok := f.accounts[key]
	if !ok {
		return nil, errors.NewError(errors.ErrCodeAccountNotFound, "account %s not found", key)
	}
	return acc, nil
}

func (f *fakeAccounts) Get(key types.Pubkey) (*types.Account, error) {
	acc, err := f.account(key)
	if err != nil {
		return nil, err
	}
	return acc.Clone(), nil
}

func (f *fakeAccounts) SetData(key types.Pubkey, data []byte) error {
	acc, err := f.account(key)
	if err != nil {
		return err
	}
	acc.Data = append([]byte(nil), data...)
	f.writes++
	return nil
}

func (f *fakeAccounts) GetBalance(key types.Pubkey) (uint64, error) {
	acc, err := f.account(key)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (f *fakeAccounts) Transfer(from, to types.Pubkey, amount uint64) error {
	src, err := f.account(from)
	if err != nil {
		return err
	}
	dst, err := f.account(to)
	if err != nil {
		return err
	}
	if src.Balance < amount {
		return errors.NewError(errors.ErrCodeInsufficientFunds, "transfer")
	}
	src.Balance -= amount
	dst.Balance += amount
	f.writes++
	return nil
}

func (f *fakeAccounts) IsSigner(key types.Pubkey) bool {
	return f.signers[key]
}

func (f *fakeAccounts) Owner(key types.Pubkey) (types.Pubkey, error) {
	acc, err := f.account(key)
	if err != nil {
		return types.Pubkey{}, err
	}
	return acc.Owner, nil
}

func pk(b byte) types.Pubkey {
	var k types.Pubkey
	for i := range k {
		k[i] = b
	}
	return k
}
