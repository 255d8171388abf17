package ledger

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
	"github.com/mezonai/crowdfund/errors"
	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/store"
	"github.com/mezonai/crowdfund/types"
)

// Session is the account view one program call runs on. Reads are copied out of
// the base store on first access and every write stays in the overlay until the
// ledger commits it; dropping the session discards the call's effects.
type Session struct {
	base     store.AccountStore
	program  types.Pubkey
	allowed  map[types.Pubkey]bool
	signers  map[types.Pubkey]bool
	overlay  map[types.Pubkey]*types.Account
	original map[types.Pubkey]uint64
	dirty    map[types.Pubkey]bool
}

func newSession(base store.AccountStore, program types.Pubkey, keys []types.Pubkey, signers map[types.Pubkey]bool) *Session {
	allowed := make(map[types.Pubkey]bool, len(keys))
	for _, k := range keys {
		allowed[k] = true
	}
	if signers == nil {
		signers = make(map[types.Pubkey]bool)
	}
	return &Session{
		base:     base,
		program:  program,
		allowed:  allowed,
		signers:  signers,
		overlay:  make(map[types.Pubkey]*types.Account),
		original: make(map[types.Pubkey]uint64),
		dirty:    make(map[types.Pubkey]bool),
	}
}

// lookup returns the overlay copy of key, nil when the account does not exist
func (s *Session) lookup(key types.Pubkey) (*types.Account, error) {
	if !s.allowed[key] {
		return nil, errors.NewError(errors.ErrCodeAccountNotFound, "account %s was not passed to the instruction", key)
	}
	if acc, ok := s.overlay[key]; ok {
		return acc, nil
	}
	base, err := s.base.GetByKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", key, err)
	}
	if base == nil {
		return nil, nil
	}
	cp := base.Clone()
	s.overlay[key] = cp
	s.original[key] = cp.Balance
	return cp, nil
}

func (s *Session) load(key types.Pubkey) (*types.Account, error) {
	acc, err := s.lookup(key)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, errors.NewError(errors.ErrCodeAccountNotFound, "account %s not found", key)
	}
	return acc, nil
}

// loadOrCreate materializes a system-owned empty account for a transfer destination
func (s *Session) loadOrCreate(key types.Pubkey) (*types.Account, error) {
	acc, err := s.lookup(key)
	if err != nil {
		return nil, err
	}
	if acc != nil {
		return acc, nil
	}
	acc = &types.Account{Key: key, Owner: types.SystemProgramID}
	s.overlay[key] = acc
	s.original[key] = 0
	return acc, nil
}

func (s *Session) Get(key types.Pubkey) (*types.Account, error) {
	acc, err := s.load(key)
	if err != nil {
		return nil, err
	}
	return acc.Clone(), nil
}

func (s *Session) SetData(key types.Pubkey, data []byte) error {
	acc, err := s.load(key)
	if err != nil {
		return err
	}
	if acc.Owner != s.program {
		return errors.NewError(errors.ErrCodeIncorrectOwner, "program %s may not modify data of %s", s.program, key)
	}
	acc.Data = append([]byte(nil), data...)
	s.dirty[key] = true
	return nil
}

func (s *Session) GetBalance(key types.Pubkey) (uint64, error) {
	acc, err := s.load(key)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// Transfer debits from, which must be owned by the running program, and credits to
func (s *Session) Transfer(from, to types.Pubkey, amount uint64) error {
	src, err := s.load(from)
	if err != nil {
		return err
	}
	if src.Owner != s.program {
		return errors.NewError(errors.ErrCodeIncorrectOwner, "program %s may not debit %s", s.program, from)
	}
	dst, err := s.loadOrCreate(to)
	if err != nil {
		return err
	}
	if src.Balance < amount {
		return errors.NewError(errors.ErrCodeInsufficientFunds, errors.ErrMsgInsufficientBalance, src.Balance, amount)
	}
	if from == to {
		return nil
	}
	if dst.Balance > math.MaxUint64-amount {
		return errors.NewError(errors.ErrCodeArithmeticOverflow, "balance of %s overflows", to)
	}

	src.Balance -= amount
	dst.Balance += amount
	s.dirty[from] = true
	s.dirty[to] = true
	return nil
}

func (s *Session) IsSigner(key types.Pubkey) bool {
	return s.signers[key]
}

func (s *Session) Owner(key types.Pubkey) (types.Pubkey, error) {
	acc, err := s.load(key)
	if err != nil {
		return types.Pubkey{}, err
	}
	return acc.Owner, nil
}

// Create allocates a zeroed record of space bytes owned by owner. Only the
// system program is handed this capability.
func (s *Session) Create(key, owner types.Pubkey, space int) error {
	if s.program != types.SystemProgramID {
		return errors.NewError(errors.ErrCodeIncorrectOwner, "program %s may not create accounts", s.program)
	}
	existing, err := s.lookup(key)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.NewError(errors.ErrCodeAccountExists, "account %s already exists", key)
	}
	s.overlay[key] = &types.Account{Key: key, Owner: owner, Data: make([]byte, space)}
	s.original[key] = 0
	s.dirty[key] = true
	return nil
}

// checkBalanced verifies the call neither minted nor burned lamports
func (s *Session) checkBalanced() error {
	before, after := new(uint256.Int), new(uint256.Int)
	for key, acc := range s.overlay {
		before.Add(before, uint256.NewInt(s.original[key]))
		after.Add(after, uint256.NewInt(acc.Balance))
	}
	if !before.Eq(after) {
		logx.Error("LEDGER", fmt.Sprintf("Unbalanced instruction by %s: before=%s after=%s", s.program, before, after))
		return errors.NewError(errors.ErrCodeInvalidAccountData, errors.ErrMsgUnbalancedInstruction)
	}
	return nil
}

func (s *Session) dirtyAccounts() []*types.Account {
	out := make([]*types.Account, 0, len(s.dirty))
	for key := range s.dirty {
		out = append(out, s.overlay[key].Clone())
	}
	return out
}
