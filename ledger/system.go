package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/mezonai/crowdfund/errors"
	"github.com/mezonai/crowdfund/events"
	"github.com/mezonai/crowdfund/interfaces"
	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/transaction"
	"github.com/mezonai/crowdfund/types"
	"github.com/near/borsh-go"
)

const (
	SystemOpCreateAccountWithSeed byte = 0
	SystemOpTransfer              byte = 1

	// MaxAccountDataLen bounds the space a new record may request
	MaxAccountDataLen = 10 * 1024 * 1024
)

// CreateAccountWithSeed provisions Derived = CreateWithSeed(Base, Seed, Owner).
// Accounts: [funder (signer), derived record, base (signer)]
type CreateAccountWithSeed struct {
	Base     types.Pubkey
	Seed     string
	Lamports uint64
	Space    uint64
	Owner    types.Pubkey
}

// SystemTransfer moves lamports between wallets. Accounts: [from (signer), to]
type SystemTransfer struct {
	Lamports uint64
}

type accountCreator interface {
	Create(key, owner types.Pubkey, space int) error
}

// SystemProgram owns wallets and is the only program able to allocate records
type SystemProgram struct{}

func (SystemProgram) ID() types.Pubkey {
	return types.SystemProgramID
}

func (SystemProgram) Name() string {
	return "system"
}

func (p SystemProgram) Process(accounts interfaces.AccountStore, keys []types.Pubkey, data []byte) (events.LedgerEvent, error) {
	if len(data) == 0 {
		return nil, errors.NewError(errors.ErrCodeInvalidInstructionData, errors.ErrMsgEmptyInstruction)
	}

	switch data[0] {
	case SystemOpCreateAccountWithSeed:
		ins, err := decodeCreateAccountWithSeed(data[1:])
		if err != nil {
			return nil, err
		}
		if len(keys) < 3 {
			return nil, errors.NewError(errors.ErrCodeNotEnoughAccountKeys, errors.ErrMsgNotEnoughAccountKeys, 3, len(keys))
		}
		return nil, p.createAccountWithSeed(accounts, keys[0], keys[1], keys[2], ins)

	case SystemOpTransfer:
		if len(data) != 9 {
			return nil, errors.NewError(errors.ErrCodeInvalidInstructionData, "transfer payload must be 8 bytes, got %d", len(data)-1)
		}
		if len(keys) < 2 {
			return nil, errors.NewError(errors.ErrCodeNotEnoughAccountKeys, errors.ErrMsgNotEnoughAccountKeys, 2, len(keys))
		}
		return nil, p.transfer(accounts, keys[0], keys[1], binary.LittleEndian.Uint64(data[1:]))

	default:
		return nil, errors.NewError(errors.ErrCodeInvalidInstructionData, errors.ErrMsgUnknownInstruction, data[0])
	}
}

func (SystemProgram) createAccountWithSeed(accounts interfaces.AccountStore, funder, derived, base types.Pubkey, ins CreateAccountWithSeed) error {
	if !accounts.IsSigner(funder) {
		return errors.NewError(errors.ErrCodeMissingSignature, "funder %s must sign", funder)
	}
	if !accounts.IsSigner(base) || base != ins.Base {
		return errors.NewError(errors.ErrCodeMissingSignature, "base %s must sign", ins.Base)
	}
	expected, err := types.CreateWithSeed(ins.Base, ins.Seed, ins.Owner)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInstructionData, err, "invalid seed")
	}
	if expected != derived {
		return errors.NewError(errors.ErrCodeInvalidInstructionData, "address %s does not match seed derivation %s", derived, expected)
	}

	creator, ok := accounts.(accountCreator)
	if !ok {
		return fmt.Errorf("account store %T cannot create accounts", accounts)
	}
	if err := creator.Create(derived, ins.Owner, int(ins.Space)); err != nil {
		return err
	}
	if err := accounts.Transfer(funder, derived, ins.Lamports); err != nil {
		return err
	}

	logx.Info("LEDGER", fmt.Sprintf("Created account %s owner=%s space=%d lamports=%d", derived, ins.Owner, ins.Space, ins.Lamports))
	return nil
}

func (SystemProgram) transfer(accounts interfaces.AccountStore, from, to types.Pubkey, lamports uint64) error {
	if !accounts.IsSigner(from) {
		return errors.NewError(errors.ErrCodeMissingSignature, "sender %s must sign", from)
	}
	return accounts.Transfer(from, to, lamports)
}

func decodeCreateAccountWithSeed(payload []byte) (CreateAccountWithSeed, error) {
	var ins CreateAccountWithSeed
	if len(payload) < types.PubkeyLength+4 {
		return ins, errors.NewError(errors.ErrCodeInvalidInstructionData, "create account payload too short")
	}
	seedLen := binary.LittleEndian.Uint32(payload[types.PubkeyLength:])
	if seedLen > types.MaxSeedLength {
		return ins, errors.NewError(errors.ErrCodeInvalidInstructionData, "seed length %d exceeds max %d", seedLen, types.MaxSeedLength)
	}
	if want := types.PubkeyLength + 4 + int(seedLen) + 8 + 8 + types.PubkeyLength; len(payload) != want {
		return ins, errors.NewError(errors.ErrCodeInvalidInstructionData, "create account payload must be %d bytes, got %d", want, len(payload))
	}
	if err := borsh.Deserialize(&ins, payload); err != nil {
		return ins, errors.Wrap(errors.ErrCodeInvalidInstructionData, err, "create account payload could not be deserialized")
	}
	if ins.Space > MaxAccountDataLen {
		return ins, errors.NewError(errors.ErrCodeInvalidInstructionData, "space %d exceeds max %d", ins.Space, MaxAccountDataLen)
	}
	return ins, nil
}

// NewCreateAccountWithSeedTransaction builds the unsigned system transaction
// that provisions the seed-derived record. funder and base must both sign.
func NewCreateAccountWithSeedTransaction(funder types.Pubkey, ins CreateAccountWithSeed) (*transaction.Transaction, types.Pubkey, error) {
	derived, err := types.CreateWithSeed(ins.Base, ins.Seed, ins.Owner)
	if err != nil {
		return nil, types.Pubkey{}, err
	}
	payload, err := borsh.Serialize(ins)
	if err != nil {
		return nil, types.Pubkey{}, fmt.Errorf("failed to serialize create account: %w", err)
	}
	data := append([]byte{SystemOpCreateAccountWithSeed}, payload...)
	tx := transaction.NewTransaction(types.SystemProgramID, data,
		transaction.Signer(funder),
		transaction.ReadOnly(derived),
		transaction.Signer(ins.Base),
	)
	return tx, derived, nil
}

// NewTransferTransaction builds the unsigned system transfer from -> to
func NewTransferTransaction(from, to types.Pubkey, lamports uint64) *transaction.Transaction {
	data := make([]byte, 9)
	data[0] = SystemOpTransfer
	binary.LittleEndian.PutUint64(data[1:], lamports)
	return transaction.NewTransaction(types.SystemProgramID, data,
		transaction.Signer(from),
		transaction.ReadOnly(to),
	)
}
