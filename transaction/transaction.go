package transaction

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/mezonai/crowdfund/common"
	"github.com/mezonai/crowdfund/errors"
	"github.com/mezonai/crowdfund/jsonx"
	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/types"
	"github.com/near/borsh-go"
)

// Limits to prevent DoS via oversized inputs
const (
	maxSignatureBase58Len = 128
)

// AccountMeta is one positional account of an instruction
type AccountMeta struct {
	Key      types.Pubkey `json:"key"`
	IsSigner bool         `json:"is_signer"`
}

// Transaction carries a single instruction for one program together with the
// signatures of every account marked as signer.
type Transaction struct {
	ProgramID  types.Pubkey      `json:"program_id"`
	Accounts   []AccountMeta     `json:"accounts"`
	Data       []byte            `json:"data"`
	Signatures map[string]string `json:"signatures,omitempty"`
}

type messageLayout struct {
	ProgramID types.Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

func NewTransaction(programID types.Pubkey, data []byte, accounts ...AccountMeta) *Transaction {
	return &Transaction{
		ProgramID:  programID,
		Accounts:   accounts,
		Data:       data,
		Signatures: make(map[string]string),
	}
}

func Signer(key types.Pubkey) AccountMeta {
	return AccountMeta{Key: key, IsSigner: true}
}

func ReadOnly(key types.Pubkey) AccountMeta {
	return AccountMeta{Key: key}
}

// Message is the signed payload: program id, every account meta in order, then the data
func (tx *Transaction) Message() []byte {
	msg, err := borsh.Serialize(messageLayout{
		ProgramID: tx.ProgramID,
		Accounts:  tx.Accounts,
		Data:      tx.Data,
	})
	if err != nil {
		// only reachable for unsupported field kinds, which the layout does not have
		panic(fmt.Sprintf("failed to serialize transaction message: %v", err))
	}
	return msg
}

// Keys returns the positional account keys handed to the program
func (tx *Transaction) Keys() []types.Pubkey {
	keys := make([]types.Pubkey, len(tx.Accounts))
	for i, meta := range tx.Accounts {
		keys[i] = meta.Key
	}
	return keys
}

// Sign adds the signature of priv; its public key must be a signer account
func (tx *Transaction) Sign(priv ed25519.PrivateKey) error {
	key, err := types.PubkeyFromBytes(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return err
	}
	if !tx.requiresSignature(key) {
		return fmt.Errorf("key %s is not a signer of this transaction", key)
	}
	if tx.Signatures == nil {
		tx.Signatures = make(map[string]string)
	}
	tx.Signatures[key.String()] = common.EncodeBytesToBase58(ed25519.Sign(priv, tx.Message()))
	return nil
}

// Verify checks the signature of every signer account and returns the signer set
func (tx *Transaction) Verify() (map[types.Pubkey]bool, error) {
	msg := tx.Message()
	signers := make(map[types.Pubkey]bool)
	for _, meta := range tx.Accounts {
		if !meta.IsSigner || signers[meta.Key] {
			continue
		}

		encoded, ok := tx.Signatures[meta.Key.String()]
		if !ok || encoded == "" {
			return nil, errors.NewError(errors.ErrCodeMissingSignature, "missing signature for %s", meta.Key)
		}
		if len(encoded) > maxSignatureBase58Len {
			return nil, errors.NewError(errors.ErrCodeMissingSignature, "signature for %s too large", meta.Key)
		}
		sig, err := common.DecodeBase58ToBytes(encoded)
		if err != nil {
			logx.Error("TRANSACTION", "failed to decode signature", err)
			return nil, errors.Wrap(errors.ErrCodeMissingSignature, err, "invalid signature encoding for %s", meta.Key)
		}
		if !ed25519.Verify(ed25519.PublicKey(meta.Key.Bytes()), msg, sig) {
			return nil, errors.NewError(errors.ErrCodeMissingSignature, "invalid signature for %s", meta.Key)
		}
		signers[meta.Key] = true
	}
	return signers, nil
}

func (tx *Transaction) requiresSignature(key types.Pubkey) bool {
	for _, meta := range tx.Accounts {
		if meta.IsSigner && meta.Key == key {
			return true
		}
	}
	return false
}

func (tx *Transaction) Bytes() []byte {
	b, _ := jsonx.Marshal(tx)
	return b
}

func (tx *Transaction) Hash() string {
	sum256 := sha256.Sum256(tx.Message())
	return hex.EncodeToString(sum256[:])
}
