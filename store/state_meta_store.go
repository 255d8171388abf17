package store

import (
	"encoding/binary"
	"fmt"

	"github.com/mezonai/crowdfund/db"
)

// ExecutionMeta tracks how many instructions have been committed and the rolling
// hash of the account state they produced.
// Value layout: 8-byte big-endian sequence || 32-byte state hash
type ExecutionMeta struct {
	Sequence  uint64
	StateHash [32]byte
}

const executionMetaLen = 8 + 32

type StateMetaStore interface {
	GetExecutionMeta() (ExecutionMeta, error)
	PutExecutionMetaInBatch(batch db.DatabaseBatch, meta ExecutionMeta)
}

type GenericStateMetaStore struct {
	provider db.DatabaseProvider
}

func NewGenericStateMetaStore(provider db.DatabaseProvider) *GenericStateMetaStore {
	return &GenericStateMetaStore{provider: provider}
}

// GetExecutionMeta returns the zero value before the first commit
func (s *GenericStateMetaStore) GetExecutionMeta() (ExecutionMeta, error) {
	value, err := s.provider.Get([]byte(StateMetaKeyExecution))
	if err != nil {
		return ExecutionMeta{}, fmt.Errorf("failed to get execution meta: %w", err)
	}
	if len(value) == 0 {
		return ExecutionMeta{}, nil
	}
	if len(value) != executionMetaLen {
		return ExecutionMeta{}, fmt.Errorf("invalid execution meta length: %d", len(value))
	}

	var meta ExecutionMeta
	meta.Sequence = binary.BigEndian.Uint64(value[:8])
	copy(meta.StateHash[:], value[8:])
	return meta, nil
}

func (s *GenericStateMetaStore) PutExecutionMetaInBatch(batch db.DatabaseBatch, meta ExecutionMeta) {
	value := make([]byte, executionMetaLen)
	binary.BigEndian.PutUint64(value[:8], meta.Sequence)
	copy(value[8:], meta.StateHash[:])
	batch.Put([]byte(StateMetaKeyExecution), value)
}
