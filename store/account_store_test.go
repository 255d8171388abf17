package store

import (
	"testing"

	"github.com/mezonai/crowdfund/db"
	"github.com/mezonai/crowdfund/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(b byte) types.Pubkey {
	var pk types.Pubkey
	pk[0] = b
	return pk
}

func newMemoryAccountStore(t *testing.T) *GenericAccountStore {
	t.Helper()
	as, err := NewGenericAccountStore(db.NewMemoryProvider())
	require.NoError(t, err)
	return as
}

func TestAccountStoreRoundTrip(t *testing.T) {
	as := newMemoryAccountStore(t)

	acc := &types.Account{Key: key(1), Owner: key(9), Balance: 42, Data: []byte{1, 2, 3}}
	require.NoError(t, as.Store(acc))

	got, err := as.GetByKey(key(1))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, acc, got)

	missing, err := as.GetByKey(key(2))
	require.NoError(t, err)
	assert.Nil(t, missing)

	exists, err := as.ExistsByKey(key(1))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAccountStoreGetBatchMarksMissing(t *testing.T) {
	as := newMemoryAccountStore(t)
	require.NoError(t, as.StoreBatch([]*types.Account{
		{Key: key(1), Balance: 1},
		{Key: key(2), Balance: 2},
	}))

	got, err := as.GetBatch([]types.Pubkey{key(1), key(2), key(3)})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, uint64(1), got[key(1)].Balance)
	assert.Equal(t, uint64(2), got[key(2)].Balance)
	assert.Nil(t, got[key(3)])
}

func TestAccountStoreListByOwner(t *testing.T) {
	as := newMemoryAccountStore(t)
	program := key(200)
	require.NoError(t, as.StoreBatch([]*types.Account{
		{Key: key(1), Owner: program},
		{Key: key(2), Owner: types.SystemProgramID},
		{Key: key(3), Owner: program},
	}))

	owned, err := as.ListByOwner(program)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	for _, acc := range owned {
		assert.Equal(t, program, acc.Owner)
	}
}

func TestStateMetaStoreInBatch(t *testing.T) {
	provider := db.NewMemoryProvider()
	meta := NewGenericStateMetaStore(provider)

	initial, err := meta.GetExecutionMeta()
	require.NoError(t, err)
	assert.Equal(t, ExecutionMeta{}, initial)

	want := ExecutionMeta{Sequence: 7}
	want.StateHash[0] = 0xAB

	err = db.NewDBTxManager(provider).WithBatch(func(batch db.DatabaseBatch) error {
		meta.PutExecutionMetaInBatch(batch, want)
		return nil
	})
	require.NoError(t, err)

	got, err := meta.GetExecutionMeta()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStoreConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     StoreConfig
		wantErr bool
	}{
		{"leveldb ok", StoreConfig{Type: LevelDBStoreType, Directory: "data"}, false},
		{"leveldb missing dir", StoreConfig{Type: LevelDBStoreType}, true},
		{"redis missing addr", StoreConfig{Type: RedisStoreType}, true},
		{"memory", StoreConfig{Type: MemoryStoreType}, false},
		{"empty", StoreConfig{}, true},
		{"unknown", StoreConfig{Type: "rocksdb", Directory: "data"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateStoreBolt(t *testing.T) {
	accounts, meta, err := CreateStore(&StoreConfig{Type: BoltStoreType, Directory: t.TempDir()})
	require.NoError(t, err)
	defer accounts.MustClose()

	require.NoError(t, accounts.Store(&types.Account{Key: key(5), Balance: 10}))
	got, err := accounts.GetByKey(key(5))
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got.Balance)

	m, err := meta.GetExecutionMeta()
	require.NoError(t, err)
	assert.Zero(t, m.Sequence)
}
