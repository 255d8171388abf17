package store

import (
	"fmt"
	"sync"

	"github.com/mezonai/crowdfund/db"
	"github.com/mezonai/crowdfund/jsonx"
	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/types"
)

type AccountStore interface {
	Store(account *types.Account) error
	StoreBatch(accounts []*types.Account) error
	StoreInBatch(batch db.DatabaseBatch, accounts []*types.Account) error
	GetByKey(key types.Pubkey) (*types.Account, error)
	GetBatch(keys []types.Pubkey) (map[types.Pubkey]*types.Account, error)
	ExistsByKey(key types.Pubkey) (bool, error)
	ListByOwner(owner types.Pubkey) ([]*types.Account, error)
	MustClose()
}

type GenericAccountStore struct {
	mu         sync.RWMutex
	dbProvider db.DatabaseProvider
	txManager  *db.DBTxManager
}

func NewGenericAccountStore(dbProvider db.DatabaseProvider) (*GenericAccountStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericAccountStore{
		dbProvider: dbProvider,
		txManager:  db.NewDBTxManager(dbProvider),
	}, nil
}

func (as *GenericAccountStore) Store(account *types.Account) error {
	return as.StoreBatch([]*types.Account{account})
}

// StoreBatch writes all accounts in one atomic batch
func (as *GenericAccountStore) StoreBatch(accounts []*types.Account) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	err := as.txManager.WithBatch(func(batch db.DatabaseBatch) error {
		return as.putAll(batch, accounts)
	})
	if err != nil {
		return fmt.Errorf("failed to write batch of accounts to database: %w", err)
	}
	return nil
}

// StoreInBatch stages accounts into a batch owned by the caller, so account
// updates can commit together with other stores sharing the provider.
func (as *GenericAccountStore) StoreInBatch(batch db.DatabaseBatch, accounts []*types.Account) error {
	return as.putAll(batch, accounts)
}

func (as *GenericAccountStore) putAll(batch db.DatabaseBatch, accounts []*types.Account) error {
	for _, account := range accounts {
		accountData, err := EncodeAccount(account)
		if err != nil {
			return err
		}
		batch.Put(as.getDbKey(account.Key), accountData)
	}
	return nil
}

// GetByKey returns account instance from db, return both nil if not exist
func (as *GenericAccountStore) GetByKey(key types.Pubkey) (*types.Account, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	data, err := as.dbProvider.Get(as.getDbKey(key))
	if err != nil {
		return nil, fmt.Errorf("could not get account %s from db: %w", key, err)
	}
	if data == nil {
		return nil, nil
	}

	return DecodeAccount(data)
}

// GetBatch retrieves multiple accounts by key. Missing accounts return as nil entries.
func (as *GenericAccountStore) GetBatch(keys []types.Pubkey) (map[types.Pubkey]*types.Account, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	dbKeys := make([][]byte, len(keys))
	for i, key := range keys {
		dbKeys[i] = as.getDbKey(key)
	}
	raw, err := as.dbProvider.GetBatch(dbKeys)
	if err != nil {
		return nil, fmt.Errorf("could not get accounts from db: %w", err)
	}

	result := make(map[types.Pubkey]*types.Account, len(keys))
	for i, key := range keys {
		data, ok := raw[string(dbKeys[i])]
		if !ok {
			result[key] = nil
			continue
		}
		acc, err := DecodeAccount(data)
		if err != nil {
			return nil, err
		}
		result[key] = acc
	}
	return result, nil
}

func (as *GenericAccountStore) ExistsByKey(key types.Pubkey) (bool, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	return as.dbProvider.Has(as.getDbKey(key))
}

// ListByOwner scans every account and keeps those owned by owner. Requires an iterable provider.
func (as *GenericAccountStore) ListByOwner(owner types.Pubkey) ([]*types.Account, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	iterable, ok := as.dbProvider.(db.IterableProvider)
	if !ok {
		return nil, fmt.Errorf("provider %T does not support iteration", as.dbProvider)
	}

	accounts := make([]*types.Account, 0)
	var decodeErr error
	err := iterable.IteratePrefix([]byte(PrefixAccount), func(key, value []byte) bool {
		acc, err := DecodeAccount(value)
		if err != nil {
			decodeErr = fmt.Errorf("account at %q: %w", key, err)
			return false
		}
		if acc.IsOwnedBy(owner) {
			accounts = append(accounts, acc)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return accounts, nil
}

func (as *GenericAccountStore) MustClose() {
	err := as.dbProvider.Close()
	if err != nil {
		logx.Error("STORE", "Failed to close db provider:", err.Error())
	}
}

func (as *GenericAccountStore) getDbKey(key types.Pubkey) []byte {
	return []byte(PrefixAccount + key.String())
}

// EncodeAccount is the persisted JSON form of an account record
func EncodeAccount(account *types.Account) ([]byte, error) {
	data, err := jsonx.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account %s: %w", account.Key, err)
	}
	return data, nil
}

func DecodeAccount(data []byte) (*types.Account, error) {
	var acc types.Account
	if err := jsonx.Unmarshal(data, &acc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	return &acc, nil
}
