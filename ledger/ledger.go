package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/mezonai/crowdfund/config"
	"github.com/mezonai/crowdfund/db"
	"github.com/mezonai/crowdfund/errors"
	"github.com/mezonai/crowdfund/events"
	"github.com/mezonai/crowdfund/interfaces"
	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/monitoring"
	"github.com/mezonai/crowdfund/store"
	"github.com/mezonai/crowdfund/stringutil"
	"github.com/mezonai/crowdfund/transaction"
	"github.com/mezonai/crowdfund/types"
)

// Program is an on-ledger program: it owns accounts and mutates them only
// through the AccountStore handed to each call.
type Program interface {
	ID() types.Pubkey
	Name() string
	Process(accounts interfaces.AccountStore, keys []types.Pubkey, data []byte) (events.LedgerEvent, error)
}

type Ledger struct {
	mu           sync.RWMutex
	accountStore store.AccountStore
	metaStore    store.StateMetaStore
	txManager    *db.DBTxManager
	programs     map[types.Pubkey]Program
	eventBus     *events.EventBus
}

// NewLedger wires the ledger to its stores. Both stores must share one provider
// so that account writes and execution meta land in the same batch.
func NewLedger(accountStore store.AccountStore, metaStore store.StateMetaStore, eventBus *events.EventBus) (*Ledger, error) {
	provider := store.GetProviderFromAccountStore(accountStore)
	if provider == nil {
		return nil, fmt.Errorf("account store %T does not expose a database provider", accountStore)
	}
	l := &Ledger{
		accountStore: accountStore,
		metaStore:    metaStore,
		txManager:    db.NewDBTxManager(provider),
		programs:     make(map[types.Pubkey]Program),
		eventBus:     eventBus,
	}
	l.programs[types.SystemProgramID] = SystemProgram{}
	return l, nil
}

// RegisterProgram makes p executable; program ids are unique
func (l *Ledger) RegisterProgram(p Program) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.programs[p.ID()]; ok {
		return fmt.Errorf("program %s already registered", p.ID())
	}
	l.programs[p.ID()] = p
	logx.Info("LEDGER", fmt.Sprintf("Registered program %s (%s)", p.Name(), p.ID()))
	return nil
}

// CreateAccount stores a new system-owned wallet, failing if key is taken
func (l *Ledger) CreateAccount(key types.Pubkey, balance uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existed, err := l.accountStore.ExistsByKey(key)
	if err != nil {
		return fmt.Errorf("could not check existence of account: %w", err)
	}
	if existed {
		return errors.NewError(errors.ErrCodeAccountExists, "account %s already exists", key)
	}
	if err := l.accountStore.Store(&types.Account{Key: key, Owner: types.SystemProgramID, Balance: balance}); err != nil {
		return fmt.Errorf("failed to store account: %w", err)
	}
	return nil
}

// CreateAccountsFromGenesis funds the genesis wallets in one batch. Wallets that
// already exist are left as they are, so re-running init is harmless.
func (l *Ledger) CreateAccountsFromGenesis(accounts []config.GenesisAccount) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	toCreate := make([]*types.Account, 0, len(accounts))
	seen := make(map[types.Pubkey]bool, len(accounts))
	for _, ga := range accounts {
		key, err := types.ParsePubkey(ga.Address)
		if err != nil {
			return 0, fmt.Errorf("invalid genesis address %s: %w", ga.Address, err)
		}
		existed, err := l.accountStore.ExistsByKey(key)
		if err != nil {
			return 0, fmt.Errorf("could not check existence of account: %w", err)
		}
		if existed || seen[key] {
			logx.Warn("LEDGER", fmt.Sprintf("Genesis account %s already exists, skipping", key))
			continue
		}
		seen[key] = true
		toCreate = append(toCreate, &types.Account{Key: key, Owner: types.SystemProgramID, Balance: ga.Amount})
	}
	if len(toCreate) == 0 {
		return 0, nil
	}
	if err := l.accountStore.StoreBatch(toCreate); err != nil {
		return 0, fmt.Errorf("could not create genesis accounts: %w", err)
	}
	return len(toCreate), nil
}

func (l *Ledger) AccountExists(key types.Pubkey) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.accountStore.ExistsByKey(key)
}

// GetAccount returns the account under key (nil if not exist)
func (l *Ledger) GetAccount(key types.Pubkey) (*types.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.accountStore.GetByKey(key)
}

// Balance returns the current balance of key, zero for unknown accounts
func (l *Ledger) Balance(key types.Pubkey) (uint64, error) {
	acc, err := l.GetAccount(key)
	if err != nil || acc == nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (l *Ledger) ExecutionMeta() (store.ExecutionMeta, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.metaStore.GetExecutionMeta()
}

// GetAccountStore returns the account store for read-only queries
func (l *Ledger) GetAccountStore() store.AccountStore {
	return l.accountStore
}

// Execute runs one signed transaction. Either every write of the program call
// is committed together with the next execution meta, or nothing is.
func (l *Ledger) Execute(tx *transaction.Transaction) (events.LedgerEvent, error) {
	start := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	program, ok := l.programs[tx.ProgramID]
	if !ok {
		err := errors.NewError(errors.ErrCodeUnknownProgram, "program %s is not registered", tx.ProgramID)
		return nil, l.fail("unknown", tx, err, start)
	}

	signers, err := tx.Verify()
	if err != nil {
		return nil, l.fail(program.Name(), tx, err, start)
	}

	keys := tx.Keys()
	session := newSession(l.accountStore, program.ID(), keys, signers)
	event, err := program.Process(session, keys, tx.Data)
	if err != nil {
		return nil, l.fail(program.Name(), tx, err, start)
	}
	if err := session.checkBalanced(); err != nil {
		return nil, l.fail(program.Name(), tx, err, start)
	}

	meta, err := l.commit(session)
	if err != nil {
		logx.Error("LEDGER", fmt.Sprintf("Commit of tx %s failed: %v", stringutil.ShortenLog(tx.Hash()), err))
		return nil, l.fail(program.Name(), tx, err, start)
	}

	monitoring.RecordExecution(program.Name(), monitoring.ResultOK, time.Since(start))
	monitoring.SetCommittedSequence(meta.Sequence)
	logx.Info("LEDGER", fmt.Sprintf("Committed tx %s seq=%d program=%s", stringutil.ShortenLog(tx.Hash()), meta.Sequence, program.Name()))

	if event != nil {
		l.publish(event)
	}
	return event, nil
}

func (l *Ledger) commit(session *Session) (store.ExecutionMeta, error) {
	prev, err := l.metaStore.GetExecutionMeta()
	if err != nil {
		return store.ExecutionMeta{}, err
	}

	dirty := session.dirtyAccounts()
	next := store.ExecutionMeta{
		Sequence:  prev.Sequence + 1,
		StateHash: prev.StateHash,
	}
	if len(dirty) > 0 {
		next.StateHash = CombineStateHash(prev.StateHash, ComputeAccountsDeltaHash(dirty))
	}

	err = l.txManager.WithBatch(func(batch db.DatabaseBatch) error {
		if err := l.accountStore.StoreInBatch(batch, dirty); err != nil {
			return err
		}
		l.metaStore.PutExecutionMetaInBatch(batch, next)
		return nil
	})
	if err != nil {
		return store.ExecutionMeta{}, err
	}
	return next, nil
}

func (l *Ledger) fail(programName string, tx *transaction.Transaction, err error, start time.Time) error {
	result := string(errors.CodeOf(err))
	if result == "" {
		result = "internal"
	}
	monitoring.RecordExecution(programName, result, time.Since(start))
	logx.Warn("LEDGER", fmt.Sprintf("Tx %s rejected by %s: %v", stringutil.ShortenLog(tx.Hash()), programName, err))

	var subject types.Pubkey
	if len(tx.Accounts) > 0 {
		subject = tx.Accounts[0].Key
	}
	l.publish(events.NewExecutionFailed(tx.ProgramID, subject, err.Error()))
	return err
}

func (l *Ledger) publish(event events.LedgerEvent) {
	monitoring.RecordEvent(string(event.Type()))
	switch e := event.(type) {
	case *events.DonationReceived:
		monitoring.AddDonated(e.Amount)
	case *events.FundsWithdrawn:
		monitoring.AddWithdrawn(e.Amount)
	}
	if l.eventBus != nil {
		l.eventBus.Publish(event)
	}
}
