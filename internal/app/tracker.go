// Package app owns the canonical expense state. Every transition goes
// through a Tracker, which persists the whole document once per change.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"zenspend/internal/cache"
	"zenspend/internal/core"
	"zenspend/internal/ledger"
	"zenspend/internal/log"
	"zenspend/internal/store"
)

const defaultViewCacheSize = 64

// Tracker is the single owner of the AppState. Mutations are serialized and
// saved before the new snapshot becomes visible.
type Tracker struct {
	mu       sync.Mutex
	state    core.AppState
	revision uint64

	store  store.StateStore
	ledger *ledger.Ledger
	clock  func() time.Time
	logger *log.Logger
	views  *cache.LRUCache[any]
}

// Option configures a Tracker.
type Option func(*Tracker)

func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) { t.clock = clock }
}

// WithIDGenerator replaces the random UUID source for new transactions.
func WithIDGenerator(gen ledger.IDGenerator) Option {
	return func(t *Tracker) { t.ledger.IDs = gen }
}

func WithLogger(logger *log.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

func WithViewCacheSize(n int) Option {
	return func(t *Tracker) { t.views = cache.NewLRUCache[any](n) }
}

// SettingsPatch is a partial settings update. Nil fields are unchanged.
type SettingsPatch struct {
	Currency      *string
	IsDarkMode    *bool
	MonthStartDay *int
}

// New creates a tracker over st and loads the persisted document.
func New(ctx context.Context, st store.StateStore, opts ...Option) (*Tracker, error) {
	if st == nil {
		return nil, errors.New("state store is nil")
	}
	t := &Tracker{
		store:  st,
		ledger: ledger.New(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.New(log.DefaultConfig())
	}
	t.logger = t.logger.WithComponent(log.ComponentApp)
	if t.views == nil {
		t.views = cache.NewLRUCache[any](defaultViewCacheSize)
	}
	t.ledger.Clock = t.clock

	if err := t.Load(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Load replaces the in-memory state with the persisted document. A missing
// document yields the seeded default; so does a malformed one, with a
// warning. Store failures are returned.
func (t *Tracker) Load(ctx context.Context) error {
	raw, found, err := t.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	state := core.DefaultState()
	switch {
	case !found:
		t.logger.InfoContext(ctx, "No saved state, starting from defaults")
	default:
		decoded, err := core.DecodeState(raw)
		if err != nil {
			t.logger.WarnContext(ctx, "Saved state is malformed, starting from defaults",
				log.FieldError, err, log.FieldCount, len(raw))
		} else {
			state = decoded
		}
	}

	t.mu.Lock()
	t.state = state
	t.revision++
	rev := t.revision
	t.mu.Unlock()

	t.logger.DebugContext(ctx, "State loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldRevision, rev,
		log.FieldCount, len(state.Transactions))
	return nil
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() core.AppState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Revision increases by one on every successful transition.
func (t *Tracker) Revision() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.revision
}

// Find returns the transaction with the given id.
func (t *Tracker) Find(id string) (core.Transaction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ledger.Find(t.state.Transactions, id)
}

// AddTransaction records a new transaction and persists the result.
func (t *Tracker) AddTransaction(ctx context.Context, amount core.Money, opts ledger.AddOptions) (core.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	txs, tx, err := t.ledger.Add(t.state.Transactions, t.state.Categories, amount, opts)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	next := t.state
	next.Transactions = txs
	if err := t.commit(ctx, next); err != nil {
		return core.Transaction{}, err
	}

	t.logger.InfoContext(ctx, "Transaction added",
		log.NewFields().
			WithOperation(log.OpAdd).
			WithTransaction(tx.ID, tx.Amount.Cents, string(tx.Type), tx.CategoryID).
			WithRevision(t.revision).
			ToSlice()...)
	return tx, nil
}

// UpdateTransaction applies patch to the transaction with id. An invalid
// patch fails whether or not id exists. ok is false when no such
// transaction exists; nothing is saved in that case.
func (t *Tracker) UpdateTransaction(ctx context.Context, id string, patch ledger.Patch) (tx core.Transaction, ok bool, err error) {
	if err := patch.Validate(); err != nil {
		return core.Transaction{}, false, fmt.Errorf("update transaction %s: %w", id, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := ledger.Find(t.state.Transactions, id); !exists {
		t.logger.DebugContext(ctx, "Update skipped, transaction not found", log.FieldTransactionID, id)
		return core.Transaction{}, false, nil
	}

	txs, err := ledger.Update(t.state.Transactions, id, patch)
	if err != nil {
		return core.Transaction{}, true, fmt.Errorf("update transaction %s: %w", id, err)
	}
	if patch.IsEmpty() {
		tx, _ = ledger.Find(txs, id)
		return tx, true, nil
	}

	next := t.state
	next.Transactions = txs
	if err := t.commit(ctx, next); err != nil {
		return core.Transaction{}, true, err
	}

	tx, _ = ledger.Find(txs, id)
	t.logger.InfoContext(ctx, "Transaction updated",
		log.NewFields().
			WithOperation(log.OpUpdate).
			WithTransaction(tx.ID, tx.Amount.Cents, string(tx.Type), tx.CategoryID).
			WithRevision(t.revision).
			ToSlice()...)
	return tx, true, nil
}

// DeleteTransaction removes the transaction with id. ok is false when no
// such transaction exists.
func (t *Tracker) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := ledger.Find(t.state.Transactions, id); !exists {
		return false, nil
	}

	next := t.state
	next.Transactions = ledger.Remove(t.state.Transactions, id)
	if err := t.commit(ctx, next); err != nil {
		return true, err
	}

	t.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldTransactionID, id,
		log.FieldRevision, t.revision)
	return true, nil
}

// UpdateSettings merges patch into the settings. The merged result must be
// valid or nothing changes.
func (t *Tracker) UpdateSettings(ctx context.Context, patch SettingsPatch) (core.Settings, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	settings := t.state.Settings
	if patch.Currency != nil {
		settings.Currency = *patch.Currency
	}
	if patch.IsDarkMode != nil {
		settings.IsDarkMode = *patch.IsDarkMode
	}
	if patch.MonthStartDay != nil {
		settings.MonthStartDay = *patch.MonthStartDay
	}
	if err := settings.Validate(); err != nil {
		return t.state.Settings, fmt.Errorf("update settings: %w", err)
	}

	next := t.state
	next.Settings = settings
	if err := t.commit(ctx, next); err != nil {
		return t.state.Settings, err
	}

	t.logger.InfoContext(ctx, "Settings updated",
		log.FieldOperation, log.OpSettings,
		"currency", settings.Currency,
		log.FieldRevision, t.revision)
	return settings, nil
}

// Reset erases the persisted document and returns to the seeded default.
// Cached views of earlier revisions are dropped.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	t.state = core.DefaultState()
	t.revision++
	t.views.Purge()

	t.logger.WarnContext(ctx, "All data erased",
		log.FieldOperation, log.OpClear,
		log.FieldRevision, t.revision)
	return nil
}

// Export stamps settings.lastBackup, persists it and writes the document
// to w.
func (t *Tracker) Export(ctx context.Context, w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	next := t.state
	next.Settings.LastBackup = &now

	raw, err := core.EncodeState(next)
	if err != nil {
		return err
	}
	if err := t.saveRaw(ctx, next, raw); err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	t.logger.InfoContext(ctx, "Backup exported",
		log.FieldOperation, log.OpExport,
		log.FieldCount, len(next.Transactions),
		log.FieldRevision, t.revision)
	return nil
}

// StorageInfo describes the persisted document. found is false when the
// store cannot report it or nothing has been saved yet.
func (t *Tracker) StorageInfo(ctx context.Context) (info store.DocumentInfo, found bool, err error) {
	insp, ok := t.store.(store.DocumentInspector)
	if !ok {
		return store.DocumentInfo{}, false, nil
	}
	if info, found, err = insp.Info(ctx); err != nil {
		return store.DocumentInfo{}, false, fmt.Errorf("storage info: %w", err)
	}
	return info, found, nil
}

// BackupFileName is the default name for an export taken at now.
func BackupFileName(now time.Time) string {
	return "zenspend_backup_" + now.Format("2006-01-02") + ".json"
}

// commit encodes and saves next, then publishes it. Callers hold t.mu.
func (t *Tracker) commit(ctx context.Context, next core.AppState) error {
	raw, err := core.EncodeState(next)
	if err != nil {
		return err
	}
	return t.saveRaw(ctx, next, raw)
}

func (t *Tracker) saveRaw(ctx context.Context, next core.AppState, raw []byte) error {
	if err := t.store.Save(ctx, raw); err != nil {
		t.logger.ErrorContext(ctx, "Failed to save state",
			log.FieldOperation, log.OpSave,
			log.FieldError, err)
		return fmt.Errorf("save state: %w", err)
	}
	t.state = next
	t.revision++
	return nil
}
