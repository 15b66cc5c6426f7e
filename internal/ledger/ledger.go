// Package ledger holds the pure transition functions over the transaction
// list. Every function returns a new slice and leaves its input untouched so
// the owner can persist exactly once per logical change.
package ledger

import (
	"fmt"
	"time"

	"zenspend/internal/core"
)

// AddOptions are the optional fields of a new transaction. Zero values pick
// the documented default.
type AddOptions struct {
	Type          core.TransactionType // default core.Expense
	CategoryID    string               // default: id of the first configured category
	Date          time.Time            // default: now
	PaymentMethod core.PaymentMethod   // default core.Cash
	Notes         string               // default ""
	IsRecurring   bool                 // default false
	PhotoURL      string               // default: none
}

// Patch is a partial update. Nil fields are left unchanged; the id is never
// part of a patch.
type Patch struct {
	Amount        *core.Money
	Type          *core.TransactionType
	CategoryID    *string
	Date          *time.Time
	PaymentMethod *core.PaymentMethod
	Notes         *string
	IsRecurring   *bool
	PhotoURL      *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Validate checks every set field without looking at any transaction.
func (p Patch) Validate() error {
	if p.Amount != nil {
		if err := p.Amount.Validate(); err != nil {
			return err
		}
	}
	if p.Type != nil {
		if err := p.Type.Validate(); err != nil {
			return err
		}
	}
	if p.PaymentMethod != nil {
		if err := p.PaymentMethod.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p Patch) apply(tx core.Transaction) core.Transaction {
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Type != nil {
		tx.Type = *p.Type
	}
	if p.CategoryID != nil {
		tx.CategoryID = *p.CategoryID
	}
	if p.Date != nil {
		tx.Date = *p.Date
	}
	if p.PaymentMethod != nil {
		tx.PaymentMethod = *p.PaymentMethod
	}
	if p.Notes != nil {
		tx.Notes = *p.Notes
	}
	if p.IsRecurring != nil {
		tx.IsRecurring = *p.IsRecurring
	}
	if p.PhotoURL != nil {
		tx.PhotoURL = *p.PhotoURL
	}
	return tx
}

// Ledger builds transactions with an injected id source and clock.
type Ledger struct {
	IDs   IDGenerator
	Clock func() time.Time
}

// New returns a ledger using random UUIDs and the wall clock.
func New() *Ledger {
	return &Ledger{IDs: UUIDGenerator{}, Clock: time.Now}
}

var defaultLedger = New()

// Add appends a new transaction built from amount and opts. The amount must
// be positive. Returns the new list and the stored record.
func Add(txs []core.Transaction, cats []core.Category, amount core.Money, opts AddOptions) ([]core.Transaction, core.Transaction, error) {
	return defaultLedger.Add(txs, cats, amount, opts)
}

func (l *Ledger) Add(txs []core.Transaction, cats []core.Category, amount core.Money, opts AddOptions) ([]core.Transaction, core.Transaction, error) {
	if err := amount.Validate(); err != nil {
		return txs, core.Transaction{}, err
	}

	tx := core.Transaction{
		Amount:        amount,
		Type:          opts.Type,
		CategoryID:    opts.CategoryID,
		Date:          opts.Date,
		PaymentMethod: opts.PaymentMethod,
		Notes:         opts.Notes,
		IsRecurring:   opts.IsRecurring,
		PhotoURL:      opts.PhotoURL,
	}
	if tx.Type == "" {
		tx.Type = core.Expense
	}
	if tx.CategoryID == "" && len(cats) > 0 {
		tx.CategoryID = cats[0].ID
	}
	if tx.Date.IsZero() {
		tx.Date = l.now()
	}
	if tx.PaymentMethod == "" {
		tx.PaymentMethod = core.Cash
	}
	if err := tx.Validate(); err != nil {
		return txs, core.Transaction{}, err
	}

	id, err := uniqueID(l.ids(), txs)
	if err != nil {
		return txs, core.Transaction{}, err
	}
	tx.ID = id

	out := make([]core.Transaction, len(txs), len(txs)+1)
	copy(out, txs)
	out = append(out, tx)
	return out, tx, nil
}

// Update merges patch into the transaction with the given id. A missing id
// is not an error: the result equals the input.
func Update(txs []core.Transaction, id string, patch Patch) ([]core.Transaction, error) {
	if err := patch.Validate(); err != nil {
		return txs, err
	}
	out := make([]core.Transaction, len(txs))
	for i, tx := range txs {
		if tx.ID == id {
			tx = patch.apply(tx)
		}
		out[i] = tx
	}
	return out, nil
}

// Remove drops the transaction with the given id. A missing id is a no-op.
func Remove(txs []core.Transaction, id string) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ID != id {
			out = append(out, tx)
		}
	}
	return out
}

func Find(txs []core.Transaction, id string) (core.Transaction, bool) {
	for _, tx := range txs {
		if tx.ID == id {
			return tx, true
		}
	}
	return core.Transaction{}, false
}

func (l *Ledger) now() time.Time {
	if l.Clock == nil {
		return time.Now()
	}
	return l.Clock()
}

func (l *Ledger) ids() IDGenerator {
	if l.IDs == nil {
		return UUIDGenerator{}
	}
	return l.IDs
}

// maxIDAttempts bounds the retry loop when a generator keeps colliding.
const maxIDAttempts = 16

var errIDExhausted = fmt.Errorf("id generator produced %d colliding ids", maxIDAttempts)

func uniqueID(gen IDGenerator, txs []core.Transaction) (string, error) {
	taken := make(map[string]struct{}, len(txs))
	for _, tx := range txs {
		taken[tx.ID] = struct{}{}
	}
	for i := 0; i < maxIDAttempts; i++ {
		id := gen.NewID()
		if id == "" {
			continue
		}
		if _, dup := taken[id]; !dup {
			return id, nil
		}
	}
	return "", errIDExhausted
}
