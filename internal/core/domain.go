package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

const (
	Cash         PaymentMethod = "Cash"
	DebitCard    PaymentMethod = "Debit Card"
	CreditCard   PaymentMethod = "Credit Card"
	BankTransfer PaymentMethod = "Bank Transfer"
)

type (
	TransactionType string

	PaymentMethod string

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID            string          `json:"id"`
		Amount        Money           `json:"amount"`
		Type          TransactionType `json:"type"`
		CategoryID    string          `json:"categoryId"`
		Date          time.Time       `json:"date"` // when the spend happened, not when it was recorded
		PaymentMethod PaymentMethod   `json:"paymentMethod"`
		Notes         string          `json:"notes"`
		IsRecurring   bool            `json:"isRecurring"`
		PhotoURL      string          `json:"photoUrl,omitempty"`
	}

	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
		Limit Money  `json:"limit"` // monthly budget ceiling
	}

	Settings struct {
		Currency   string `json:"currency"`
		IsDarkMode bool   `json:"isDarkMode"`
		// MonthStartDay is stored but period math always uses calendar months.
		MonthStartDay int        `json:"monthStartDay"`
		LastBackup    *time.Time `json:"lastBackup,omitempty"`
	}

	AppState struct {
		Transactions []Transaction `json:"transactions"`
		Categories   []Category    `json:"categories"`
		Settings     Settings      `json:"settings"`
	}
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidType          = errors.New("invalid transaction type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidMonthStartDay = errors.New("invalid month start day")
	ErrUnknownCurrency      = errors.New("unknown currency")
	ErrEmptyCategoryName    = errors.New("empty category name")
	ErrNegativeLimit        = errors.New("negative budget limit")
)

// PaymentMethods lists the accepted payment methods in display order.
var PaymentMethods = []PaymentMethod{Cash, DebitCard, CreditCard, BankTransfer}

func (t TransactionType) Validate() error {
	switch t {
	case Expense, Income:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidType, string(t))
	}
}

func (p PaymentMethod) Validate() error {
	for _, m := range PaymentMethods {
		if p == m {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, string(p))
}

// ParsePaymentMethod accepts the display name or a compact form such as
// "debit", "credit-card" or "bank_transfer".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	norm := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "cash":
		return Cash, nil
	case "debit", "debitcard":
		return DebitCard, nil
	case "credit", "creditcard":
		return CreditCard, nil
	case "bank", "banktransfer", "transfer":
		return BankTransfer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	return t.PaymentMethod.Validate()
}

// Signed returns the amount with expenses negative and income positive.
func (t Transaction) Signed() Money {
	if t.Type == Expense {
		return Money{Cents: -t.Amount.Cents}
	}
	return t.Amount
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}
	if c.Limit.Cents < 0 {
		return ErrNegativeLimit
	}
	return nil
}

func (s Settings) Validate() error {
	if s.MonthStartDay < 1 || s.MonthStartDay > 31 {
		return fmt.Errorf("%w: %d", ErrInvalidMonthStartDay, s.MonthStartDay)
	}
	if _, ok := LookupCurrency(s.Currency); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, s.Currency)
	}
	return nil
}

// CategoryByID returns the category with the given id. Transactions may
// reference ids that no longer exist, so callers must handle ok == false.
func CategoryByID(cats []Category, id string) (Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Clone returns a deep copy so a snapshot can be handed out without sharing
// backing arrays with the owner.
func (s AppState) Clone() AppState {
	out := AppState{
		Transactions: make([]Transaction, len(s.Transactions)),
		Categories:   make([]Category, len(s.Categories)),
		Settings:     s.Settings,
	}
	copy(out.Transactions, s.Transactions)
	copy(out.Categories, s.Categories)
	if s.Settings.LastBackup != nil {
		lb := *s.Settings.LastBackup
		out.Settings.LastBackup = &lb
	}
	return out
}
