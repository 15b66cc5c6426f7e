package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedDocument = errors.New("malformed state document")

// EncodeState serializes the state document. Nil slices are written as empty
// arrays so readers never see null collections.
func EncodeState(s AppState) ([]byte, error) {
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Categories == nil {
		s.Categories = []Category{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return b, nil
}

// DecodeState parses a persisted document. Parse failures and invalid
// categories are reported as ErrMalformedDocument; callers fall back to
// DefaultState.
func DecodeState(b []byte) (AppState, error) {
	var s AppState
	if err := json.Unmarshal(b, &s); err != nil {
		return AppState{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	for _, c := range s.Categories {
		if err := c.Validate(); err != nil {
			return AppState{}, fmt.Errorf("%w: category %s: %v", ErrMalformedDocument, c.ID, err)
		}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Categories == nil {
		s.Categories = []Category{}
	}
	if s.Settings.Currency == "" {
		s.Settings.Currency = DefaultCurrency
	}
	if s.Settings.MonthStartDay == 0 {
		s.Settings.MonthStartDay = DefaultMonthStartDay
	}
	return s, nil
}
