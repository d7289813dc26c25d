// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for all transaction dates.
const DateLayout = "2006-01-02"

// TransactionType distinguishes money going out from money coming in.
// The sign of a transaction is carried here, never by the amount itself.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// ParseTransactionType normalizes a free-form type string. Unrecognized or
// empty values default to expense, matching the scanner normalization rules.
func ParseTransactionType(s string) TransactionType {
	if strings.EqualFold(strings.TrimSpace(s), string(TypeIncome)) {
		return TypeIncome
	}
	return TypeExpense
}

// Valid reports whether the type is one of the two known values.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// Transaction is the sole persistent entity: a single income or expense record.
type Transaction struct {
	ID          string          `json:"id" csv:"ID"`
	Date        string          `json:"date" csv:"Date"` // YYYY-MM-DD, sort and grouping key
	Description string          `json:"description" csv:"Description"`
	Amount      decimal.Decimal `json:"amount" csv:"Amount"` // non-negative magnitude
	Category    Category        `json:"category" csv:"Category"`
	Type        TransactionType `json:"type" csv:"Type"`
	CreatedAt   int64           `json:"createdAt" csv:"CreatedAt"` // insertion sequence, tie-break only
}

// NewID returns a fresh opaque transaction identifier.
func NewID() string {
	return uuid.New().String()
}

// Validate checks the record invariants before it enters the store.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("transaction description must not be empty")
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction amount must not be negative: %s", t.Amount)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("invalid transaction type: %q", t.Type)
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("invalid transaction date %q: %w", t.Date, err)
	}
	return nil
}

// DateValue parses the Date field into a time.Time.
func (t *Transaction) DateValue() (time.Time, error) {
	return time.Parse(DateLayout, t.Date)
}

// IsExpense returns true if the transaction is an expense (outgoing money).
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// IsIncome returns true if the transaction is income (incoming money).
func (t *Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// ParseAmount parses a string amount into a decimal value. It tolerates the
// formats users and statements actually produce: currency symbols, thousand
// separators and comma decimal points.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if amountStr == "" {
		return decimal.Zero, nil
	}

	amount := strings.TrimSpace(amountStr)
	for _, sym := range []string{"RM", "S$", "$", "€", "£", "¥", "MYR", "USD", "EUR", "GBP", "JPY", "SGD"} {
		amount = strings.ReplaceAll(amount, sym, "")
	}
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "'", "")

	// European decimal comma (1.234,56) vs thousand comma (1,234.56)
	if strings.Contains(amount, ",") && strings.Contains(amount, ".") {
		if strings.LastIndex(amount, ".") < strings.LastIndex(amount, ",") {
			amount = strings.ReplaceAll(amount, ".", "")
			amount = strings.ReplaceAll(amount, ",", ".")
		} else {
			amount = strings.ReplaceAll(amount, ",", "")
		}
	} else if strings.Contains(amount, ",") {
		parts := strings.Split(amount, ",")
		if len(parts[len(parts)-1]) <= 2 {
			amount = strings.ReplaceAll(amount, ",", ".")
		} else {
			amount = strings.ReplaceAll(amount, ",", "")
		}
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return dec, nil
}
