package models

import (
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes cash coming in from cash going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Frequency is the recurrence class of a transaction definition.
// FrequencyNone means a single occurrence on the anchor date.
type Frequency string

const (
	FrequencyNone      Frequency = "none"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
)

// Frequencies lists every recurrence class in bucket-scan order.
var Frequencies = []Frequency{
	FrequencyNone,
	FrequencyWeekly,
	FrequencyBiweekly,
	FrequencyMonthly,
	FrequencyQuarterly,
}

// Valid reports whether f is one of the known recurrence classes.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyNone, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	}
	return false
}

// Transaction is a transaction definition: a one-time or recurring cash
// movement anchored on Date. Amount is a non-negative magnitude; the sign of
// the cash effect comes from Type. Dates are calendar dates in "YYYY-MM-DD"
// form with no time component.
type Transaction struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Type      TransactionType `json:"type"`
	Frequency Frequency       `json:"frequency"`
	Category  string          `json:"category,omitempty"`
	Date      string          `json:"date"`
	EndDate   string          `json:"endDate,omitempty"`
}

// SignedAmount returns the full cash effect of one occurrence: positive for
// income, negative for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}
