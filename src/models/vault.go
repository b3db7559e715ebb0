package models

import "github.com/shopspring/decimal"

// Vault is a named cash account. The sum of all vault balances is the anchor
// from which every calendar projection starts: it is "true cash today", not a
// start-of-month figure.
type Vault struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// Jar is a savings-goal pool. Jars sit outside the balance projection
// entirely; they only track progress toward an optional goal.
type Jar struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	CurrentAmount decimal.Decimal  `json:"currentAmount"`
	GoalAmount    *decimal.Decimal `json:"goalAmount,omitempty"`
	GoalDate      string           `json:"goalDate,omitempty"`
}
