package models

import "github.com/shopspring/decimal"

// Mode selects which occurrences count toward a day's net cash effect.
type Mode string

const (
	// ModeLive is the forward-looking view: fully settled occurrences are
	// excluded, partially settled ones contribute their remaining value.
	ModeLive Mode = "live"
	// ModeReview is the historical view: skipped occurrences are excluded,
	// settlement state does not affect the net.
	ModeReview Mode = "review"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeLive || m == ModeReview
}

// DayItem is one matched occurrence on a day, with its settlement and skip
// flags attached. Every match is itemized regardless of mode exclusion so
// detail views can show the full picture.
type DayItem struct {
	Transaction
	// Value is the full signed cash effect of the occurrence.
	Value decimal.Decimal `json:"val"`
	// Remaining is the signed amount still owed after any partial payment.
	Remaining decimal.Decimal `json:"remaining"`
	// AmountPaid is the magnitude already settled (zero when unsettled).
	AmountPaid decimal.Decimal `json:"amountPaid"`
	Paid       bool            `json:"isPaid"`
	FullyPaid  bool            `json:"isFullyPaid"`
	Skipped    bool            `json:"isSkipped"`
}

// DayData is the aggregated cash effect of one calendar date in one mode.
type DayData struct {
	Net     decimal.Decimal `json:"net"`
	Items   []DayItem       `json:"items"`
	DateKey string          `json:"dateKey"`
}

// DayCell is a populated cell of the month grid. Blank leading/trailing
// cells are nil in the week row.
type DayCell struct {
	Day     int             `json:"day"`
	DateKey string          `json:"dateKey"`
	Net     decimal.Decimal `json:"net"`
	IsToday bool            `json:"isToday"`
}

// WeekRow is one 7-column row of the month grid plus its trailing totals:
// the week's net delta and the cumulative running balance after the row.
type WeekRow struct {
	Days         [7]*DayCell     `json:"days"`
	WeeklyChange decimal.Decimal `json:"weeklyChange"`
	RunningTotal decimal.Decimal `json:"runningTotal"`
}

// MonthView is the full calendar projection for one displayed month.
type MonthView struct {
	Year  int  `json:"year"`
	Month int  `json:"month"`
	Mode  Mode `json:"mode"`
	// StartingBalance is total vault cash walked day-by-day from today to
	// the first of this month.
	StartingBalance decimal.Decimal `json:"startingBalance"`
	Weeks           []WeekRow       `json:"weeks"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpense  decimal.Decimal `json:"monthlyExpense"`
	MonthlyNet      decimal.Decimal `json:"monthlyNet"`
}

// UpcomingItem is an unsettled, unskipped occurrence due within the
// requested window.
type UpcomingItem struct {
	DayItem
	DateKey  string `json:"dateKey"`
	DaysAway int    `json:"daysAway"`
}

// TransactionListFilter selects the active/completed partition of the
// transaction list.
type TransactionListFilter string

const (
	FilterActive    TransactionListFilter = "active"
	FilterCompleted TransactionListFilter = "completed"
)
