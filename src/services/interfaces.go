// backend/src/services/interfaces.go
package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/prosper/backend/src/models"
)

const (
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

// Define common service errors
var (
	ErrInvalidMode     = errors.New("invalid calendar mode")
	ErrInvalidDate     = errors.New("invalid calendar date")
	ErrViewTooFar      = errors.New("viewed month is too far from today")
	ErrMalformedImport = errors.New("malformed import payload")
)

// Store is the storage provider collaborator: one JSON document per logical
// collection. The planner saves after every mutating operation it performs.
type Store interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
}

// Clock supplies "today" for the live/review partition and the upcoming
// window. Injected so tests can pin the calendar.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// PlannerService is the owned state container for the whole engine: it holds
// the canonical collections, the derived transaction index and day cache,
// and performs every mutation atomically (mutate, reindex, invalidate,
// persist) before returning.
type PlannerService interface {
	// Calendar projections.
	GetDayData(year int, month time.Month, day int, mode models.Mode) (models.DayData, error)
	ComputeMonthView(year int, month time.Month, mode models.Mode) (models.MonthView, error)
	ListUpcoming(windowDays int) []models.UpcomingItem

	// Transaction definitions.
	ListTransactions(filter models.TransactionListFilter, search string) []models.Transaction
	AddTransaction(t models.Transaction) (models.Transaction, error)
	UpdateTransaction(t models.Transaction) (models.Transaction, error)
	DeleteTransaction(id int64) error
	CopyTransaction(id int64) (models.Transaction, error)

	// Settlement state machine.
	RecordPayment(dateKey string, transactionID int64, amountPaid decimal.Decimal) error
	Unpay(dateKey string, transactionID int64) error
	ToggleSkip(dateKey string, transactionID int64) error
	GetSettlement(dateKey string, transactionID int64) (models.Settlement, bool)
	IsSkipped(dateKey string, transactionID int64) bool

	// Vaults and jars.
	ListVaults() []models.Vault
	SaveVault(v models.Vault) (models.Vault, error)
	DeleteVault(id int64) error
	ReorderVaults(order []int64) error
	VaultTotal() decimal.Decimal
	ListJars() []models.Jar
	SaveJar(j models.Jar) (models.Jar, error)
	DeleteJar(id int64) error
	ReorderJars(order []int64) error

	// Backup and lifecycle.
	Export() models.Backup
	Import(payload []byte) error
	ClearAll() error
	InvalidateCaches()
}
