// backend/src/services/planner_service_test.go
package services

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/prosper/backend/src/logger"
	"github.com/username/prosper/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

// memStore is an in-memory Store for tests. It keeps the serialized
// documents so restart behavior can be exercised with the same instance.
type memStore struct {
	docs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{docs: map[string][]byte{}}
}

func (m *memStore) Load(key string) ([]byte, bool, error) {
	v, ok := m.docs[key]
	return v, ok, nil
}

func (m *memStore) Save(key string, value []byte) error {
	m.docs[key] = value
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.Local)
}

func newTestPlanner(t *testing.T, store Store, now time.Time) PlannerService {
	t.Helper()
	dayCache := cache.New(DefaultCacheExpiration, CacheCleanupInterval)
	svc, err := NewPlannerService(store, fixedClock{now: now}, dayCache, 5)
	require.NoError(t, err)
	return svc
}

func seedBackup(t *testing.T, svc PlannerService, backup models.Backup) {
	t.Helper()
	payload, err := json.Marshal(backup)
	require.NoError(t, err)
	require.NoError(t, svc.Import(payload))
}

// weeklyExpenseFixture is the canonical scenario used across the calendar
// tests: a $1000 vault and a $200 weekly expense anchored on 2024-01-01.
func weeklyExpenseFixture() models.Backup {
	transactions := []models.Transaction{{
		ID:        10,
		Name:      "Groceries",
		Amount:    dec(200),
		Type:      models.TypeExpense,
		Frequency: models.FrequencyWeekly,
		Date:      "2024-01-01",
	}}
	vaults := []models.Vault{{ID: 1, Name: "Checking", Balance: dec(1000)}}
	return models.Backup{Transactions: &transactions, Vaults: &vaults}
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	store := newMemStore()
	now := day(2024, time.January, 1)

	svc := newTestPlanner(t, store, now)
	seedBackup(t, svc, weeklyExpenseFixture())
	require.NoError(t, svc.RecordPayment("2024-01-08", 10, dec(50)))
	require.NoError(t, svc.ToggleSkip("2024-01-15", 10))

	// A fresh service over the same store sees the same state.
	reloaded := newTestPlanner(t, store, now)
	assert.True(t, reloaded.VaultTotal().Equal(dec(1000)))
	assert.Len(t, reloaded.ListTransactions(models.FilterActive, ""), 1)

	settlement, ok := reloaded.GetSettlement("2024-01-08", 10)
	require.True(t, ok)
	assert.Equal(t, models.SettledAmount, settlement.Kind)
	assert.True(t, settlement.Amount.Equal(dec(50)))
	assert.True(t, reloaded.IsSkipped("2024-01-15", 10))
}

func TestFreshInstallLoadsEmpty(t *testing.T) {
	svc := newTestPlanner(t, newMemStore(), day(2024, time.June, 1))
	assert.Empty(t, svc.ListTransactions(models.FilterActive, ""))
	assert.Empty(t, svc.ListVaults())
	assert.Empty(t, svc.ListJars())
	assert.True(t, svc.VaultTotal().IsZero())
}

func TestGeneratedIDsAreDistinct(t *testing.T) {
	// The clock is pinned, so every id would collide without the forward
	// nudge.
	svc := newTestPlanner(t, newMemStore(), day(2024, time.June, 1))

	base := models.Transaction{
		Name:      "Rent",
		Amount:    dec(900),
		Type:      models.TypeExpense,
		Frequency: models.FrequencyMonthly,
		Date:      "2024-06-01",
	}
	a, err := svc.AddTransaction(base)
	require.NoError(t, err)
	b, err := svc.AddTransaction(base)
	require.NoError(t, err)
	v, err := svc.SaveVault(models.Vault{Name: "Savings", Balance: dec(10)})
	require.NoError(t, err)

	ids := map[int64]bool{a.ID: true, b.ID: true, v.ID: true}
	assert.Len(t, ids, 3)
	assert.NotZero(t, a.ID)
}

func TestVaultTotalSumsAllBalances(t *testing.T) {
	svc := newTestPlanner(t, newMemStore(), day(2024, time.June, 1))
	_, err := svc.SaveVault(models.Vault{Name: "Checking", Balance: dec(250)})
	require.NoError(t, err)
	_, err = svc.SaveVault(models.Vault{Name: "Overdraft", Balance: dec(-40)})
	require.NoError(t, err)
	assert.True(t, svc.VaultTotal().Equal(dec(210)))
}
