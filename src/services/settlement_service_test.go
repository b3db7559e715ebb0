// backend/src/services/settlement_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/prosper/backend/src/models"
)

func TestRecordPaymentStoresAmount(t *testing.T) {
	svc := newTestPlanner(t, newMemStore(), day(2024, time.January, 1))
	seedBackup(t, svc, weeklyExpenseFixture())

	require.NoError(t, svc.RecordPayment("2024-01-08", 10, dec(75)))

	settlement, ok := svc.GetSettlement("2024-01-08", 10)
	require.True(t, ok)
	assert.Equal(t, models.SettledAmount, settlement.Kind)
	assert.True(t, settlement.Amount.Equal(dec(75)))

	// A later payment replaces, not accumulates.
	require.NoError(t, svc.RecordPayment("2024-01-08", 10, dec(200)))
	settlement, ok = svc.GetSettlement("2024-01-08", 10)
	require.True(t, ok)
	assert.True(t, settlement.Amount.Equal(dec(200)))
}

func TestRecordPaymentNonPositiveClearsEntry(t *testing.T) {
	svc := newTestPlanner(t, newMemStore(), day(2024, time.January, 1))
	seedBackup(t, svc, weeklyExpenseFixture())

	require.NoError(t, svc.RecordPayment("2024-01-08", 10, dec(75)))
	require.NoError(t, svc.RecordPayment("2024-01-08", 10, dec(0)))
	_, ok := svc.GetSettlement("2024-01-08", 10)
	assert.False(t, ok)

	require.NoError(t, svc.RecordPayment("2024-01-08", 10, dec(75)))
	require.NoError(t, svc.RecordPayment("2024-01-08", 10, dec(-5)))
	_, ok = svc.GetSettlement("2024-01-08", 10)
	assert.False(t, ok)
}

func TestRecordPaymentRejectsBadDateKey(t *testing.T) {
	svc := newTestPlanner(t, newMemStore(), day(2024, time.January, 1))
	seedBackup(t, svc, weeklyExpenseFixture())

	err := svc.RecordPayment("08/01/2024", 10, dec(75))
	assert.ErrorIs(t, err, ErrInvalidDate)
	err = svc.ToggleSkip("not-a-date", 10)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestRecordPaymentIgnoresUnknownTransaction(t *testing.T) {
	svc := newTestPlanner(t, newMemStore(), day(2024, time.January, 1))
	seedBackup(t, svc, weeklyExpenseFixture())

	require.NoError(t, svc.RecordPayment("2024-01-08", 999, dec(75)))
	_, ok := svc.GetSettlement("2024-01-08", 999)
	assert.False(t, ok)

	require.NoError(t, svc.ToggleSkip("2024-01-08", 999))
	assert.False(t, svc.IsSkipped("2024-01-08", 999))
}

func TestUnpayClearsUnconditionally(t *testing.T) {
	svc := newTestPlanner(t, newMemStore(), day(2024, time.January, 1))
	seedBackup(t, svc, weeklyExpenseFixture())

	require.NoError(t, svc.RecordPayment("2024-01-08", 10, dec(75)))
	require.NoError(t, svc.Unpay("2024-01-08", 10))
	_, ok := svc.GetSettlement("2024-01-08", 10)
	assert.False(t, ok)

	// Clearing an absent entry is fine.
	require.NoError(t, svc.Unpay("2024-01-08", 10))
}

func TestToggleSkipFlips(t *testing.T) {
	svc := newTestPlanner(t, newMemStore(), day(2024, time.January, 1))
	seedBackup(t, svc, weeklyExpenseFixture())

	require.NoError(t, svc.ToggleSkip("2024-01-15", 10))
	assert.True(t, svc.IsSkipped("2024-01-15", 10))
	require.NoError(t, svc.ToggleSkip("2024-01-15", 10))
	assert.False(t, svc.IsSkipped("2024-01-15", 10))
}

func TestSkipAndPaymentAreIndependent(t *testing.T) {
	svc := newTestPlanner(t, newMemStore(), day(2024, time.January, 1))
	seedBackup(t, svc, weeklyExpenseFixture())

	require.NoError(t, svc.RecordPayment("2024-01-08", 10, dec(75)))
	require.NoError(t, svc.ToggleSkip("2024-01-08", 10))

	_, paid := svc.GetSettlement("2024-01-08", 10)
	assert.True(t, paid)
	assert.True(t, svc.IsSkipped("2024-01-08", 10))

	require.NoError(t, svc.Unpay("2024-01-08", 10))
	assert.True(t, svc.IsSkipped("2024-01-08", 10), "clearing the payment leaves the skip")
}

func TestSettlementIsPerOccurrence(t *testing.T) {
	svc := newTestPlanner(t, newMemStore(), day(2024, time.January, 1))
	seedBackup(t, svc, weeklyExpenseFixture())

	require.NoError(t, svc.RecordPayment("2024-01-08", 10, dec(200)))
	_, ok := svc.GetSettlement("2024-01-15", 10)
	assert.False(t, ok, "other occurrences of the same definition stay unsettled")
}
