package processors

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/prosper/backend/src/models"
)

func TestBuildIndexBucketsByFrequency(t *testing.T) {
	idx := BuildIndex([]models.Transaction{
		{ID: 1, Name: "a", Amount: decimal.NewFromInt(1), Type: models.TypeExpense, Frequency: models.FrequencyWeekly, Date: "2024-01-01"},
		{ID: 2, Name: "b", Amount: decimal.NewFromInt(2), Type: models.TypeExpense, Frequency: models.FrequencyWeekly, Date: "2024-01-02"},
		{ID: 3, Name: "c", Amount: decimal.NewFromInt(3), Type: models.TypeIncome, Frequency: models.FrequencyMonthly, Date: "2024-01-31"},
		{ID: 4, Name: "d", Amount: decimal.NewFromInt(4), Type: models.TypeIncome, Frequency: models.FrequencyNone, Date: "2024-02-10"},
	})

	assert.Equal(t, 4, idx.Len())
	assert.Len(t, idx.Bucket(models.FrequencyWeekly), 2)
	assert.Len(t, idx.Bucket(models.FrequencyMonthly), 1)
	assert.Len(t, idx.Bucket(models.FrequencyNone), 1)
	assert.Empty(t, idx.Bucket(models.FrequencyQuarterly))

	// Buckets preserve input order.
	weekly := idx.Bucket(models.FrequencyWeekly)
	assert.Equal(t, int64(1), weekly[0].ID)
	assert.Equal(t, int64(2), weekly[1].ID)
}

func TestBuildIndexPrecomputesAnchors(t *testing.T) {
	idx := BuildIndex([]models.Transaction{
		{ID: 1, Name: "rent", Amount: decimal.NewFromInt(1200), Type: models.TypeExpense,
			Frequency: models.FrequencyMonthly, Date: "2024-01-31", EndDate: "2024-06-30"},
	})
	it := idx.Bucket(models.FrequencyMonthly)[0]

	assert.Equal(t, 31, it.StartDay)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.Local), it.Start)
	// End date is inclusive through its whole day.
	assert.True(t, it.End.After(time.Date(2024, time.June, 30, 0, 0, 0, 0, time.Local)))
	assert.True(t, it.End.Before(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.Local)))
}

func TestBuildIndexDropsInvalidAnchorDates(t *testing.T) {
	idx := BuildIndex([]models.Transaction{
		{ID: 1, Name: "broken", Amount: decimal.NewFromInt(1), Type: models.TypeExpense, Frequency: models.FrequencyWeekly, Date: "not-a-date"},
		{ID: 2, Name: "ok", Amount: decimal.NewFromInt(1), Type: models.TypeExpense, Frequency: models.FrequencyWeekly, Date: "2024-01-01"},
	})

	require.Len(t, idx.Bucket(models.FrequencyWeekly), 1)
	assert.Equal(t, int64(2), idx.Bucket(models.FrequencyWeekly)[0].ID)
}

func TestBuildIndexTreatsMalformedEndDateAsAbsent(t *testing.T) {
	idx := BuildIndex([]models.Transaction{
		{ID: 1, Name: "x", Amount: decimal.NewFromInt(1), Type: models.TypeExpense,
			Frequency: models.FrequencyWeekly, Date: "2024-01-01", EndDate: "soon"},
	})
	it := idx.Bucket(models.FrequencyWeekly)[0]

	assert.True(t, it.End.IsZero())
	assert.True(t, Matches(it, day("2030-12-30")), "no end bound applies")
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 31, DaysInMonth(2024, time.January))
	assert.Equal(t, 30, DaysInMonth(2024, time.April))
}
