package processors

import (
	"os"
	"testing"
	"time"

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

func mustIndexOne(t *testing.T, tx models.Transaction) IndexedTransaction {
	t.Helper()
	idx := BuildIndex([]models.Transaction{tx})
	bucket := idx.Bucket(tx.Frequency)
	require.Len(t, bucket, 1)
	return bucket[0]
}

func day(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMatchesOneTimeExactDateOnly(t *testing.T) {
	it := mustIndexOne(t, models.Transaction{
		ID: 1, Name: "deposit", Amount: decimal.NewFromInt(50),
		Type: models.TypeIncome, Frequency: models.FrequencyNone, Date: "2024-03-15",
	})

	assert.True(t, Matches(it, day("2024-03-15")))
	assert.False(t, Matches(it, day("2024-03-14")))
	assert.False(t, Matches(it, day("2024-03-16")))
	assert.False(t, Matches(it, day("2024-04-15")))
}

func TestMatchesWeekly(t *testing.T) {
	it := mustIndexOne(t, models.Transaction{
		ID: 1, Name: "groceries", Amount: decimal.NewFromInt(200),
		Type: models.TypeExpense, Frequency: models.FrequencyWeekly, Date: "2024-01-01",
	})

	// Exactly {start + 7k} within January 2024.
	matched := []string{}
	for d := day("2024-01-01"); d.Month() == time.January; d = d.AddDate(0, 0, 1) {
		if Matches(it, d) {
			matched = append(matched, DateKey(d))
		}
	}
	assert.Equal(t, []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"}, matched)
}

func TestMatchesBiweekly(t *testing.T) {
	it := mustIndexOne(t, models.Transaction{
		ID: 1, Name: "paycheck", Amount: decimal.NewFromInt(1500),
		Type: models.TypeIncome, Frequency: models.FrequencyBiweekly, Date: "2024-01-05",
	})

	assert.True(t, Matches(it, day("2024-01-05")))
	assert.False(t, Matches(it, day("2024-01-12")))
	assert.True(t, Matches(it, day("2024-01-19")))
	assert.True(t, Matches(it, day("2024-02-02")))
}

func TestMatchesBeforeStartNeverMatches(t *testing.T) {
	it := mustIndexOne(t, models.Transaction{
		ID: 1, Name: "rent", Amount: decimal.NewFromInt(900),
		Type: models.TypeExpense, Frequency: models.FrequencyWeekly, Date: "2024-06-03",
	})

	assert.False(t, Matches(it, day("2024-05-27")))
	assert.False(t, Matches(it, day("2024-06-02")))
	assert.True(t, Matches(it, day("2024-06-03")))
}

func TestMatchesEndDateIsInclusive(t *testing.T) {
	it := mustIndexOne(t, models.Transaction{
		ID: 1, Name: "gym", Amount: decimal.NewFromInt(30),
		Type: models.TypeExpense, Frequency: models.FrequencyWeekly,
		Date: "2024-01-01", EndDate: "2024-01-15",
	})

	assert.True(t, Matches(it, day("2024-01-08")))
	assert.True(t, Matches(it, day("2024-01-15")), "occurrence on the end date itself still recurs")
	assert.False(t, Matches(it, day("2024-01-22")))
}

func TestMatchesMonthlyClampsToShortMonths(t *testing.T) {
	it := mustIndexOne(t, models.Transaction{
		ID: 1, Name: "rent", Amount: decimal.NewFromInt(1200),
		Type: models.TypeExpense, Frequency: models.FrequencyMonthly, Date: "2024-01-31",
	})

	// Leap February clamps to the 29th, April to the 30th.
	assert.True(t, Matches(it, day("2024-02-29")))
	assert.False(t, Matches(it, day("2024-02-28")))
	assert.True(t, Matches(it, day("2024-04-30")))
	assert.True(t, Matches(it, day("2024-03-31")))
	assert.False(t, Matches(it, day("2024-03-30")))

	// Non-leap February clamps to the 28th.
	it2 := mustIndexOne(t, models.Transaction{
		ID: 2, Name: "rent", Amount: decimal.NewFromInt(1200),
		Type: models.TypeExpense, Frequency: models.FrequencyMonthly, Date: "2023-01-31",
	})
	assert.True(t, Matches(it2, day("2023-02-28")))
}

func TestMatchesMonthlyMidMonthAnchor(t *testing.T) {
	it := mustIndexOne(t, models.Transaction{
		ID: 1, Name: "insurance", Amount: decimal.NewFromInt(80),
		Type: models.TypeExpense, Frequency: models.FrequencyMonthly, Date: "2024-01-15",
	})

	assert.True(t, Matches(it, day("2024-02-15")))
	assert.True(t, Matches(it, day("2025-07-15")))
	assert.False(t, Matches(it, day("2024-02-14")))
}

func TestMatchesQuarterly(t *testing.T) {
	it := mustIndexOne(t, models.Transaction{
		ID: 1, Name: "taxes", Amount: decimal.NewFromInt(450),
		Type: models.TypeExpense, Frequency: models.FrequencyQuarterly, Date: "2024-01-31",
	})

	assert.True(t, Matches(it, day("2024-01-31")))
	assert.False(t, Matches(it, day("2024-02-29")), "one month after anchor is not a quarter")
	assert.True(t, Matches(it, day("2024-04-30")), "three months on, clamped to April's 30 days")
	assert.True(t, Matches(it, day("2024-07-31")))
	assert.True(t, Matches(it, day("2024-10-31")))
	assert.False(t, Matches(it, day("2024-05-31")))
}
