package processors

import (
	"time"

	"github.com/username/prosper/backend/src/logger"
	"github.com/username/prosper/backend/src/models"
)

// IndexedTransaction is a transaction definition annotated with its parsed
// anchor dates, precomputed once so per-day matching does no string parsing.
type IndexedTransaction struct {
	models.Transaction
	// Start is the anchor date at local midnight.
	Start time.Time
	// End is the inclusive end-of-day bound; zero when no end date is set.
	End time.Time
	// StartDay is the anchor's day-of-month, used by the monthly and
	// quarterly rules (clamped to shorter months at match time).
	StartDay int
}

// TransactionIndex groups definitions by recurrence class. It is pure
// derived state: it must be rebuilt synchronously after any mutation of the
// transaction set, since stale entries are a correctness bug rather than a
// performance issue.
type TransactionIndex struct {
	buckets map[models.Frequency][]IndexedTransaction
	size    int
}

// BuildIndex parses and buckets the given definitions. Definitions with an
// unparseable anchor date are dropped from the index (they can never match a
// day) and logged; a malformed end date is treated as absent.
func BuildIndex(transactions []models.Transaction) *TransactionIndex {
	idx := &TransactionIndex{
		buckets: make(map[models.Frequency][]IndexedTransaction, len(models.Frequencies)),
	}
	for _, t := range transactions {
		start, err := ParseDate(t.Date)
		if err != nil {
			logger.L.Warn("Skipping transaction with invalid anchor date", "id", t.ID, "date", t.Date)
			continue
		}
		it := IndexedTransaction{
			Transaction: t,
			Start:       start,
			StartDay:    start.Day(),
		}
		if t.EndDate != "" {
			if end, err := ParseDate(t.EndDate); err == nil {
				it.End = EndOfDay(end)
			} else {
				logger.L.Warn("Ignoring invalid end date", "id", t.ID, "endDate", t.EndDate)
			}
		}
		freq := t.Frequency
		if !freq.Valid() {
			freq = models.FrequencyNone
		}
		idx.buckets[freq] = append(idx.buckets[freq], it)
		idx.size++
	}
	return idx
}

// Bucket returns the indexed transactions of one recurrence class, in the
// order the definitions were given.
func (idx *TransactionIndex) Bucket(f models.Frequency) []IndexedTransaction {
	return idx.buckets[f]
}

// Len is the number of indexed definitions.
func (idx *TransactionIndex) Len() int {
	return idx.size
}
