// backend/src/services/transaction_service.go
package services

import (
	"strings"

	"github.com/username/prosper/backend/src/logger"
	"github.com/username/prosper/backend/src/models"
	"github.com/username/prosper/backend/src/processors"
	"github.com/username/prosper/backend/src/security/validation"
)

// ListTransactions partitions definitions into active and completed the way
// the transactions page shows them. A definition is completed when it is
// one-time and in the past, its end date has passed, or it is one-time and
// fully paid. An optional search term filters by substring across name,
// amount, frequency, date, and category.
func (s *plannerServiceImpl) ListTransactions(filter models.TransactionListFilter, search string) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	todayKey := processors.DateKey(s.clock.Now())
	search = strings.ToLower(strings.TrimSpace(search))

	out := []models.Transaction{}
	for _, t := range s.transactions {
		finished := s.isFinishedLocked(t, todayKey)
		if filter == models.FilterCompleted && !finished {
			continue
		}
		if filter != models.FilterCompleted && finished {
			continue
		}
		if search != "" && !transactionMatchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *plannerServiceImpl) isFinishedLocked(t models.Transaction, todayKey string) bool {
	oneTimePast := t.Frequency == models.FrequencyNone && t.Date < todayKey
	expired := t.EndDate != "" && t.EndDate < todayKey
	paid := false
	if t.Frequency == models.FrequencyNone {
		key := models.OccurrenceKey{Date: t.Date, TransactionID: t.ID}
		if settlement, ok := s.settlements[key]; ok {
			paid = settlement.FullyPaid(t.Amount)
		}
	}
	return oneTimePast || expired || paid
}

func transactionMatchesSearch(t models.Transaction, search string) bool {
	return strings.Contains(strings.ToLower(t.Name), search) ||
		strings.Contains(t.Amount.String(), search) ||
		strings.Contains(string(t.Frequency), search) ||
		strings.Contains(t.Date, search) ||
		strings.Contains(strings.ToLower(t.Category), search)
}

// AddTransaction validates, assigns an id, and appends a new definition.
func (s *plannerServiceImpl) AddTransaction(t models.Transaction) (models.Transaction, error) {
	t = cleanTransaction(t)
	if err := validation.ValidateTransaction(t); err != nil {
		return models.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextIDLocked()
	s.transactions = append(s.transactions, t)
	s.rebuildIndexLocked()
	if err := s.persistAll(); err != nil {
		return models.Transaction{}, err
	}
	logger.L.Info("Transaction added", "id", t.ID, "name", t.Name, "frequency", t.Frequency)
	return t, nil
}

// UpdateTransaction replaces an existing definition in place. An unknown id
// is a no-op: the caller may be working from a stale view.
func (s *plannerServiceImpl) UpdateTransaction(t models.Transaction) (models.Transaction, error) {
	t = cleanTransaction(t)
	if err := validation.ValidateTransaction(t); err != nil {
		return models.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID != t.ID {
			continue
		}
		s.transactions[i] = t
		s.rebuildIndexLocked()
		if err := s.persistAll(); err != nil {
			return models.Transaction{}, err
		}
		logger.L.Info("Transaction updated", "id", t.ID, "name", t.Name)
		return t, nil
	}
	logger.L.Warn("UpdateTransaction ignored for unknown id", "id", t.ID)
	return t, nil
}

// DeleteTransaction removes a definition and cascades: every settlement and
// skip entry keyed to its id goes with it. Unknown ids are a no-op.
func (s *plannerServiceImpl) DeleteTransaction(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.transactions[:0]
	removed := false
	for _, t := range s.transactions {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		logger.L.Warn("DeleteTransaction ignored for unknown id", "id", id)
		return nil
	}
	s.transactions = kept

	for key := range s.settlements {
		if key.TransactionID == id {
			delete(s.settlements, key)
		}
	}
	for key := range s.skips {
		if key.TransactionID == id {
			delete(s.skips, key)
		}
	}

	s.rebuildIndexLocked()
	if err := s.persistAll(); err != nil {
		return err
	}
	logger.L.Info("Transaction deleted with cascaded occurrence state", "id", id)
	return nil
}

// CopyTransaction duplicates a definition under a fresh id with a " (Copy)"
// suffix, settlement state not included.
func (s *plannerServiceImpl) CopyTransaction(id int64) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.transactions {
		if t.ID != id {
			continue
		}
		dup := t
		dup.ID = s.nextIDLocked()
		dup.Name = t.Name + " (Copy)"
		s.transactions = append(s.transactions, dup)
		s.rebuildIndexLocked()
		if err := s.persistAll(); err != nil {
			return models.Transaction{}, err
		}
		logger.L.Info("Transaction copied", "sourceID", id, "newID", dup.ID)
		return dup, nil
	}
	logger.L.Warn("CopyTransaction ignored for unknown id", "id", id)
	return models.Transaction{}, nil
}

func cleanTransaction(t models.Transaction) models.Transaction {
	t.Name = validation.CleanLabel(t.Name)
	t.Category = validation.CleanLabel(t.Category)
	return t
}
