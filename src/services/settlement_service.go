// backend/src/services/settlement_service.go
package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/username/prosper/backend/src/logger"
	"github.com/username/prosper/backend/src/models"
	"github.com/username/prosper/backend/src/processors"
)

// RecordPayment stores the paid amount for one occurrence. A non-positive
// amount clears the entry back to unsettled. Whether the payment is partial
// or full is derived at read time from the transaction's amount, never
// stored redundantly. Payments against ids that no longer exist are no-ops.
func (s *plannerServiceImpl) RecordPayment(dateKey string, transactionID int64, amountPaid decimal.Decimal) error {
	if _, err := processors.ParseDate(dateKey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.transactionExistsLocked(transactionID) {
		logger.L.Warn("RecordPayment ignored for unknown transaction", "id", transactionID, "dateKey", dateKey)
		return nil
	}

	key := models.OccurrenceKey{Date: dateKey, TransactionID: transactionID}
	if amountPaid.IsPositive() {
		s.settlements[key] = models.Settlement{Kind: models.SettledAmount, Amount: amountPaid}
	} else {
		delete(s.settlements, key)
	}
	s.dayCache.Flush()
	if err := s.persistAll(); err != nil {
		return err
	}
	logger.L.Info("Payment recorded", "dateKey", dateKey, "transactionID", transactionID, "amountPaid", amountPaid)
	return nil
}

// Unpay clears the settlement entry unconditionally. Clearing a missing
// entry is not an error.
func (s *plannerServiceImpl) Unpay(dateKey string, transactionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.OccurrenceKey{Date: dateKey, TransactionID: transactionID}
	delete(s.settlements, key)
	s.dayCache.Flush()
	if err := s.persistAll(); err != nil {
		return err
	}
	logger.L.Info("Payment cleared", "dateKey", dateKey, "transactionID", transactionID)
	return nil
}

// ToggleSkip flips review-mode exclusion for one occurrence. The skip axis
// is independent of the payment axis. Stale ids are no-ops.
func (s *plannerServiceImpl) ToggleSkip(dateKey string, transactionID int64) error {
	if _, err := processors.ParseDate(dateKey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.transactionExistsLocked(transactionID) {
		logger.L.Warn("ToggleSkip ignored for unknown transaction", "id", transactionID, "dateKey", dateKey)
		return nil
	}

	key := models.OccurrenceKey{Date: dateKey, TransactionID: transactionID}
	if s.skips[key] {
		delete(s.skips, key)
	} else {
		s.skips[key] = true
	}
	s.dayCache.Flush()
	if err := s.persistAll(); err != nil {
		return err
	}
	logger.L.Info("Skip toggled", "dateKey", dateKey, "transactionID", transactionID, "skipped", s.skips[key])
	return nil
}

// GetSettlement reports the payment record for one occurrence, if any.
func (s *plannerServiceImpl) GetSettlement(dateKey string, transactionID int64) (models.Settlement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settlement, ok := s.settlements[models.OccurrenceKey{Date: dateKey, TransactionID: transactionID}]
	return settlement, ok
}

// IsSkipped reports whether one occurrence is marked skipped.
func (s *plannerServiceImpl) IsSkipped(dateKey string, transactionID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skips[models.OccurrenceKey{Date: dateKey, TransactionID: transactionID}]
}

func (s *plannerServiceImpl) transactionExistsLocked(id int64) bool {
	for _, t := range s.transactions {
		if t.ID == id {
			return true
		}
	}
	return false
}
