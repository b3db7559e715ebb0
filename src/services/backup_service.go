// backend/src/services/backup_service.go
package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/username/prosper/backend/src/logger"
	"github.com/username/prosper/backend/src/models"
)

// Export snapshots every collection into the backup envelope.
func (s *plannerServiceImpl) Export() models.Backup {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions := append([]models.Transaction{}, s.transactions...)
	vaults := append([]models.Vault{}, s.vaults...)
	jars := append([]models.Jar{}, s.jars...)
	vaultOrder := append([]int64{}, s.vaultOrder...)
	jarOrder := append([]int64{}, s.jarOrder...)
	fulfilled := make(models.SettlementMap, len(s.settlements))
	for k, v := range s.settlements {
		fulfilled[k] = v
	}
	skipped := make(models.SkipMap, len(s.skips))
	for k, v := range s.skips {
		skipped[k] = v
	}

	return models.Backup{
		Version:      models.BackupVersion,
		ExportDate:   s.clock.Now().UTC().Format(time.RFC3339),
		Vaults:       &vaults,
		Jars:         &jars,
		Transactions: &transactions,
		FulfilledMap: &fulfilled,
		SkippedMap:   &skipped,
		VaultOrder:   &vaultOrder,
		JarOrder:     &jarOrder,
	}
}

// Import replaces state from a backup payload. Parsing is all-or-nothing:
// an unparseable payload mutates nothing. Each field is then applied
// independently: fields absent from the envelope leave the corresponding
// current state untouched, present fields fully replace it.
func (s *plannerServiceImpl) Import(payload []byte) error {
	var backup models.Backup
	if err := json.Unmarshal(payload, &backup); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if backup.Transactions != nil {
		s.transactions = *backup.Transactions
	}
	if backup.Vaults != nil {
		s.vaults = *backup.Vaults
	}
	if backup.Jars != nil {
		s.jars = *backup.Jars
	}
	if backup.FulfilledMap != nil {
		s.settlements = *backup.FulfilledMap
	}
	if backup.SkippedMap != nil {
		s.skips = *backup.SkippedMap
	}
	if backup.VaultOrder != nil {
		s.vaultOrder = *backup.VaultOrder
	}
	if backup.JarOrder != nil {
		s.jarOrder = *backup.JarOrder
	}
	if s.settlements == nil {
		s.settlements = models.SettlementMap{}
	}
	if s.skips == nil {
		s.skips = models.SkipMap{}
	}

	s.rebuildIndexLocked()
	if err := s.persistAll(); err != nil {
		return err
	}
	logger.L.Info("Backup imported",
		"exportDate", backup.ExportDate,
		"transactions", len(s.transactions),
		"vaults", len(s.vaults),
		"jars", len(s.jars))
	return nil
}

// ClearAll resets every collection to empty and persists the empty state.
func (s *plannerServiceImpl) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = []models.Transaction{}
	s.vaults = []models.Vault{}
	s.jars = []models.Jar{}
	s.settlements = models.SettlementMap{}
	s.skips = models.SkipMap{}
	s.vaultOrder = []int64{}
	s.jarOrder = []int64{}

	s.rebuildIndexLocked()
	if err := s.persistAll(); err != nil {
		return err
	}
	logger.L.Info("All planner data cleared")
	return nil
}
