// backend/src/services/planner_service.go
package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/username/prosper/backend/src/logger"
	"github.com/username/prosper/backend/src/models"
	"github.com/username/prosper/backend/src/processors"
)

// Document keys in the storage provider. The names match the original
// localStorage/export layout so old backups import cleanly.
const (
	dkTransactions = "transactions"
	dkVaults       = "vaults"
	dkJars         = "jars"
	dkFulfilled    = "fulfilledMap"
	dkSkipped      = "skippedMap"
	dkVaultOrder   = "vaultOrder"
	dkJarOrder     = "jarOrder"
)

type plannerServiceImpl struct {
	// One mutex for the whole state: every operation is a short synchronous
	// computation, so a single critical section keeps mutation, reindexing,
	// invalidation and persistence atomic.
	mu sync.Mutex

	store Store
	clock Clock

	transactions []models.Transaction
	vaults       []models.Vault
	jars         []models.Jar
	settlements  models.SettlementMap
	skips        models.SkipMap
	vaultOrder   []int64
	jarOrder     []int64

	// Derived state. The index is rebuilt after every transaction-set
	// mutation; the day cache is flushed after any mutation that can change
	// a day's net. Both are lazily consulted, never persisted.
	index    *processors.TransactionIndex
	dayCache *cache.Cache

	// Month navigation stays bounded: views further than this many years
	// from today are rejected rather than walked day-by-day.
	maxNavigationYears int

	lastID int64
}

// NewPlannerService loads persisted state from the store and builds the
// derived index. Missing documents mean a fresh install and load as empty.
func NewPlannerService(store Store, clock Clock, dayCache *cache.Cache, maxNavigationYears int) (PlannerService, error) {
	s := &plannerServiceImpl{
		store:              store,
		clock:              clock,
		dayCache:           dayCache,
		settlements:        models.SettlementMap{},
		skips:              models.SkipMap{},
		maxNavigationYears: maxNavigationYears,
	}
	if err := s.loadAll(); err != nil {
		return nil, err
	}
	s.index = processors.BuildIndex(s.transactions)
	logger.L.Info("Planner state loaded",
		"transactions", len(s.transactions),
		"vaults", len(s.vaults),
		"jars", len(s.jars),
		"settled", len(s.settlements),
		"skipped", len(s.skips))
	return s, nil
}

func (s *plannerServiceImpl) loadAll() error {
	if err := s.loadDoc(dkTransactions, &s.transactions); err != nil {
		return err
	}
	if err := s.loadDoc(dkVaults, &s.vaults); err != nil {
		return err
	}
	if err := s.loadDoc(dkJars, &s.jars); err != nil {
		return err
	}
	if err := s.loadDoc(dkFulfilled, &s.settlements); err != nil {
		return err
	}
	if err := s.loadDoc(dkSkipped, &s.skips); err != nil {
		return err
	}
	if err := s.loadDoc(dkVaultOrder, &s.vaultOrder); err != nil {
		return err
	}
	if err := s.loadDoc(dkJarOrder, &s.jarOrder); err != nil {
		return err
	}
	if s.settlements == nil {
		s.settlements = models.SettlementMap{}
	}
	if s.skips == nil {
		s.skips = models.SkipMap{}
	}
	return nil
}

func (s *plannerServiceImpl) loadDoc(key string, target any) error {
	data, found, err := s.store.Load(key)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("corrupt document %q: %w", key, err)
	}
	return nil
}

// persistAll writes every collection back to the store. The original app
// saved the whole snapshot after each mutation; the documents are small and
// the simplicity removes a class of partial-save bugs.
func (s *plannerServiceImpl) persistAll() error {
	docs := []struct {
		key   string
		value any
	}{
		{dkTransactions, s.transactions},
		{dkVaults, s.vaults},
		{dkJars, s.jars},
		{dkFulfilled, s.settlements},
		{dkSkipped, s.skips},
		{dkVaultOrder, s.vaultOrder},
		{dkJarOrder, s.jarOrder},
	}
	for _, doc := range docs {
		data, err := json.Marshal(doc.value)
		if err != nil {
			return fmt.Errorf("marshaling %q: %w", doc.key, err)
		}
		if err := s.store.Save(doc.key, data); err != nil {
			return err
		}
	}
	return nil
}

// rebuildIndexLocked refreshes the derived index and drops every memoized
// day. Caller holds the mutex.
func (s *plannerServiceImpl) rebuildIndexLocked() {
	s.index = processors.BuildIndex(s.transactions)
	s.dayCache.Flush()
}

// InvalidateCaches drops all derived state and rebuilds the index. Exposed
// for collaborators that mutate storage out-of-band.
func (s *plannerServiceImpl) InvalidateCaches() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuildIndexLocked()
}

// nextIDLocked generates a fresh id. Epoch millis, like the original app,
// nudged forward on collision so two mutations in the same millisecond stay
// distinct.
func (s *plannerServiceImpl) nextIDLocked() int64 {
	id := s.clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for s.idTakenLocked(id) {
		id++
	}
	s.lastID = id
	return id
}

func (s *plannerServiceImpl) idTakenLocked(id int64) bool {
	for _, t := range s.transactions {
		if t.ID == id {
			return true
		}
	}
	for _, v := range s.vaults {
		if v.ID == id {
			return true
		}
	}
	for _, j := range s.jars {
		if j.ID == id {
			return true
		}
	}
	return false
}

// VaultTotal sums all vault balances: the projection anchor.
func (s *plannerServiceImpl) VaultTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vaultTotalLocked()
}

func (s *plannerServiceImpl) vaultTotalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.vaults {
		total = total.Add(v.Balance)
	}
	return total
}
