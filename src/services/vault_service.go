// backend/src/services/vault_service.go
package services

import (
	"github.com/username/prosper/backend/src/logger"
	"github.com/username/prosper/backend/src/models"
	"github.com/username/prosper/backend/src/security/validation"
)

// ListVaults returns vaults in their explicit display order. Vaults missing
// from the order list (older data) keep insertion order at the end.
func (s *plannerServiceImpl) ListVaults() []models.Vault {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[int64]models.Vault, len(s.vaults))
	for _, v := range s.vaults {
		byID[v.ID] = v
	}
	out := make([]models.Vault, 0, len(s.vaults))
	seen := make(map[int64]bool, len(s.vaults))
	for _, id := range s.vaultOrder {
		if v, ok := byID[id]; ok && !seen[id] {
			out = append(out, v)
			seen[id] = true
		}
	}
	for _, v := range s.vaults {
		if !seen[v.ID] {
			out = append(out, v)
		}
	}
	return out
}

// SaveVault creates (zero id) or updates a vault. Updating an unknown id is
// a no-op.
func (s *plannerServiceImpl) SaveVault(v models.Vault) (models.Vault, error) {
	v.Name = validation.CleanLabel(v.Name)
	if err := validation.ValidateVault(v); err != nil {
		return models.Vault{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == 0 {
		v.ID = s.nextIDLocked()
		s.vaults = append(s.vaults, v)
		s.vaultOrder = append(s.vaultOrder, v.ID)
	} else {
		found := false
		for i := range s.vaults {
			if s.vaults[i].ID == v.ID {
				s.vaults[i] = v
				found = true
				break
			}
		}
		if !found {
			logger.L.Warn("SaveVault ignored for unknown id", "id", v.ID)
			return v, nil
		}
	}
	if err := s.persistAll(); err != nil {
		return models.Vault{}, err
	}
	logger.L.Info("Vault saved", "id", v.ID, "name", v.Name)
	return v, nil
}

// DeleteVault removes a vault and its order entry. Unknown ids are no-ops.
func (s *plannerServiceImpl) DeleteVault(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.vaults[:0]
	removed := false
	for _, v := range s.vaults {
		if v.ID == id {
			removed = true
			continue
		}
		kept = append(kept, v)
	}
	if !removed {
		return nil
	}
	s.vaults = kept
	s.vaultOrder = removeID(s.vaultOrder, id)
	if err := s.persistAll(); err != nil {
		return err
	}
	logger.L.Info("Vault deleted", "id", id)
	return nil
}

// ReorderVaults replaces the display order. Unknown ids are dropped; vaults
// absent from the new order are appended in their current order.
func (s *plannerServiceImpl) ReorderVaults(order []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vaultOrder = normalizeOrder(order, vaultIDs(s.vaults))
	return s.persistAll()
}

// ListJars returns jars in their explicit display order.
func (s *plannerServiceImpl) ListJars() []models.Jar {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[int64]models.Jar, len(s.jars))
	for _, j := range s.jars {
		byID[j.ID] = j
	}
	out := make([]models.Jar, 0, len(s.jars))
	seen := make(map[int64]bool, len(s.jars))
	for _, id := range s.jarOrder {
		if j, ok := byID[id]; ok && !seen[id] {
			out = append(out, j)
			seen[id] = true
		}
	}
	for _, j := range s.jars {
		if !seen[j.ID] {
			out = append(out, j)
		}
	}
	return out
}

// SaveJar creates (zero id) or updates a jar. Jars do not touch the
// projection engine, so no cache work is needed.
func (s *plannerServiceImpl) SaveJar(j models.Jar) (models.Jar, error) {
	j.Name = validation.CleanLabel(j.Name)
	if err := validation.ValidateJar(j); err != nil {
		return models.Jar{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if j.ID == 0 {
		j.ID = s.nextIDLocked()
		s.jars = append(s.jars, j)
		s.jarOrder = append(s.jarOrder, j.ID)
	} else {
		found := false
		for i := range s.jars {
			if s.jars[i].ID == j.ID {
				s.jars[i] = j
				found = true
				break
			}
		}
		if !found {
			logger.L.Warn("SaveJar ignored for unknown id", "id", j.ID)
			return j, nil
		}
	}
	if err := s.persistAll(); err != nil {
		return models.Jar{}, err
	}
	logger.L.Info("Jar saved", "id", j.ID, "name", j.Name)
	return j, nil
}

// DeleteJar removes a jar and its order entry. Unknown ids are no-ops.
func (s *plannerServiceImpl) DeleteJar(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.jars[:0]
	removed := false
	for _, j := range s.jars {
		if j.ID == id {
			removed = true
			continue
		}
		kept = append(kept, j)
	}
	if !removed {
		return nil
	}
	s.jars = kept
	s.jarOrder = removeID(s.jarOrder, id)
	if err := s.persistAll(); err != nil {
		return err
	}
	logger.L.Info("Jar deleted", "id", id)
	return nil
}

// ReorderJars replaces the jar display order.
func (s *plannerServiceImpl) ReorderJars(order []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jarOrder = normalizeOrder(order, jarIDs(s.jars))
	return s.persistAll()
}

func vaultIDs(vaults []models.Vault) []int64 {
	ids := make([]int64, len(vaults))
	for i, v := range vaults {
		ids[i] = v.ID
	}
	return ids
}

func jarIDs(jars []models.Jar) []int64 {
	ids := make([]int64, len(jars))
	for i, j := range jars {
		ids[i] = j.ID
	}
	return ids
}

func removeID(order []int64, id int64) []int64 {
	kept := order[:0]
	for _, existing := range order {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return kept
}

// normalizeOrder keeps only known ids from the requested order, then appends
// any known id the request missed, preserving current relative order.
func normalizeOrder(requested, known []int64) []int64 {
	knownSet := make(map[int64]bool, len(known))
	for _, id := range known {
		knownSet[id] = true
	}
	out := make([]int64, 0, len(known))
	seen := make(map[int64]bool, len(known))
	for _, id := range requested {
		if knownSet[id] && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	for _, id := range known {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}
