package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// OccurrenceKey identifies one concrete occurrence of a transaction: the
// calendar date it falls on plus the owning transaction id. Persisted form is
// the legacy "YYYY-MM-DD_<id>" string; in memory it is a structural key so
// settlement lookups never depend on string parsing.
type OccurrenceKey struct {
	Date          string
	TransactionID int64
}

func (k OccurrenceKey) String() string {
	return fmt.Sprintf("%s_%d", k.Date, k.TransactionID)
}

// ParseOccurrenceKey converts the persisted "date_id" form back into a
// structural key. The date part may itself contain no underscores, so the
// split is anchored on the last one.
func ParseOccurrenceKey(s string) (OccurrenceKey, error) {
	idx := strings.LastIndex(s, "_")
	if idx <= 0 || idx == len(s)-1 {
		return OccurrenceKey{}, fmt.Errorf("malformed occurrence key %q", s)
	}
	id, err := strconv.ParseInt(s[idx+1:], 10, 64)
	if err != nil {
		return OccurrenceKey{}, fmt.Errorf("malformed occurrence key %q: %w", s, err)
	}
	return OccurrenceKey{Date: s[:idx], TransactionID: id}, nil
}

// SettlementKind tags the two persisted payment forms. Old backups stored a
// bare boolean true for "fully paid"; newer ones store the paid amount.
type SettlementKind int

const (
	// SettledLegacyFull marks the legacy boolean form: fully paid, no
	// amount recorded. Its effective paid amount is the transaction's own
	// amount at read time.
	SettledLegacyFull SettlementKind = iota
	// SettledAmount carries an explicit paid amount; whether it is partial
	// or full is derived by comparing against the transaction amount.
	SettledAmount
)

// Settlement is the payment record for one occurrence. Absence from the
// settlement map means unsettled.
type Settlement struct {
	Kind   SettlementKind
	Amount decimal.Decimal
}

// EffectivePaid resolves the amount actually paid given the owning
// transaction's amount (legacy entries paid the full amount by definition).
func (s Settlement) EffectivePaid(txAmount decimal.Decimal) decimal.Decimal {
	if s.Kind == SettledLegacyFull {
		return txAmount
	}
	return s.Amount
}

// FullyPaid reports whether the occurrence is settled in full.
func (s Settlement) FullyPaid(txAmount decimal.Decimal) bool {
	return s.EffectivePaid(txAmount).GreaterThanOrEqual(txAmount)
}

// settlementJSON is the object form used by newer persisted entries.
type settlementJSON struct {
	Paid       bool            `json:"paid"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

// SettlementMap is the in-memory settlement state, keyed structurally. Its
// JSON form matches the persisted map: string keys "date_id" mapping to
// either boolean true (legacy) or {"paid":true,"amountPaid":N}.
type SettlementMap map[OccurrenceKey]Settlement

func (m SettlementMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v.Kind == SettledLegacyFull {
			out[k.String()] = true
		} else {
			out[k.String()] = settlementJSON{Paid: true, AmountPaid: v.Amount}
		}
	}
	return json.Marshal(out)
}

func (m *SettlementMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := make(SettlementMap, len(raw))
	for ks, vs := range raw {
		key, err := ParseOccurrenceKey(ks)
		if err != nil {
			// Tolerate junk entries from hand-edited backups.
			continue
		}
		var asBool bool
		if err := json.Unmarshal(vs, &asBool); err == nil {
			if asBool {
				parsed[key] = Settlement{Kind: SettledLegacyFull}
			}
			continue
		}
		var obj settlementJSON
		if err := json.Unmarshal(vs, &obj); err != nil {
			return fmt.Errorf("settlement entry %q: %w", ks, err)
		}
		if obj.Paid && obj.AmountPaid.IsPositive() {
			parsed[key] = Settlement{Kind: SettledAmount, Amount: obj.AmountPaid}
		}
	}
	*m = parsed
	return nil
}

// SkipMap marks occurrences excluded from review-mode nets. JSON form is the
// persisted {"date_id": true} map.
type SkipMap map[OccurrenceKey]bool

func (m SkipMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		if v {
			out[k.String()] = true
		}
	}
	return json.Marshal(out)
}

func (m *SkipMap) UnmarshalJSON(data []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := make(SkipMap, len(raw))
	for ks, v := range raw {
		if !v {
			continue
		}
		key, err := ParseOccurrenceKey(ks)
		if err != nil {
			continue
		}
		parsed[key] = true
	}
	*m = parsed
	return nil
}
