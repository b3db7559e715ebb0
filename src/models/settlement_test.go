package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOccurrenceKey(t *testing.T) {
	key, err := ParseOccurrenceKey("2024-01-05_1700000000123")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", key.Date)
	assert.Equal(t, int64(1700000000123), key.TransactionID)
	assert.Equal(t, "2024-01-05_1700000000123", key.String())
}

func TestParseOccurrenceKeyMalformed(t *testing.T) {
	for _, input := range []string{"", "nounderscore", "2024-01-05_", "_5", "2024-01-05_abc"} {
		_, err := ParseOccurrenceKey(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestSettlementMapUnmarshalLegacyBoolean(t *testing.T) {
	var m SettlementMap
	require.NoError(t, json.Unmarshal([]byte(`{"2024-01-05_7": true, "2024-01-06_7": false}`), &m))

	require.Len(t, m, 1, "false entries are dropped")
	s := m[OccurrenceKey{Date: "2024-01-05", TransactionID: 7}]
	assert.Equal(t, SettledLegacyFull, s.Kind)

	// Legacy entries are fully paid by definition, whatever the amount.
	amount := decimal.NewFromInt(250)
	assert.True(t, s.FullyPaid(amount))
	assert.True(t, s.EffectivePaid(amount).Equal(amount))
}

func TestSettlementMapUnmarshalPartialRecord(t *testing.T) {
	var m SettlementMap
	require.NoError(t, json.Unmarshal([]byte(`{"2024-01-05_7": {"paid": true, "amountPaid": 150}}`), &m))

	s, ok := m[OccurrenceKey{Date: "2024-01-05", TransactionID: 7}]
	require.True(t, ok)
	assert.Equal(t, SettledAmount, s.Kind)
	assert.True(t, s.Amount.Equal(decimal.NewFromInt(150)))

	assert.False(t, s.FullyPaid(decimal.NewFromInt(200)))
	assert.True(t, s.FullyPaid(decimal.NewFromInt(150)))
	assert.True(t, s.FullyPaid(decimal.NewFromInt(100)), "overpayment still counts as fully paid")
}

func TestSettlementMapMarshalRoundTrip(t *testing.T) {
	m := SettlementMap{
		{Date: "2024-01-05", TransactionID: 7}: {Kind: SettledLegacyFull},
		{Date: "2024-01-12", TransactionID: 9}: {Kind: SettledAmount, Amount: decimal.NewFromInt(75)},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var back SettlementMap
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, SettledLegacyFull, back[OccurrenceKey{Date: "2024-01-05", TransactionID: 7}].Kind)
	restored := back[OccurrenceKey{Date: "2024-01-12", TransactionID: 9}]
	assert.Equal(t, SettledAmount, restored.Kind)
	assert.True(t, restored.Amount.Equal(decimal.NewFromInt(75)))
}

func TestSettlementMapIgnoresJunkKeys(t *testing.T) {
	var m SettlementMap
	require.NoError(t, json.Unmarshal([]byte(`{"garbage": true, "2024-01-05_7": true}`), &m))
	assert.Len(t, m, 1)
}

func TestSkipMapRoundTrip(t *testing.T) {
	m := SkipMap{{Date: "2024-03-01", TransactionID: 3}: true}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2024-03-01_3": true}`, string(data))

	var back SkipMap
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back[OccurrenceKey{Date: "2024-03-01", TransactionID: 3}])
}
