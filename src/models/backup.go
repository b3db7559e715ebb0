package models

// Backup is the export envelope. Import validates each field independently:
// a missing (null) field leaves the current state for that field unchanged,
// a present field fully replaces it. Pointer fields make presence explicit.
type Backup struct {
	Version      string         `json:"version"`
	ExportDate   string         `json:"exportDate"`
	Vaults       *[]Vault       `json:"vaults,omitempty"`
	Jars         *[]Jar         `json:"jars,omitempty"`
	Transactions *[]Transaction `json:"transactions,omitempty"`
	FulfilledMap *SettlementMap `json:"fulfilledMap,omitempty"`
	SkippedMap   *SkipMap       `json:"skippedMap,omitempty"`
	VaultOrder   *[]int64       `json:"vaultOrder,omitempty"`
	JarOrder     *[]int64       `json:"jarOrder,omitempty"`
}

// BackupVersion is the envelope version written on export.
const BackupVersion = "1.0"
