package models

import "time"

// TransactionLog guards the add endpoint against retried submissions.
// A row is created unprocessed inside the same database transaction
// as its LedgerEntry and flipped to processed before commit, so a
// processed row proves the entry landed exactly once.
type TransactionLog struct {
	TransactionID string    `gorm:"column:transaction_id;primaryKey"`
	Timestamp     time.Time `gorm:"column:timestamp;autoCreateTime"`
	Processed     bool      `gorm:"column:processed;not null;default:false"`
}

// TableName matches the migration.
func (TransactionLog) TableName() string {
	return "transaction_log"
}
