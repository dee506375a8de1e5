package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withUpdateLock adds SELECT ... FOR UPDATE on dialects that support it.
// SQLite has no row locks; its single-writer lock already serializes the
// transaction, so the clause is skipped there.
func withUpdateLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
