package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockRow adds a row-level lock to a read that opens a compare-and-commit
// section: booking conversion must not interleave with a bookable toggle or a
// row deletion, and the deletion guard must not interleave with a new booking.
// SQLite has a single writer and no FOR UPDATE syntax, so the clause applies
// on PostgreSQL only.
func lockRow(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
