package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mediakit/internal/domain"
)

type CellRepository struct {
	db *gorm.DB
}

func NewCellRepository(db *gorm.DB) *CellRepository {
	return &CellRepository{db: db}
}

// CellWrite is one (column, value) pair of an upsert batch.
type CellWrite struct {
	ColumnID int64  `json:"column_id" binding:"required"`
	Value    string `json:"value"`
}

// Upsert writes a batch of cells for one row as a single transaction. An
// existing (row, column) pair is updated in place, so replaying the same
// payload is idempotent. Every column must belong to the row's table.
func (r *CellRepository) Upsert(ctx context.Context, agencyID, rowID int64, writes []CellWrite) ([]domain.Cell, error) {
	var out []domain.Cell

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row domain.Row
		err := tx.Where("id = ? AND table_id IN ("+tableOwnedByAgency+")", rowID, agencyID).
			First(&row).Error
		if err != nil {
			return err
		}

		// A repeated column in one batch would make the multi-row
		// ON CONFLICT insert touch the same row twice, which PostgreSQL
		// rejects. Collapse duplicates first; the last value wins.
		index := make(map[int64]int, len(writes))
		cells := make([]domain.Cell, 0, len(writes))
		for _, w := range writes {
			if i, ok := index[w.ColumnID]; ok {
				cells[i].Value = w.Value
				continue
			}
			index[w.ColumnID] = len(cells)
			cells = append(cells, domain.Cell{RowID: rowID, ColumnID: w.ColumnID, Value: w.Value})
		}
		if len(cells) == 0 {
			return nil
		}

		if err := columnsBelongToTable(tx, row.TableID, cells); err != nil {
			return err
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "row_id"}, {Name: "column_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&cells).Error
		if err != nil {
			return err
		}

		return tx.Preload("Column").
			Where("row_id = ?", rowID).
			Order("column_id").
			Find(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByRow returns the row's cells joined with their column metadata.
func (r *CellRepository) ListByRow(ctx context.Context, rowID int64) ([]domain.Cell, error) {
	var out []domain.Cell
	err := r.db.WithContext(ctx).
		Preload("Column").
		Where("row_id = ?", rowID).
		Order("column_id").
		Find(&out).Error
	return out, err
}
