package repository

import (
	"context"

	"gorm.io/gorm"

	"mediakit/internal/domain"
)

type RowRepository struct {
	db *gorm.DB
}

func NewRowRepository(db *gorm.DB) *RowRepository {
	return &RowRepository{db: db}
}

// Create inserts the row and its initial cells in one transaction. Every
// cell's column must belong to the row's table.
func (r *RowRepository) Create(ctx context.Context, agencyID int64, row *domain.Row, position *int, cells []domain.Cell) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&domain.Table{}).
			Where("id = ? AND id IN ("+tableOwnedByAgency+")", row.TableID, agencyID).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}

		if position != nil {
			row.Position = *position
		} else {
			row.Position, err = nextPosition(tx, "rate_rows", "table_id", row.TableID)
			if err != nil {
				return err
			}
		}

		if err := tx.Create(row).Error; err != nil {
			return err
		}
		if len(cells) == 0 {
			return nil
		}

		if err := columnsBelongToTable(tx, row.TableID, cells); err != nil {
			return err
		}
		for i := range cells {
			cells[i].RowID = row.ID
		}
		if err := tx.Create(&cells).Error; err != nil {
			return err
		}
		row.Cells = cells
		return nil
	})
}

func (r *RowRepository) GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Row, error) {
	var row domain.Row
	err := r.db.WithContext(ctx).
		Preload("Cells", func(db *gorm.DB) *gorm.DB {
			return db.Order("cells.column_id")
		}).
		Preload("Cells.Column").
		Where("id = ? AND table_id IN ("+tableOwnedByAgency+")", id, agencyID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *RowRepository) Update(ctx context.Context, agencyID int64, row *domain.Row) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Row{}).
		Where("id = ? AND table_id IN ("+tableOwnedByAgency+")", row.ID, agencyID).
		Select("position", "bookable").
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete physically removes the row and its cells, unless any booking still
// references the row: then the whole transaction fails with
// RowReferencedError carrying the count.
func (r *RowRepository) Delete(ctx context.Context, id, agencyID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locking the row keeps an in-flight booking conversion from
		// committing a reference after the count below reads zero.
		var row domain.Row
		err := lockRow(tx).
			Where("id = ? AND table_id IN ("+tableOwnedByAgency+")", id, agencyID).
			First(&row).Error
		if err != nil {
			return err
		}

		var bookings int64
		err = tx.Model(&domain.Booking{}).
			Where("row_id = ?", id).
			Count(&bookings).Error
		if err != nil {
			return err
		}
		if bookings > 0 {
			return &RowReferencedError{Bookings: bookings}
		}

		if err := tx.Exec(`DELETE FROM cells WHERE row_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Row{}, id).Error
	})
}

func (r *RowRepository) Reorder(ctx context.Context, agencyID, tableID int64, updates []PositionUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&domain.Table{}).
			Where("id = ? AND id IN ("+tableOwnedByAgency+")", tableID, agencyID).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}
		return applyReorder(tx, "rate_rows", "table_id", tableID, updates)
	})
}

// columnsBelongToTable rejects any cell whose column lives on another table.
func columnsBelongToTable(tx *gorm.DB, tableID int64, cells []domain.Cell) error {
	ids := make(map[int64]struct{}, len(cells))
	for _, c := range cells {
		ids[c.ColumnID] = struct{}{}
	}
	colIDs := make([]int64, 0, len(ids))
	for id := range ids {
		colIDs = append(colIDs, id)
	}

	var cnt int64
	err := tx.Model(&domain.Column{}).
		Where("id IN ? AND table_id = ?", colIDs, tableID).
		Count(&cnt).Error
	if err != nil {
		return err
	}
	if cnt != int64(len(colIDs)) {
		return gorm.ErrRecordNotFound
	}
	return nil
}
