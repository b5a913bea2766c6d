package repository

import (
	"context"

	"gorm.io/gorm"

	"mediakit/internal/domain"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

const tableOwnedByAgency = `SELECT rate_tables.id FROM rate_tables
	JOIN sections ON sections.id = rate_tables.section_id
	JOIN rate_cards ON rate_cards.id = sections.rate_card_id
	WHERE rate_cards.agency_id = ?`

func (r *ColumnRepository) Create(ctx context.Context, agencyID int64, c *domain.Column, position *int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&domain.Table{}).
			Where("id = ? AND id IN ("+tableOwnedByAgency+")", c.TableID, agencyID).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}

		if position != nil {
			c.Position = *position
		} else {
			c.Position, err = nextPosition(tx, "rate_columns", "table_id", c.TableID)
			if err != nil {
				return err
			}
		}

		return tx.Create(c).Error
	})
}

func (r *ColumnRepository) GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Column, error) {
	var c domain.Column
	err := r.db.WithContext(ctx).
		Where("id = ? AND table_id IN ("+tableOwnedByAgency+")", id, agencyID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ColumnRepository) ListByTable(ctx context.Context, tableID int64) ([]domain.Column, error) {
	var out []domain.Column
	err := r.db.WithContext(ctx).
		Where("table_id = ?", tableID).
		Order("position, id").
		Find(&out).Error
	return out, err
}

func (r *ColumnRepository) Update(ctx context.Context, agencyID int64, c *domain.Column) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Column{}).
		Where("id = ? AND table_id IN ("+tableOwnedByAgency+")", c.ID, agencyID).
		Select("name", "data_type", "position", "visible_on_frontend", "required_for_booking", "config").
		Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the column and its cells. Deletion is never blocked by
// bookings: their snapshots hold copies keyed by the column's former name.
func (r *ColumnRepository) Delete(ctx context.Context, id, agencyID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND table_id IN ("+tableOwnedByAgency+")", id, agencyID).
			Delete(&domain.Column{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Exec(`DELETE FROM cells WHERE column_id = ?`, id).Error
	})
}

func (r *ColumnRepository) Reorder(ctx context.Context, agencyID, tableID int64, updates []PositionUpdate) error {
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
		return applyReorder(tx, "rate_columns", "table_id", tableID, updates)
	})
}
