package repository

import (
	"context"

	"gorm.io/gorm"

	"mediakit/internal/domain"
)

type TableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) Create(ctx context.Context, agencyID int64, t *domain.Table, position *int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&domain.Section{}).
			Where("id = ? AND rate_card_id IN (SELECT id FROM rate_cards WHERE agency_id = ?)", t.SectionID, agencyID).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}

		if position != nil {
			t.Position = *position
		} else {
			t.Position, err = nextPosition(tx, "rate_tables", "section_id", t.SectionID)
			if err != nil {
				return err
			}
		}

		return tx.Create(t).Error
	})
}

func (r *TableRepository) GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Table, error) {
	var t domain.Table
	err := r.db.WithContext(ctx).
		Joins("JOIN sections ON sections.id = rate_tables.section_id").
		Joins("JOIN rate_cards ON rate_cards.id = sections.rate_card_id").
		Where("rate_tables.id = ? AND rate_cards.agency_id = ?", id, agencyID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) Update(ctx context.Context, agencyID int64, t *domain.Table) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Table{}).
		Where(`id = ? AND section_id IN (
			SELECT sections.id FROM sections
			JOIN rate_cards ON rate_cards.id = sections.rate_card_id
			WHERE rate_cards.agency_id = ?)`, t.ID, agencyID).
		Select("title", "position").
		Updates(t)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete cascades to columns, rows and cells. Existing bookings keep their
// snapshots; only the row provenance link is severed.
func (r *TableRepository) Delete(ctx context.Context, id, agencyID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(`id = ? AND section_id IN (
			SELECT sections.id FROM sections
			JOIN rate_cards ON rate_cards.id = sections.rate_card_id
			WHERE rate_cards.agency_id = ?)`, id, agencyID).
			Delete(&domain.Table{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Exec(`UPDATE bookings SET row_id = NULL WHERE row_id IN (
			SELECT id FROM rate_rows WHERE table_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM cells WHERE row_id IN (
			SELECT id FROM rate_rows WHERE table_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM rate_rows WHERE table_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM rate_columns WHERE table_id = ?`, id).Error
	})
}

func (r *TableRepository) Reorder(ctx context.Context, agencyID, sectionID int64, updates []PositionUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&domain.Section{}).
			Where("id = ? AND rate_card_id IN (SELECT id FROM rate_cards WHERE agency_id = ?)", sectionID, agencyID).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}
		return applyReorder(tx, "rate_tables", "section_id", sectionID, updates)
	})
}
