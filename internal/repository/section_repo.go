package repository

import (
	"context"

	"gorm.io/gorm"

	"mediakit/internal/domain"
)

type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// Create verifies the parent rate card belongs to the acting agency and
// assigns max+1 position when the caller supplied none.
func (r *SectionRepository) Create(ctx context.Context, agencyID int64, s *domain.Section, position *int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&domain.RateCard{}).
			Where("id = ? AND agency_id = ?", s.RateCardID, agencyID).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}

		if position != nil {
			s.Position = *position
		} else {
			s.Position, err = nextPosition(tx, "sections", "rate_card_id", s.RateCardID)
			if err != nil {
				return err
			}
		}

		return tx.Create(s).Error
	})
}

func (r *SectionRepository) GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Section, error) {
	var s domain.Section
	err := r.db.WithContext(ctx).
		Joins("JOIN rate_cards ON rate_cards.id = sections.rate_card_id").
		Where("sections.id = ? AND rate_cards.agency_id = ?", id, agencyID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) Update(ctx context.Context, agencyID int64, s *domain.Section) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Section{}).
		Where("id = ? AND rate_card_id IN (SELECT id FROM rate_cards WHERE agency_id = ?)", s.ID, agencyID).
		Select("title", "position").
		Updates(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete cascades to the section's tables, columns, rows and cells.
func (r *SectionRepository) Delete(ctx context.Context, id, agencyID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND rate_card_id IN (SELECT id FROM rate_cards WHERE agency_id = ?)", id, agencyID).
			Delete(&domain.Section{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		const rows = `SELECT id FROM rate_rows WHERE table_id IN (
			SELECT id FROM rate_tables WHERE section_id = ?)`

		if err := tx.Exec(`UPDATE bookings SET row_id = NULL WHERE row_id IN (`+rows+`)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM cells WHERE row_id IN (`+rows+`)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM rate_rows WHERE table_id IN (
			SELECT id FROM rate_tables WHERE section_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM rate_columns WHERE table_id IN (
			SELECT id FROM rate_tables WHERE section_id = ?)`, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM rate_tables WHERE section_id = ?`, id).Error
	})
}

// Reorder applies a batch of position updates atomically.
func (r *SectionRepository) Reorder(ctx context.Context, agencyID, rateCardID int64, updates []PositionUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&domain.RateCard{}).
			Where("id = ? AND agency_id = ?", rateCardID, agencyID).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}
		return applyReorder(tx, "sections", "rate_card_id", rateCardID, updates)
	})
}
