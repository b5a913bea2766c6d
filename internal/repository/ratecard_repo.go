package repository

import (
	"context"

	"gorm.io/gorm"

	"mediakit/internal/domain"
)

type RateCardRepository struct {
	db *gorm.DB
}

func NewRateCardRepository(db *gorm.DB) *RateCardRepository {
	return &RateCardRepository{db: db}
}

// TreeFilter controls how much of the Section→Table→Column→Row→Cell tree a
// read returns. The public view requires a published card and filters to
// frontend-visible columns and bookable rows; the authoring view loads
// everything for the owning agency.
type TreeFilter struct {
	AgencyID           *int64
	PublishedOnly      bool
	VisibleColumnsOnly bool
	BookableRowsOnly   bool
}

func (r *RateCardRepository) Create(ctx context.Context, rc *domain.RateCard) error {
	return r.db.WithContext(ctx).Create(rc).Error
}

func (r *RateCardRepository) GetForAgency(ctx context.Context, id, agencyID int64) (*domain.RateCard, error) {
	var rc domain.RateCard
	err := r.db.WithContext(ctx).
		Where("id = ? AND agency_id = ?", id, agencyID).
		First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *RateCardRepository) ListByAgency(ctx context.Context, agencyID int64) ([]domain.RateCard, error) {
	var out []domain.RateCard
	err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *RateCardRepository) Update(ctx context.Context, rc *domain.RateCard) error {
	return r.db.WithContext(ctx).
		Model(&domain.RateCard{}).
		Where("id = ?", rc.ID).
		Select("title", "description", "published", "valid_from", "valid_to").
		Updates(rc).Error
}

// Delete cascades through sections, tables, columns, rows and cells inside
// one transaction. Bookings survive: they hold snapshot copies, only the
// provenance link is severed.
func (r *RateCardRepository) Delete(ctx context.Context, id, agencyID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND agency_id = ?", id, agencyID).Delete(&domain.RateCard{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		const rows = `SELECT id FROM rate_rows WHERE table_id IN (
			SELECT id FROM rate_tables WHERE section_id IN (
				SELECT id FROM sections WHERE rate_card_id = ?))`

		if err := tx.Exec(`UPDATE bookings SET row_id = NULL WHERE row_id IN (`+rows+`)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM cells WHERE row_id IN (`+rows+`)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM rate_rows WHERE table_id IN (
			SELECT id FROM rate_tables WHERE section_id IN (
				SELECT id FROM sections WHERE rate_card_id = ?))`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM rate_columns WHERE table_id IN (
			SELECT id FROM rate_tables WHERE section_id IN (
				SELECT id FROM sections WHERE rate_card_id = ?))`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM rate_tables WHERE section_id IN (
			SELECT id FROM sections WHERE rate_card_id = ?)`, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM sections WHERE rate_card_id = ?`, id).Error
	})
}

// GetTree loads the full hierarchy with deterministic (position, id) ordering
// at every level.
func (r *RateCardRepository) GetTree(ctx context.Context, id int64, f TreeFilter) (*domain.RateCard, error) {
	q := r.db.WithContext(ctx).Where("rate_cards.id = ?", id)
	if f.AgencyID != nil {
		q = q.Where("rate_cards.agency_id = ?", *f.AgencyID)
	}
	if f.PublishedOnly {
		q = q.Where("rate_cards.published = ?", true)
	}

	q = q.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.position, sections.id")
		}).
		Preload("Sections.Tables", func(db *gorm.DB) *gorm.DB {
			return db.Order("rate_tables.position, rate_tables.id")
		})

	if f.VisibleColumnsOnly {
		q = q.Preload("Sections.Tables.Columns", func(db *gorm.DB) *gorm.DB {
			return db.Where("visible_on_frontend = ?", true).
				Order("rate_columns.position, rate_columns.id")
		})
	} else {
		q = q.Preload("Sections.Tables.Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("rate_columns.position, rate_columns.id")
		})
	}

	if f.BookableRowsOnly {
		q = q.Preload("Sections.Tables.Rows", func(db *gorm.DB) *gorm.DB {
			return db.Where("bookable = ?", true).
				Order("rate_rows.position, rate_rows.id")
		})
	} else {
		q = q.Preload("Sections.Tables.Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("rate_rows.position, rate_rows.id")
		})
	}

	if f.VisibleColumnsOnly {
		// Cells under hidden columns are dropped with their columns.
		q = q.Preload("Sections.Tables.Rows.Cells", func(db *gorm.DB) *gorm.DB {
			return db.Where("column_id IN (SELECT id FROM rate_columns WHERE visible_on_frontend = ?)", true).
				Order("cells.column_id")
		})
	} else {
		q = q.Preload("Sections.Tables.Rows.Cells", func(db *gorm.DB) *gorm.DB {
			return db.Order("cells.column_id")
		})
	}

	var rc domain.RateCard
	if err := q.First(&rc).Error; err != nil {
		return nil, err
	}
	return &rc, nil
}
