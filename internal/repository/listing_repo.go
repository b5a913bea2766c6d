package repository

import (
	"context"

	"gorm.io/gorm"

	"mediakit/internal/domain"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// GetForAgency resolves a listing only if it belongs to the acting agency.
func (r *ListingRepository) GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.WithContext(ctx).
		Where("id = ? AND agency_id = ?", id, agencyID).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepository) ListByAgency(ctx context.Context, agencyID int64) ([]domain.Listing, error) {
	var out []domain.Listing
	err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("id").
		Find(&out).Error
	return out, err
}
