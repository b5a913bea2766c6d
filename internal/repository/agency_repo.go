package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"mediakit/internal/domain"
)

type AgencyRepository struct {
	db *gorm.DB
}

func NewAgencyRepository(db *gorm.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

func (r *AgencyRepository) Create(ctx context.Context, a *domain.Agency) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AgencyRepository) GetByID(ctx context.Context, id int64) (*domain.Agency, error) {
	var a domain.Agency
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AgencyRepository) GetByEmail(ctx context.Context, email string) (*domain.Agency, error) {
	var a domain.Agency
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AgencyRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Agency{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}
