package auth

import (
	"context"

	"mediakit/internal/domain"
)

// AgencyRepositoryInterface — only the methods the auth service uses
type AgencyRepositoryInterface interface {
	Create(ctx context.Context, a *domain.Agency) error
	GetByEmail(ctx context.Context, email string) (*domain.Agency, error)
	GetByID(ctx context.Context, id int64) (*domain.Agency, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
