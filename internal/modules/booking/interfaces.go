package booking

import (
	"context"

	"mediakit/internal/domain"
	"mediakit/internal/repository"
)

type BookingRepositoryInterface interface {
	CreateFromRow(ctx context.Context, in repository.ConvertRowInput) (*domain.Booking, error)
	GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Booking, error)
	ListByAgency(ctx context.Context, agencyID int64, status *domain.BookingStatus, limit, offset int) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, reason string) error
}
