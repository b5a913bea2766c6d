package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mediakit/internal/domain"
	"mediakit/internal/repository"
)

type Service struct {
	bookings BookingRepositoryInterface
}

func NewService(bookings BookingRepositoryInterface) *Service {
	return &Service{bookings: bookings}
}

// Create converts a rate-card row into a booking. All row resolution,
// required-field checks and snapshotting happen inside the repository
// transaction.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	return s.bookings.CreateFromRow(ctx, repository.ConvertRowInput{
		RowID:       req.RowID,
		RateCardID:  req.RateCardID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Quantity:    req.Quantity,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Notes:       req.Notes,
		ClientToken: req.ClientToken,
	})
}

func (s *Service) Get(ctx context.Context, agencyID, id int64) (*domain.Booking, error) {
	return s.bookings.GetForAgency(ctx, id, agencyID)
}

func (s *Service) List(ctx context.Context, agencyID int64, q ListBookingsQuery) ([]domain.Booking, int64, error) {
	var status *domain.BookingStatus
	if q.Status != "" {
		st := domain.BookingStatus(q.Status)
		if !st.Valid() {
			return nil, 0, ErrInvalidStatus
		}
		status = &st
	}

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	return s.bookings.ListByAgency(ctx, agencyID, status, limit, (page-1)*limit)
}

// UpdateStatus enforces the booking lifecycle: pending -> confirmed ->
// completed, with cancellation allowed from any non-terminal state.
func (s *Service) UpdateStatus(ctx context.Context, agencyID, id int64, req UpdateStatusRequest) (*domain.Booking, error) {
	next := domain.BookingStatus(req.Status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	b, err := s.bookings.GetForAgency(ctx, id, agencyID)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	// The repo guards the update on the status just validated; zero affected
	// rows means a concurrent transition won the race.
	if err := s.bookings.UpdateStatus(ctx, id, b.Status, next, req.Reason); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	return s.bookings.GetForAgency(ctx, id, agencyID)
}
