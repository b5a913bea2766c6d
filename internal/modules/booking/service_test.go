package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"mediakit/internal/domain"
	"mediakit/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateFromRow(ctx context.Context, in repository.ConvertRowInput) (*domain.Booking, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Booking, error) {
	args := m.Called(ctx, id, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByAgency(ctx context.Context, agencyID int64, status *domain.BookingStatus, limit, offset int) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, agencyID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, reason string) error {
	args := m.Called(ctx, id, from, to, reason)
	return args.Error(0)
}

func TestService_UpdateStatus_AllowsPendingToConfirmed(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetForAgency", mock.Anything, int64(9), int64(1)).
		Return(&domain.Booking{ID: 9, AgencyID: 1, Status: domain.BookingPending}, nil).Once()
	repo.On("UpdateStatus", mock.Anything, int64(9), domain.BookingPending, domain.BookingConfirmed, "").Return(nil)
	repo.On("GetForAgency", mock.Anything, int64(9), int64(1)).
		Return(&domain.Booking{ID: 9, AgencyID: 1, Status: domain.BookingConfirmed}, nil).Once()

	service := NewService(repo)
	b, err := service.UpdateStatus(context.Background(), 1, 9, UpdateStatusRequest{Status: "confirmed"})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	repo.AssertExpectations(t)
}

func TestService_UpdateStatus_RejectsCompletedToPending(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetForAgency", mock.Anything, int64(9), int64(1)).
		Return(&domain.Booking{ID: 9, AgencyID: 1, Status: domain.BookingCompleted}, nil)

	service := NewService(repo)
	_, err := service.UpdateStatus(context.Background(), 1, 9, UpdateStatusRequest{Status: "pending"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := new(MockBookingRepository)
	service := NewService(repo)

	_, err := service.UpdateStatus(context.Background(), 1, 9, UpdateStatusRequest{Status: "archived"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
	repo.AssertNotCalled(t, "GetForAgency")
}

func TestService_UpdateStatus_LostRaceIsConflict(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetForAgency", mock.Anything, int64(9), int64(1)).
		Return(&domain.Booking{ID: 9, AgencyID: 1, Status: domain.BookingConfirmed}, nil)
	// A concurrent transition moved the booking off "confirmed" between the
	// read and the guarded update: zero rows affected.
	repo.On("UpdateStatus", mock.Anything, int64(9), domain.BookingConfirmed, domain.BookingCompleted, "").
		Return(gorm.ErrRecordNotFound)

	service := NewService(repo)
	_, err := service.UpdateStatus(context.Background(), 1, 9, UpdateStatusRequest{Status: "completed"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	repo.AssertExpectations(t)
}

func TestService_List_StatusFilterAndPaging(t *testing.T) {
	repo := new(MockBookingRepository)
	confirmed := domain.BookingConfirmed
	repo.On("ListByAgency", mock.Anything, int64(1), &confirmed, 20, 20).
		Return([]domain.Booking{{ID: 3}}, int64(21), nil)

	service := NewService(repo)
	bookings, total, err := service.List(context.Background(), 1, ListBookingsQuery{Status: "confirmed", Page: 2, Limit: 20})

	assert.NoError(t, err)
	assert.Equal(t, int64(21), total)
	assert.Len(t, bookings, 1)
	repo.AssertExpectations(t)
}

func TestService_List_RejectsUnknownStatus(t *testing.T) {
	service := NewService(new(MockBookingRepository))
	_, _, err := service.List(context.Background(), 1, ListBookingsQuery{Status: "parked"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_Create_PassesClientToken(t *testing.T) {
	repo := new(MockBookingRepository)
	token := "retry-abc"
	repo.On("CreateFromRow", mock.Anything, mock.MatchedBy(func(in repository.ConvertRowInput) bool {
		return in.RowID == 4 && in.RateCardID == 2 && in.ClientToken != nil && *in.ClientToken == token
	})).Return(&domain.Booking{ID: 1, Status: domain.BookingPending}, nil)

	service := NewService(repo)
	b, err := service.Create(context.Background(), CreateBookingRequest{
		RateCardID:  2,
		RowID:       4,
		ClientName:  "Dana",
		ClientEmail: "dana@example.com",
		ClientToken: &token,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	repo.AssertExpectations(t)
}
