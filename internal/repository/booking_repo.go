package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"mediakit/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// ConvertRowInput carries everything the buyer supplies to turn a priced row
// into a booking.
type ConvertRowInput struct {
	RowID      int64
	RateCardID int64

	ClientName  string
	ClientEmail string
	ClientPhone string
	Quantity    *int
	StartDate   *time.Time
	EndDate     *time.Time
	Notes       string

	// ClientToken makes creation idempotent: replaying the same token
	// returns the booking created the first time.
	ClientToken *string
}

// CreateFromRow resolves the row with its table, columns and cells, validates
// bookability, snapshots the row's content and inserts the booking — all
// inside one transaction, so a concurrent row deletion or bookable toggle
// cannot interleave between validation and persistence.
func (r *BookingRepository) CreateFromRow(ctx context.Context, in ConvertRowInput) (*domain.Booking, error) {
	if in.ClientToken != nil {
		if existing, err := r.GetByClientToken(ctx, *in.ClientToken); err == nil {
			return existing, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var booking *domain.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The lock holds off concurrent row deletion and bookable toggles
		// until this booking is committed.
		var row domain.Row
		if err := lockRow(tx).First(&row, in.RowID).Error; err != nil {
			return err
		}

		// Resolve the owning rate card and agency through the hierarchy.
		var card domain.RateCard
		err := tx.Model(&domain.RateCard{}).
			Joins("JOIN sections ON sections.rate_card_id = rate_cards.id").
			Joins("JOIN rate_tables ON rate_tables.section_id = sections.id").
			Where("rate_tables.id = ?", row.TableID).
			First(&card).Error
		if err != nil {
			return err
		}
		if card.ID != in.RateCardID {
			// Redundant cross-check failed: the row is not under the
			// rate card the caller named.
			return gorm.ErrRecordNotFound
		}

		if !row.Bookable {
			return ErrRowNotBookable
		}

		var columns []domain.Column
		if err := tx.Where("table_id = ?", row.TableID).Order("position, id").Find(&columns).Error; err != nil {
			return err
		}
		var cells []domain.Cell
		if err := tx.Where("row_id = ?", row.ID).Find(&cells).Error; err != nil {
			return err
		}

		if missing := domain.MissingRequiredFields(columns, cells); len(missing) > 0 {
			return &MissingFieldsError{Fields: missing}
		}

		price := domain.FirstNumericValue(columns, cells)
		description := domain.FirstTextualValue(columns, cells)
		rowID := row.ID

		booking = &domain.Booking{
			Reference:           uuid.NewString(),
			AgencyID:            card.AgencyID,
			RateCardID:          card.ID,
			RowID:               &rowID,
			Snapshot:            domain.BuildSnapshot(columns, cells),
			SnapshotPrice:       price,
			SnapshotDescription: description,
			ClientName:          in.ClientName,
			ClientEmail:         in.ClientEmail,
			ClientPhone:         in.ClientPhone,
			Quantity:            in.Quantity,
			StartDate:           in.StartDate,
			EndDate:             in.EndDate,
			TotalAmount:         domain.ComputeTotal(price, in.Quantity),
			Status:              domain.BookingPending,
			Notes:               in.Notes,
			ClientToken:         in.ClientToken,
		}

		return tx.Create(booking).Error
	})
	if err != nil {
		// A concurrent duplicate submission with the same client token loses
		// the insert race; hand back the winner's booking instead.
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" &&
			pgErr.ConstraintName == "idx_bookings_client_token" && in.ClientToken != nil {
			return r.GetByClientToken(ctx, *in.ClientToken)
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Where("id = ? AND agency_id = ?", id, agencyID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByClientToken(ctx context.Context, token string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Where("client_token = ?", token).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByAgency feeds the reporting collaborator: bookings by agency, newest
// first, optionally filtered by status.
func (r *BookingRepository) ListByAgency(ctx context.Context, agencyID int64, status *domain.BookingStatus, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("agency_id = ?", agencyID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Booking
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *BookingRepository) CountByRow(ctx context.Context, rowID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("row_id = ?", rowID).
		Count(&cnt).Error
	return cnt, err
}

// UpdateStatus persists a lifecycle transition. The snapshot and buyer fields
// are never touched after creation. The update is guarded on the status the
// caller validated against, so two concurrent transitions from the same state
// cannot both land: the loser affects zero rows.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, reason string) error {
	updates := map[string]any{"status": to}
	if to == domain.BookingCancelled {
		updates["cancellation_reason"] = reason
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
