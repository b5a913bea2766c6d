package domain

import (
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the booking lifecycle:
// pending -> confirmed/cancelled, confirmed -> completed/cancelled.
// Completed and cancelled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	}
	return false
}

// Booking is the immutable conversion of one priced row at one point in time.
// Snapshot holds copies of the row's cell values, so later edits or deletions
// of the table, its columns or cells never affect a booking already created.
// RowID stays nullable: the provenance link may be severed without touching
// the snapshot.
type Booking struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	Reference  string `json:"reference" gorm:"uniqueIndex"`
	AgencyID   int64  `json:"agency_id" gorm:"index"`
	RateCardID int64  `json:"rate_card_id" gorm:"index"`
	RowID      *int64 `json:"row_id,omitempty" gorm:"index"`

	Snapshot            datatypes.JSONMap `json:"snapshot"`
	SnapshotPrice       *float64          `json:"snapshot_price,omitempty"`
	SnapshotDescription *string           `json:"snapshot_description,omitempty"`

	ClientName  string     `json:"client_name" validate:"required"`
	ClientEmail string     `json:"client_email" validate:"required,email"`
	ClientPhone string     `json:"client_phone,omitempty"`
	Quantity    *int       `json:"quantity,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	TotalAmount *float64   `json:"total_amount,omitempty"`

	Status             BookingStatus `json:"status"`
	Notes              string        `json:"notes,omitempty" gorm:"type:text"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"type:text"`
	ClientToken        *string       `json:"client_token,omitempty" gorm:"uniqueIndex:idx_bookings_client_token"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
