package booking

import "time"

// CreateBookingRequest is the public conversion payload. The buyer names a
// rate card and one of its rows; everything else about the line item comes
// from the row itself.
type CreateBookingRequest struct {
	RateCardID int64 `json:"rate_card_id" binding:"required"`
	RowID      int64 `json:"row_id" binding:"required"`

	ClientName  string     `json:"client_name" binding:"required"`
	ClientEmail string     `json:"client_email" binding:"required,email"`
	ClientPhone string     `json:"client_phone"`
	Quantity    *int       `json:"quantity" binding:"omitempty,min=1"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Notes       string     `json:"notes"`

	// Optional idempotency token; resubmitting the same token returns the
	// original booking instead of creating a duplicate.
	ClientToken *string `json:"client_token"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type ListBookingsQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}
