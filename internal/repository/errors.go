package repository

import (
	"errors"
	"fmt"
)

// ErrRowNotBookable is returned when a booking is attempted on a row whose
// bookable flag is off.
var ErrRowNotBookable = errors.New("row is not bookable")

// MissingFieldsError carries the display-ordered names of every
// required-for-booking column without a usable cell value.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %v", e.Fields)
}

// RowReferencedError blocks physical row deletion while bookings still point
// at the row.
type RowReferencedError struct {
	Bookings int64
}

func (e *RowReferencedError) Error() string {
	return fmt.Sprintf("cannot delete row with %d existing bookings", e.Bookings)
}
