package domain

import "time"

// Listing is the external offering a rate card may be attached to.
// Rate cards copy type/location/image at creation time; later listing
// edits never propagate back to the card.
type Listing struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	AgencyID  int64     `json:"agency_id" gorm:"index"`
	Title     string    `json:"title" validate:"required"`
	Type      string    `json:"type"`
	Location  string    `json:"location"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
