package domain

import "time"

// RateCard is the top-level priced offering published by an agency.
// Listing fields are denormalized from the linked listing at creation time.
type RateCard struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	AgencyID    int64      `json:"agency_id" gorm:"index"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Published   bool       `json:"published"`
	ValidFrom   *time.Time `json:"valid_from,omitempty"`
	ValidTo     *time.Time `json:"valid_to,omitempty"`

	ListingID       *int64 `json:"listing_id,omitempty"`
	ListingType     string `json:"listing_type,omitempty"`
	ListingLocation string `json:"listing_location,omitempty"`
	ListingImage    string `json:"listing_image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sections []Section `json:"sections,omitempty" gorm:"foreignKey:RateCardID"`
}

type Section struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	RateCardID int64     `json:"rate_card_id" gorm:"index"`
	Title      string    `json:"title" validate:"required"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Tables []Table `json:"tables,omitempty" gorm:"foreignKey:SectionID"`
}

// Table owns a column schema and a set of rows.
type Table struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	SectionID int64     `json:"section_id" gorm:"index"`
	Title     string    `json:"title,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Columns []Column `json:"columns,omitempty" gorm:"foreignKey:TableID"`
	Rows    []Row    `json:"rows,omitempty" gorm:"foreignKey:TableID"`
}

func (Table) TableName() string { return "rate_tables" }
