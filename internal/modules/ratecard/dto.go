package ratecard

import (
	"time"

	"gorm.io/datatypes"

	"mediakit/internal/domain"
	"mediakit/internal/repository"
)

type CreateRateCardRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Published   bool       `json:"published"`
	ValidFrom   *time.Time `json:"valid_from"`
	ValidTo     *time.Time `json:"valid_to"`
	ListingID   *int64     `json:"listing_id"`
}

type UpdateRateCardRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Published   bool       `json:"published"`
	ValidFrom   *time.Time `json:"valid_from"`
	ValidTo     *time.Time `json:"valid_to"`
}

type CreateSectionRequest struct {
	Title    string `json:"title" binding:"required"`
	Position *int   `json:"position"`
}

type UpdateSectionRequest struct {
	Title    string `json:"title" binding:"required"`
	Position *int   `json:"position"`
}

type CreateTableRequest struct {
	Title    string `json:"title"`
	Position *int   `json:"position"`
}

type UpdateTableRequest struct {
	Title    string `json:"title"`
	Position *int   `json:"position"`
}

type CreateColumnRequest struct {
	Name               string            `json:"name" binding:"required"`
	DataType           domain.ColumnType `json:"data_type" binding:"required"`
	Position           *int              `json:"position"`
	VisibleOnFrontend  *bool             `json:"visible_on_frontend"`
	RequiredForBooking bool              `json:"required_for_booking"`
	Config             datatypes.JSON    `json:"config"`
}

type UpdateColumnRequest struct {
	Name               string            `json:"name" binding:"required"`
	DataType           domain.ColumnType `json:"data_type" binding:"required"`
	Position           *int              `json:"position"`
	VisibleOnFrontend  *bool             `json:"visible_on_frontend"`
	RequiredForBooking bool              `json:"required_for_booking"`
	Config             datatypes.JSON    `json:"config"`
}

type CreateRowRequest struct {
	Bookable *bool                  `json:"bookable"`
	Position *int                   `json:"position"`
	Cells    []repository.CellWrite `json:"cells" binding:"dive"`
}

type UpdateRowRequest struct {
	Bookable *bool `json:"bookable"`
	Position *int  `json:"position"`
}

type UpsertCellsRequest struct {
	Cells []repository.CellWrite `json:"cells" binding:"required,dive"`
}

type ReorderRequest struct {
	Items []repository.PositionUpdate `json:"items" binding:"required,dive"`
}
