package ratecard

import (
	"context"

	"mediakit/internal/domain"
	"mediakit/internal/repository"
)

// RateCardRepositoryInterface defines the card-level schema store operations
type RateCardRepositoryInterface interface {
	Create(ctx context.Context, rc *domain.RateCard) error
	GetForAgency(ctx context.Context, id, agencyID int64) (*domain.RateCard, error)
	ListByAgency(ctx context.Context, agencyID int64) ([]domain.RateCard, error)
	Update(ctx context.Context, rc *domain.RateCard) error
	Delete(ctx context.Context, id, agencyID int64) error
	GetTree(ctx context.Context, id int64, f repository.TreeFilter) (*domain.RateCard, error)
}

type SectionRepositoryInterface interface {
	Create(ctx context.Context, agencyID int64, s *domain.Section, position *int) error
	GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Section, error)
	Update(ctx context.Context, agencyID int64, s *domain.Section) error
	Delete(ctx context.Context, id, agencyID int64) error
	Reorder(ctx context.Context, agencyID, rateCardID int64, updates []repository.PositionUpdate) error
}

type TableRepositoryInterface interface {
	Create(ctx context.Context, agencyID int64, t *domain.Table, position *int) error
	GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Table, error)
	Update(ctx context.Context, agencyID int64, t *domain.Table) error
	Delete(ctx context.Context, id, agencyID int64) error
	Reorder(ctx context.Context, agencyID, sectionID int64, updates []repository.PositionUpdate) error
}

type ColumnRepositoryInterface interface {
	Create(ctx context.Context, agencyID int64, c *domain.Column, position *int) error
	GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Column, error)
	Update(ctx context.Context, agencyID int64, c *domain.Column) error
	Delete(ctx context.Context, id, agencyID int64) error
	Reorder(ctx context.Context, agencyID, tableID int64, updates []repository.PositionUpdate) error
}

type RowRepositoryInterface interface {
	Create(ctx context.Context, agencyID int64, row *domain.Row, position *int, cells []domain.Cell) error
	GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Row, error)
	Update(ctx context.Context, agencyID int64, row *domain.Row) error
	Delete(ctx context.Context, id, agencyID int64) error
	Reorder(ctx context.Context, agencyID, tableID int64, updates []repository.PositionUpdate) error
}

type CellRepositoryInterface interface {
	Upsert(ctx context.Context, agencyID, rowID int64, writes []repository.CellWrite) ([]domain.Cell, error)
}

// ListingReader resolves a listing at rate-card creation time, the only
// moment listing data flows into a card.
type ListingReader interface {
	GetForAgency(ctx context.Context, id, agencyID int64) (*domain.Listing, error)
}
