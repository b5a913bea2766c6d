package ratecard

import (
	"context"

	"mediakit/internal/domain"
	"mediakit/internal/pkg/validator"
	"mediakit/internal/repository"
)

type Service struct {
	cards    RateCardRepositoryInterface
	sections SectionRepositoryInterface
	tables   TableRepositoryInterface
	columns  ColumnRepositoryInterface
	rows     RowRepositoryInterface
	cells    CellRepositoryInterface
	listings ListingReader
}

func NewService(
	cards RateCardRepositoryInterface,
	sections SectionRepositoryInterface,
	tables TableRepositoryInterface,
	columns ColumnRepositoryInterface,
	rows RowRepositoryInterface,
	cells CellRepositoryInterface,
	listings ListingReader,
) *Service {
	return &Service{
		cards:    cards,
		sections: sections,
		tables:   tables,
		columns:  columns,
		rows:     rows,
		cells:    cells,
		listings: listings,
	}
}

/* ---------- RATE CARDS ---------- */

func (s *Service) CreateRateCard(ctx context.Context, agencyID int64, req CreateRateCardRequest) (*domain.RateCard, error) {
	rc := &domain.RateCard{
		AgencyID:    agencyID,
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
		ValidFrom:   req.ValidFrom,
		ValidTo:     req.ValidTo,
	}

	// Listing data is copied once, here. Later listing edits never touch
	// the card.
	if req.ListingID != nil {
		listing, err := s.listings.GetForAgency(ctx, *req.ListingID, agencyID)
		if err != nil {
			return nil, err
		}
		rc.ListingID = &listing.ID
		rc.ListingType = listing.Type
		rc.ListingLocation = listing.Location
		rc.ListingImage = listing.ImageURL
	}

	if errs := validator.Validate(rc); errs != nil {
		return nil, ErrValidation
	}

	if err := s.cards.Create(ctx, rc); err != nil {
		return nil, err
	}
	return rc, nil
}

func (s *Service) ListRateCards(ctx context.Context, agencyID int64) ([]domain.RateCard, error) {
	return s.cards.ListByAgency(ctx, agencyID)
}

func (s *Service) GetRateCard(ctx context.Context, agencyID, id int64) (*domain.RateCard, error) {
	return s.cards.GetForAgency(ctx, id, agencyID)
}

func (s *Service) UpdateRateCard(ctx context.Context, agencyID, id int64, req UpdateRateCardRequest) (*domain.RateCard, error) {
	rc, err := s.cards.GetForAgency(ctx, id, agencyID)
	if err != nil {
		return nil, err
	}

	rc.Title = req.Title
	rc.Description = req.Description
	rc.Published = req.Published
	rc.ValidFrom = req.ValidFrom
	rc.ValidTo = req.ValidTo

	if err := s.cards.Update(ctx, rc); err != nil {
		return nil, err
	}
	return rc, nil
}

func (s *Service) DeleteRateCard(ctx context.Context, agencyID, id int64) error {
	return s.cards.Delete(ctx, id, agencyID)
}

// GetAuthoringTree loads the unfiltered hierarchy for the owning agency.
func (s *Service) GetAuthoringTree(ctx context.Context, agencyID, id int64) (*domain.RateCard, error) {
	return s.cards.GetTree(ctx, id, repository.TreeFilter{AgencyID: &agencyID})
}

// GetPublicTree loads a published card filtered to frontend-visible columns
// and bookable rows.
func (s *Service) GetPublicTree(ctx context.Context, id int64) (*domain.RateCard, error) {
	return s.cards.GetTree(ctx, id, repository.TreeFilter{
		PublishedOnly:      true,
		VisibleColumnsOnly: true,
		BookableRowsOnly:   true,
	})
}

/* ---------- SECTIONS ---------- */

func (s *Service) CreateSection(ctx context.Context, agencyID, rateCardID int64, req CreateSectionRequest) (*domain.Section, error) {
	sec := &domain.Section{RateCardID: rateCardID, Title: req.Title}
	if err := s.sections.Create(ctx, agencyID, sec, req.Position); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *Service) UpdateSection(ctx context.Context, agencyID, id int64, req UpdateSectionRequest) (*domain.Section, error) {
	sec, err := s.sections.GetForAgency(ctx, id, agencyID)
	if err != nil {
		return nil, err
	}

	sec.Title = req.Title
	if req.Position != nil {
		sec.Position = *req.Position
	}

	if err := s.sections.Update(ctx, agencyID, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *Service) DeleteSection(ctx context.Context, agencyID, id int64) error {
	return s.sections.Delete(ctx, id, agencyID)
}

func (s *Service) ReorderSections(ctx context.Context, agencyID, rateCardID int64, req ReorderRequest) error {
	return s.sections.Reorder(ctx, agencyID, rateCardID, req.Items)
}

/* ---------- TABLES ---------- */

func (s *Service) CreateTable(ctx context.Context, agencyID, sectionID int64, req CreateTableRequest) (*domain.Table, error) {
	t := &domain.Table{SectionID: sectionID, Title: req.Title}
	if err := s.tables.Create(ctx, agencyID, t, req.Position); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTable(ctx context.Context, agencyID, id int64, req UpdateTableRequest) (*domain.Table, error) {
	t, err := s.tables.GetForAgency(ctx, id, agencyID)
	if err != nil {
		return nil, err
	}

	t.Title = req.Title
	if req.Position != nil {
		t.Position = *req.Position
	}

	if err := s.tables.Update(ctx, agencyID, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTable(ctx context.Context, agencyID, id int64) error {
	return s.tables.Delete(ctx, id, agencyID)
}

func (s *Service) ReorderTables(ctx context.Context, agencyID, sectionID int64, req ReorderRequest) error {
	return s.tables.Reorder(ctx, agencyID, sectionID, req.Items)
}

/* ---------- COLUMNS ---------- */

func (s *Service) CreateColumn(ctx context.Context, agencyID, tableID int64, req CreateColumnRequest) (*domain.Column, error) {
	if !req.DataType.Valid() {
		return nil, ErrValidation
	}

	visible := true
	if req.VisibleOnFrontend != nil {
		visible = *req.VisibleOnFrontend
	}

	col := &domain.Column{
		TableID:            tableID,
		Name:               req.Name,
		DataType:           req.DataType,
		VisibleOnFrontend:  visible,
		RequiredForBooking: req.RequiredForBooking,
		Config:             req.Config,
	}
	if err := s.columns.Create(ctx, agencyID, col, req.Position); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *Service) UpdateColumn(ctx context.Context, agencyID, id int64, req UpdateColumnRequest) (*domain.Column, error) {
	if !req.DataType.Valid() {
		return nil, ErrValidation
	}

	col, err := s.columns.GetForAgency(ctx, id, agencyID)
	if err != nil {
		return nil, err
	}

	col.Name = req.Name
	col.DataType = req.DataType
	col.RequiredForBooking = req.RequiredForBooking
	col.Config = req.Config
	if req.Position != nil {
		col.Position = *req.Position
	}
	if req.VisibleOnFrontend != nil {
		col.VisibleOnFrontend = *req.VisibleOnFrontend
	}

	if err := s.columns.Update(ctx, agencyID, col); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *Service) DeleteColumn(ctx context.Context, agencyID, id int64) error {
	return s.columns.Delete(ctx, id, agencyID)
}

func (s *Service) ReorderColumns(ctx context.Context, agencyID, tableID int64, req ReorderRequest) error {
	return s.columns.Reorder(ctx, agencyID, tableID, req.Items)
}

/* ---------- ROWS & CELLS ---------- */

func (s *Service) CreateRow(ctx context.Context, agencyID, tableID int64, req CreateRowRequest) (*domain.Row, error) {
	bookable := true
	if req.Bookable != nil {
		bookable = *req.Bookable
	}

	cells := make([]domain.Cell, 0, len(req.Cells))
	for _, w := range req.Cells {
		cells = append(cells, domain.Cell{ColumnID: w.ColumnID, Value: w.Value})
	}

	row := &domain.Row{TableID: tableID, Bookable: bookable}
	if err := s.rows.Create(ctx, agencyID, row, req.Position, cells); err != nil {
		return nil, err
	}
	return s.rows.GetForAgency(ctx, row.ID, agencyID)
}

func (s *Service) UpdateRow(ctx context.Context, agencyID, id int64, req UpdateRowRequest) (*domain.Row, error) {
	row, err := s.rows.GetForAgency(ctx, id, agencyID)
	if err != nil {
		return nil, err
	}

	if req.Bookable != nil {
		row.Bookable = *req.Bookable
	}
	if req.Position != nil {
		row.Position = *req.Position
	}

	if err := s.rows.Update(ctx, agencyID, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) DeleteRow(ctx context.Context, agencyID, id int64) error {
	return s.rows.Delete(ctx, id, agencyID)
}

func (s *Service) ReorderRows(ctx context.Context, agencyID, tableID int64, req ReorderRequest) error {
	return s.rows.Reorder(ctx, agencyID, tableID, req.Items)
}

func (s *Service) UpsertCells(ctx context.Context, agencyID, rowID int64, req UpsertCellsRequest) ([]domain.Cell, error) {
	return s.cells.Upsert(ctx, agencyID, rowID, req.Cells)
}
