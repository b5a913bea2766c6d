package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mediakit/internal/database"
	"mediakit/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	db      *gorm.DB
	agency  domain.Agency
	card    domain.RateCard
	section domain.Section
	table   domain.Table
}

// seedSchema provisions agency → card → section → table, the stem every
// repository test hangs columns and rows off.
func seedSchema(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{db: db}

	f.agency = domain.Agency{Name: "Brightside Media", Email: "hello@brightside.example"}
	require.NoError(t, db.Create(&f.agency).Error)

	f.card = domain.RateCard{AgencyID: f.agency.ID, Title: "2026 Media Kit", Published: true}
	require.NoError(t, db.Create(&f.card).Error)

	f.section = domain.Section{RateCardID: f.card.ID, Title: "Display"}
	require.NoError(t, db.Create(&f.section).Error)

	f.table = domain.Table{SectionID: f.section.ID, Title: "Banners"}
	require.NoError(t, db.Create(&f.table).Error)

	return f
}

func (f *fixture) addColumn(t *testing.T, c domain.Column) domain.Column {
	t.Helper()
	c.TableID = f.table.ID
	require.NoError(t, f.db.Create(&c).Error)
	return c
}

func (f *fixture) addRow(t *testing.T, bookable bool, cells map[int64]string) domain.Row {
	t.Helper()
	row := domain.Row{TableID: f.table.ID, Bookable: bookable}
	require.NoError(t, f.db.Create(&row).Error)
	for colID, value := range cells {
		require.NoError(t, f.db.Create(&domain.Cell{RowID: row.ID, ColumnID: colID, Value: value}).Error)
	}
	return row
}

func ctx() context.Context { return context.Background() }
