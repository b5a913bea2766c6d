package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mediakit/internal/domain"
)

func TestCreateFromRow_MissingRequiredThenSuccess(t *testing.T) {
	db := testDB(t)
	f := seedSchema(t, db)

	price := f.addColumn(t, domain.Column{Name: "Price", DataType: domain.ColumnCurrency, RequiredForBooking: true})
	slot := f.addColumn(t, domain.Column{Name: "Slot", DataType: domain.ColumnText, RequiredForBooking: true, Position: 1})
	row := f.addRow(t, true, map[int64]string{slot.ID: "Morning drive"})

	repo := NewBookingRepository(db)
	in := ConvertRowInput{
		RowID:       row.ID,
		RateCardID:  f.card.ID,
		ClientName:  "Dana Buyer",
		ClientEmail: "dana@example.com",
	}

	_, err := repo.CreateFromRow(ctx(), in)
	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"Price"}, missing.Fields)

	// No partial booking was created.
	var cnt int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)

	// Fill the price and retry.
	require.NoError(t, db.Create(&domain.Cell{RowID: row.ID, ColumnID: price.ID, Value: "40"}).Error)

	b, err := repo.CreateFromRow(ctx(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, f.agency.ID, b.AgencyID)
	require.NotNil(t, b.SnapshotPrice)
	assert.Equal(t, 40.0, *b.SnapshotPrice)
	assert.NotEmpty(t, b.Reference)
}

func TestCreateFromRow_NotBookable(t *testing.T) {
	db := testDB(t)
	f := seedSchema(t, db)
	row := f.addRow(t, false, nil)

	repo := NewBookingRepository(db)
	_, err := repo.CreateFromRow(ctx(), ConvertRowInput{
		RowID:       row.ID,
		RateCardID:  f.card.ID,
		ClientName:  "Dana Buyer",
		ClientEmail: "dana@example.com",
	})
	assert.ErrorIs(t, err, ErrRowNotBookable)
}

func TestCreateFromRow_RowNotFoundAndCardMismatch(t *testing.T) {
	db := testDB(t)
	f := seedSchema(t, db)
	row := f.addRow(t, true, nil)

	repo := NewBookingRepository(db)

	_, err := repo.CreateFromRow(ctx(), ConvertRowInput{
		RowID: 99999, RateCardID: f.card.ID,
		ClientName: "Dana Buyer", ClientEmail: "dana@example.com",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.CreateFromRow(ctx(), ConvertRowInput{
		RowID: row.ID, RateCardID: f.card.ID + 100,
		ClientName: "Dana Buyer", ClientEmail: "dana@example.com",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateFromRow_HiddenRequiredColumnStillEnforced(t *testing.T) {
	db := testDB(t)
	f := seedSchema(t, db)

	f.addColumn(t, domain.Column{Name: "Approval code", DataType: domain.ColumnText, RequiredForBooking: true, VisibleOnFrontend: false})
	row := f.addRow(t, true, nil)

	repo := NewBookingRepository(db)
	_, err := repo.CreateFromRow(ctx(), ConvertRowInput{
		RowID: row.ID, RateCardID: f.card.ID,
		ClientName: "Dana Buyer", ClientEmail: "dana@example.com",
	})
	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"Approval code"}, missing.Fields)
}

func TestCreateFromRow_TotalAmount(t *testing.T) {
	db := testDB(t)
	f := seedSchema(t, db)
	price := f.addColumn(t, domain.Column{Name: "Price", DataType: domain.ColumnCurrency})
	row := f.addRow(t, true, map[int64]string{price.ID: "25.50"})

	repo := NewBookingRepository(db)

	qty := 3
	b, err := repo.CreateFromRow(ctx(), ConvertRowInput{
		RowID: row.ID, RateCardID: f.card.ID,
		ClientName: "Dana Buyer", ClientEmail: "dana@example.com",
		Quantity: &qty,
	})
	require.NoError(t, err)
	require.NotNil(t, b.TotalAmount)
	assert.Equal(t, 76.50, *b.TotalAmount)

	// Quantity absent: total stays unset, not zero.
	b2, err := repo.CreateFromRow(ctx(), ConvertRowInput{
		RowID: row.ID, RateCardID: f.card.ID,
		ClientName: "Dana Buyer", ClientEmail: "dana@example.com",
	})
	require.NoError(t, err)
	assert.Nil(t, b2.TotalAmount)
}

func TestCreateFromRow_SnapshotSurvivesEdits(t *testing.T) {
	db := testDB(t)
	f := seedSchema(t, db)
	price := f.addColumn(t, domain.Column{Name: "Price", DataType: domain.ColumnCurrency})
	notes := f.addColumn(t, domain.Column{Name: "Details", DataType: domain.ColumnNotes, Position: 1})
	row := f.addRow(t, true, map[int64]string{price.ID: "40", notes.ID: "Above the fold"})

	repo := NewBookingRepository(db)
	b, err := repo.CreateFromRow(ctx(), ConvertRowInput{
		RowID: row.ID, RateCardID: f.card.ID,
		ClientName: "Dana Buyer", ClientEmail: "dana@example.com",
	})
	require.NoError(t, err)

	// Mutate the live row: change the price, drop the notes column entirely.
	require.NoError(t, db.Model(&domain.Cell{}).
		Where("row_id = ? AND column_id = ?", row.ID, price.ID).
		Update("value", "9999").Error)
	require.NoError(t, NewColumnRepository(db).Delete(ctx(), notes.ID, f.agency.ID))

	var got domain.Booking
	require.NoError(t, db.First(&got, b.ID).Error)
	assert.Equal(t, "40", got.Snapshot["Price"])
	assert.Equal(t, "Above the fold", got.Snapshot["Details"])
	require.NotNil(t, got.SnapshotPrice)
	assert.Equal(t, 40.0, *got.SnapshotPrice)
	require.NotNil(t, got.SnapshotDescription)
	assert.Equal(t, "Above the fold", *got.SnapshotDescription)
}

func TestCreateFromRow_ClientTokenIdempotent(t *testing.T) {
	db := testDB(t)
	f := seedSchema(t, db)
	row := f.addRow(t, true, nil)

	repo := NewBookingRepository(db)
	token := "retry-token-1"
	in := ConvertRowInput{
		RowID: row.ID, RateCardID: f.card.ID,
		ClientName: "Dana Buyer", ClientEmail: "dana@example.com",
		ClientToken: &token,
	}

	first, err := repo.CreateFromRow(ctx(), in)
	require.NoError(t, err)
	second, err := repo.CreateFromRow(ctx(), in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var cnt int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)
}

func TestListByAgency_StatusFilter(t *testing.T) {
	db := testDB(t)
	f := seedSchema(t, db)
	row := f.addRow(t, true, nil)

	repo := NewBookingRepository(db)
	for i := 0; i < 3; i++ {
		_, err := repo.CreateFromRow(ctx(), ConvertRowInput{
			RowID: row.ID, RateCardID: f.card.ID,
			ClientName: "Dana Buyer", ClientEmail: "dana@example.com",
		})
		require.NoError(t, err)
	}
	require.NoError(t, repo.UpdateStatus(ctx(), 1, domain.BookingPending, domain.BookingConfirmed, ""))

	pending := domain.BookingPending
	got, total, err := repo.ListByAgency(ctx(), f.agency.ID, &pending, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, got, 2)

	got, total, err = repo.ListByAgency(ctx(), f.agency.ID, nil, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, got, 3)
}

func TestUpdateStatus_GuardedOnCurrentStatus(t *testing.T) {
	db := testDB(t)
	f := seedSchema(t, db)
	row := f.addRow(t, true, nil)

	repo := NewBookingRepository(db)
	b, err := repo.CreateFromRow(ctx(), ConvertRowInput{
		RowID: row.ID, RateCardID: f.card.ID,
		ClientName: "Dana Buyer", ClientEmail: "dana@example.com",
	})
	require.NoError(t, err)

	// A stale expectation affects zero rows and leaves the status alone.
	err = repo.UpdateStatus(ctx(), b.ID, domain.BookingConfirmed, domain.BookingCompleted, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.GetByID(ctx(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, got.Status)

	require.NoError(t, repo.UpdateStatus(ctx(), b.ID, domain.BookingPending, domain.BookingConfirmed, ""))
	got, err = repo.GetByID(ctx(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
}
