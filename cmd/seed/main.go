package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mediakit/internal/database"
	"mediakit/internal/domain"
)

// Seeds a demo agency with one published rate card so the public endpoints
// have something to serve. Safe to re-run: wipes and recreates demo data.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "mediakit.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM cells")
	db.Exec("DELETE FROM rate_rows")
	db.Exec("DELETE FROM rate_columns")
	db.Exec("DELETE FROM rate_tables")
	db.Exec("DELETE FROM sections")
	db.Exec("DELETE FROM rate_cards")
	db.Exec("DELETE FROM listings")
	db.Exec("DELETE FROM agencies")

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	agency := domain.Agency{
		Name:         "Brightside Media",
		Email:        "demo@brightside.example",
		PasswordHash: string(hash),
		Phone:        "+7 701 000 0000",
		Website:      "https://brightside.example",
	}
	mustCreate(db, &agency)

	listing := domain.Listing{
		AgencyID: agency.ID,
		Title:    "Downtown LED Billboard",
		Type:     "billboard",
		Location: "Almaty, Abay Ave 12",
		ImageURL: "https://cdn.brightside.example/billboard.jpg",
	}
	mustCreate(db, &listing)

	card := domain.RateCard{
		AgencyID:        agency.ID,
		Title:           "Outdoor Advertising 2026",
		Description:     "Seasonal pricing for the downtown billboard network.",
		Published:       true,
		ListingID:       &listing.ID,
		ListingType:     listing.Type,
		ListingLocation: listing.Location,
		ListingImage:    listing.ImageURL,
	}
	mustCreate(db, &card)

	photo := domain.Section{RateCardID: card.ID, Title: "Photo Packages", Position: 0}
	video := domain.Section{RateCardID: card.ID, Title: "Video Packages", Position: 1}
	mustCreate(db, &photo)
	mustCreate(db, &video)

	photoTable := domain.Table{SectionID: photo.ID, Title: "Standard Slots", Position: 0}
	videoTable := domain.Table{SectionID: video.ID, Title: "Prime Time", Position: 0}
	mustCreate(db, &photoTable)
	mustCreate(db, &videoTable)

	// Photo table: visible price + slot, a hidden internal-cost column and a
	// required date column left blank on one row.
	price := domain.Column{TableID: photoTable.ID, Name: "Price", DataType: domain.ColumnCurrency, Position: 0, VisibleOnFrontend: true, RequiredForBooking: true}
	slot := domain.Column{TableID: photoTable.ID, Name: "Slot", DataType: domain.ColumnText, Position: 1, VisibleOnFrontend: true}
	cost := domain.Column{TableID: photoTable.ID, Name: "Internal Cost", DataType: domain.ColumnNumber, Position: 2, VisibleOnFrontend: false}
	mustCreate(db, &price)
	mustCreate(db, &slot)
	mustCreate(db, &cost)

	morning := domain.Row{TableID: photoTable.ID, Position: 0, Bookable: true}
	evening := domain.Row{TableID: photoTable.ID, Position: 1, Bookable: true}
	archived := domain.Row{TableID: photoTable.ID, Position: 2, Bookable: false}
	mustCreate(db, &morning)
	mustCreate(db, &evening)
	mustCreate(db, &archived)

	seedCells(db, morning.ID, map[int64]string{price.ID: "40", slot.ID: "Morning", cost.ID: "22"})
	seedCells(db, evening.ID, map[int64]string{price.ID: "55.50", slot.ID: "Evening", cost.ID: "30"})
	seedCells(db, archived.ID, map[int64]string{slot.ID: "Legacy slot"})

	// Video table: select column with config options.
	vPrice := domain.Column{TableID: videoTable.ID, Name: "Price", DataType: domain.ColumnCurrency, Position: 0, VisibleOnFrontend: true, RequiredForBooking: true}
	format := domain.Column{TableID: videoTable.ID, Name: "Format", DataType: domain.ColumnSelect, Position: 1, VisibleOnFrontend: true,
		Config: []byte(`{"options":["15s","30s","60s"]}`)}
	mustCreate(db, &vPrice)
	mustCreate(db, &format)

	prime := domain.Row{TableID: videoTable.ID, Position: 0, Bookable: true}
	mustCreate(db, &prime)
	seedCells(db, prime.ID, map[int64]string{vPrice.ID: "120", format.ID: "30s"})

	log.Printf("Seed complete: agency=%s card=%d (login demo@brightside.example / demo1234)", agency.Email, card.ID)
}

func mustCreate(db *gorm.DB, value any) {
	if err := db.Create(value).Error; err != nil {
		log.Fatal("seed insert failed: ", err)
	}
}

func seedCells(db *gorm.DB, rowID int64, values map[int64]string) {
	for columnID, value := range values {
		mustCreate(db, &domain.Cell{RowID: rowID, ColumnID: columnID, Value: value})
	}
}
