package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mediakit/internal/config"
	"mediakit/internal/database"
	"mediakit/internal/middleware"
	"mediakit/internal/modules/auth"
	"mediakit/internal/modules/booking"
	"mediakit/internal/modules/ratecard"
	jwtsvc "mediakit/internal/pkg/jwt"
	"mediakit/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	agencyRepo := repository.NewAgencyRepository(db)
	listingRepo := repository.NewListingRepository(db)
	cardRepo := repository.NewRateCardRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	tableRepo := repository.NewTableRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	rowRepo := repository.NewRowRepository(db)
	cellRepo := repository.NewCellRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authHandler := auth.NewHandler(auth.NewService(agencyRepo, j))
	ratecardHandler := ratecard.NewHandler(ratecard.NewService(
		cardRepo,
		sectionRepo,
		tableRepo,
		columnRepo,
		rowRepo,
		cellRepo,
		listingRepo,
	))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo))

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		ratecardHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)

		// agency-scoped
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j), middleware.AgencyOnly())
		{
			authHandler.RegisterProtectedRoutes(protected)
			ratecardHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
