package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mediakit/internal/database"
	"mediakit/internal/middleware"
	"mediakit/internal/modules/auth"
	"mediakit/internal/modules/booking"
	"mediakit/internal/modules/ratecard"
	jwtsvc "mediakit/internal/pkg/jwt"
	"mediakit/internal/repository"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	token  string
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	agencyRepo := repository.NewAgencyRepository(db)
	listingRepo := repository.NewListingRepository(db)
	cardRepo := repository.NewRateCardRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	tableRepo := repository.NewTableRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	rowRepo := repository.NewRowRepository(db)
	cellRepo := repository.NewCellRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New("e2e-test-secret", time.Hour)

	authHandler := auth.NewHandler(auth.NewService(agencyRepo, j))
	ratecardHandler := ratecard.NewHandler(ratecard.NewService(
		cardRepo, sectionRepo, tableRepo, columnRepo, rowRepo, cellRepo, listingRepo,
	))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo))

	r := gin.New()
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)
	ratecardHandler.RegisterPublicRoutes(v1)
	bookingHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.Auth(j), middleware.AgencyOnly())
	authHandler.RegisterProtectedRoutes(protected)
	ratecardHandler.RegisterProtectedRoutes(protected)
	bookingHandler.RegisterProtectedRoutes(protected)

	suite := &E2ETestSuite{router: r, db: db}
	suite.token = suite.register(t, "ops@brightside.example")
	return suite
}

func (s *E2ETestSuite) register(t *testing.T, email string) string {
	resp := s.do(t, "POST", "/api/v1/auth/register", map[string]any{
		"name":     "Brightside Media",
		"email":    email,
		"password": "supersecret",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Code)
	body := parse(t, resp)
	token, _ := body.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *E2ETestSuite) do(t *testing.T, method, path string, payload any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

func idOf(t *testing.T, body TestResponse, key string) int64 {
	obj, ok := body.Data[key].(map[string]interface{})
	require.True(t, ok, "missing %q in %v", key, body.Data)
	id, ok := obj["id"].(float64)
	require.True(t, ok)
	return int64(id)
}

// buildCatalog provisions a published card with one table holding a required
// currency column, a visible text column and a hidden number column.
func (s *E2ETestSuite) buildCatalog(t *testing.T) (cardID, tableID, priceID, slotID, hiddenID int64) {
	resp := s.do(t, "POST", "/api/v1/ratecards", map[string]any{
		"title":     "Outdoor Advertising 2026",
		"published": true,
	}, s.token)
	require.Equal(t, http.StatusCreated, resp.Code)
	cardID = idOf(t, parse(t, resp), "rate_card")

	resp = s.do(t, "POST", fmt.Sprintf("/api/v1/ratecards/%d/sections", cardID), map[string]any{
		"title": "Photo Packages",
	}, s.token)
	require.Equal(t, http.StatusCreated, resp.Code)
	sectionID := idOf(t, parse(t, resp), "section")

	resp = s.do(t, "POST", fmt.Sprintf("/api/v1/sections/%d/tables", sectionID), map[string]any{
		"title": "Standard Slots",
	}, s.token)
	require.Equal(t, http.StatusCreated, resp.Code)
	tableID = idOf(t, parse(t, resp), "table")

	resp = s.do(t, "POST", fmt.Sprintf("/api/v1/tables/%d/columns", tableID), map[string]any{
		"name": "Price", "data_type": "currency", "required_for_booking": true,
	}, s.token)
	require.Equal(t, http.StatusCreated, resp.Code)
	priceID = idOf(t, parse(t, resp), "column")

	resp = s.do(t, "POST", fmt.Sprintf("/api/v1/tables/%d/columns", tableID), map[string]any{
		"name": "Slot", "data_type": "text",
	}, s.token)
	require.Equal(t, http.StatusCreated, resp.Code)
	slotID = idOf(t, parse(t, resp), "column")

	resp = s.do(t, "POST", fmt.Sprintf("/api/v1/tables/%d/columns", tableID), map[string]any{
		"name": "Internal Cost", "data_type": "number", "visible_on_frontend": false,
	}, s.token)
	require.Equal(t, http.StatusCreated, resp.Code)
	hiddenID = idOf(t, parse(t, resp), "column")

	return cardID, tableID, priceID, slotID, hiddenID
}

func (s *E2ETestSuite) addRow(t *testing.T, tableID int64, bookable bool, cells []map[string]any) int64 {
	resp := s.do(t, "POST", fmt.Sprintf("/api/v1/tables/%d/rows", tableID), map[string]any{
		"bookable": bookable,
		"cells":    cells,
	}, s.token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return idOf(t, parse(t, resp), "row")
}

func TestBookingFlow_MissingRequiredFieldThenSuccess(t *testing.T) {
	s := setupTestSuite(t)
	cardID, tableID, priceID, slotID, _ := s.buildCatalog(t)

	// Row has a slot but no price yet.
	rowID := s.addRow(t, tableID, true, []map[string]any{
		{"column_id": slotID, "value": "Morning"},
	})

	bookingReq := map[string]any{
		"rate_card_id": cardID,
		"row_id":       rowID,
		"client_name":  "Dana",
		"client_email": "dana@example.com",
		"quantity":     1,
	}

	resp := s.do(t, "POST", "/api/v1/public/bookings", bookingReq, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	body := parse(t, resp)
	require.NotNil(t, body.Error)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", body.Error.Code)
	details, _ := body.Error.Details.(map[string]interface{})
	assert.Equal(t, []interface{}{"Price"}, details["missing_fields"])

	// Fill in the price and retry.
	resp = s.do(t, "PUT", fmt.Sprintf("/api/v1/rows/%d/cells", rowID), map[string]any{
		"cells": []map[string]any{{"column_id": priceID, "value": "40"}},
	}, s.token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = s.do(t, "POST", "/api/v1/public/bookings", bookingReq, "")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	body = parse(t, resp)
	bookingObj := body.Data["booking"].(map[string]interface{})
	assert.Equal(t, "pending", bookingObj["status"])
	assert.Equal(t, 40.0, bookingObj["snapshot_price"])
	assert.Equal(t, 40.0, bookingObj["total_amount"])
	assert.NotEmpty(t, bookingObj["reference"])
}

func TestPublicTree_FiltersHiddenColumnsAndUnbookableRows(t *testing.T) {
	s := setupTestSuite(t)
	cardID, tableID, priceID, slotID, hiddenID := s.buildCatalog(t)

	s.addRow(t, tableID, true, []map[string]any{
		{"column_id": priceID, "value": "40"},
		{"column_id": slotID, "value": "Morning"},
		{"column_id": hiddenID, "value": "22"},
	})
	s.addRow(t, tableID, false, []map[string]any{
		{"column_id": slotID, "value": "Legacy"},
	})

	resp := s.do(t, "GET", fmt.Sprintf("/api/v1/public/ratecards/%d", cardID), nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	body := parse(t, resp)

	card := body.Data["rate_card"].(map[string]interface{})
	sections := card["sections"].([]interface{})
	require.Len(t, sections, 1)
	tables := sections[0].(map[string]interface{})["tables"].([]interface{})
	require.Len(t, tables, 1)
	table := tables[0].(map[string]interface{})

	columns := table["columns"].([]interface{})
	require.Len(t, columns, 2)
	for _, c := range columns {
		assert.NotEqual(t, "Internal Cost", c.(map[string]interface{})["name"])
	}

	rows := table["rows"].([]interface{})
	require.Len(t, rows, 1)
	cells := rows[0].(map[string]interface{})["cells"].([]interface{})
	assert.Len(t, cells, 2) // hidden column's cell filtered out
}

func TestPublicTree_UnpublishedCardIsInvisible(t *testing.T) {
	s := setupTestSuite(t)

	resp := s.do(t, "POST", "/api/v1/ratecards", map[string]any{
		"title": "Draft", "published": false,
	}, s.token)
	require.Equal(t, http.StatusCreated, resp.Code)
	cardID := idOf(t, parse(t, resp), "rate_card")

	resp = s.do(t, "GET", fmt.Sprintf("/api/v1/public/ratecards/%d", cardID), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// Still visible to its owner.
	resp = s.do(t, "GET", fmt.Sprintf("/api/v1/ratecards/%d/tree", cardID), nil, s.token)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRowDeletion_GuardedByBookings(t *testing.T) {
	s := setupTestSuite(t)
	cardID, tableID, priceID, _, _ := s.buildCatalog(t)

	rowID := s.addRow(t, tableID, true, []map[string]any{
		{"column_id": priceID, "value": "55.50"},
	})

	resp := s.do(t, "POST", "/api/v1/public/bookings", map[string]any{
		"rate_card_id": cardID,
		"row_id":       rowID,
		"client_name":  "Dana",
		"client_email": "dana@example.com",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	body := parse(t, resp)
	bookingID := int64(body.Data["booking"].(map[string]interface{})["id"].(float64))

	// The referenced row cannot be removed directly.
	resp = s.do(t, "DELETE", fmt.Sprintf("/api/v1/rows/%d", rowID), nil, s.token)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	errBody := parse(t, resp)
	assert.Equal(t, "ROW_HAS_BOOKINGS", errBody.Error.Code)
	details, _ := errBody.Error.Details.(map[string]interface{})
	assert.Equal(t, 1.0, details["bookings_count"])

	// The table can go: the booking keeps its snapshot, provenance is severed.
	resp = s.do(t, "DELETE", fmt.Sprintf("/api/v1/tables/%d", tableID), nil, s.token)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = s.do(t, "GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, s.token)
	require.Equal(t, http.StatusOK, resp.Code)
	bookingObj := parse(t, resp).Data["booking"].(map[string]interface{})
	assert.Nil(t, bookingObj["row_id"])
	assert.Equal(t, 55.5, bookingObj["snapshot_price"])
}

func TestBookingStatus_Lifecycle(t *testing.T) {
	s := setupTestSuite(t)
	cardID, tableID, priceID, _, _ := s.buildCatalog(t)
	rowID := s.addRow(t, tableID, true, []map[string]any{
		{"column_id": priceID, "value": "40"},
	})

	resp := s.do(t, "POST", "/api/v1/public/bookings", map[string]any{
		"rate_card_id": cardID,
		"row_id":       rowID,
		"client_name":  "Dana",
		"client_email": "dana@example.com",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Code)
	bookingID := int64(parse(t, resp).Data["booking"].(map[string]interface{})["id"].(float64))

	resp = s.do(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID), map[string]any{
		"status": "confirmed",
	}, s.token)
	require.Equal(t, http.StatusOK, resp.Code)

	// Going back to pending is not a thing.
	resp = s.do(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID), map[string]any{
		"status": "pending",
	}, s.token)
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = s.do(t, "GET", "/api/v1/bookings?status=confirmed", nil, s.token)
	require.Equal(t, http.StatusOK, resp.Code)
	list := parse(t, resp)
	assert.Equal(t, 1.0, list.Data["total"])
}

func TestBooking_ClientTokenIsIdempotent(t *testing.T) {
	s := setupTestSuite(t)
	cardID, tableID, priceID, _, _ := s.buildCatalog(t)
	rowID := s.addRow(t, tableID, true, []map[string]any{
		{"column_id": priceID, "value": "40"},
	})

	payload := map[string]any{
		"rate_card_id": cardID,
		"row_id":       rowID,
		"client_name":  "Dana",
		"client_email": "dana@example.com",
		"client_token": "retry-abc",
	}

	first := s.do(t, "POST", "/api/v1/public/bookings", payload, "")
	require.Equal(t, http.StatusCreated, first.Code)
	second := s.do(t, "POST", "/api/v1/public/bookings", payload, "")
	require.Equal(t, http.StatusCreated, second.Code)

	firstID := parse(t, first).Data["booking"].(map[string]interface{})["id"]
	secondID := parse(t, second).Data["booking"].(map[string]interface{})["id"]
	assert.Equal(t, firstID, secondID)
}

func TestAuth_ProtectedRoutesRequireToken(t *testing.T) {
	s := setupTestSuite(t)

	resp := s.do(t, "GET", "/api/v1/ratecards", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = s.do(t, "GET", "/api/v1/ratecards", nil, s.token)
	assert.Equal(t, http.StatusOK, resp.Code)
}
