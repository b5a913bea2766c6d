package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mediakit/internal/pkg/response"
	"mediakit/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/public/bookings", h.Create)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.List)
	rg.GET("/bookings/:id", h.Get)
	rg.PATCH("/bookings/:id/status", h.UpdateStatus)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var missing *repository.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			response.ErrorWithDetails(c, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS",
				"Row is missing values required for booking",
				gin.H{"missing_fields": missing.Fields})
		case errors.Is(err, repository.ErrRowNotBookable):
			response.Error(c, http.StatusBadRequest, "ROW_NOT_BOOKABLE", "This row cannot be booked")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Row not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) List(c *gin.Context) {
	var q ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	bookings, total, err := h.service.List(c.Request.Context(), c.GetInt64("agency_id"), q)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown booking status")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings, "total": total})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	b, err := h.service.Get(c.Request.Context(), c.GetInt64("agency_id"), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), c.GetInt64("agency_id"), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown booking status")
		case errors.Is(err, ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status transition not allowed")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}
