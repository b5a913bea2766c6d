package ratecard

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
	v1.GET("/public/ratecards/:id", h.GetPublicRateCard)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/ratecards", h.CreateRateCard)
	rg.GET("/ratecards", h.ListRateCards)
	rg.GET("/ratecards/:id", h.GetRateCard)
	rg.GET("/ratecards/:id/tree", h.GetAuthoringTree)
	rg.PUT("/ratecards/:id", h.UpdateRateCard)
	rg.DELETE("/ratecards/:id", h.DeleteRateCard)
	rg.POST("/ratecards/:id/sections", h.CreateSection)
	rg.PUT("/ratecards/:id/sections/reorder", h.ReorderSections)

	rg.PUT("/sections/:id", h.UpdateSection)
	rg.DELETE("/sections/:id", h.DeleteSection)
	rg.POST("/sections/:id/tables", h.CreateTable)
	rg.PUT("/sections/:id/tables/reorder", h.ReorderTables)

	rg.PUT("/tables/:id", h.UpdateTable)
	rg.DELETE("/tables/:id", h.DeleteTable)
	rg.POST("/tables/:id/columns", h.CreateColumn)
	rg.PUT("/tables/:id/columns/reorder", h.ReorderColumns)
	rg.POST("/tables/:id/rows", h.CreateRow)
	rg.PUT("/tables/:id/rows/reorder", h.ReorderRows)

	rg.PUT("/columns/:id", h.UpdateColumn)
	rg.DELETE("/columns/:id", h.DeleteColumn)

	rg.PUT("/rows/:id", h.UpdateRow)
	rg.DELETE("/rows/:id", h.DeleteRow)
	rg.PUT("/rows/:id/cells", h.UpsertCells)
}

/* ---------- RATE CARDS ---------- */

func (h *Handler) CreateRateCard(c *gin.Context) {
	var req CreateRateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rc, err := h.service.CreateRateCard(c.Request.Context(), agencyID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rate_card": rc})
}

func (h *Handler) ListRateCards(c *gin.Context) {
	cards, err := h.service.ListRateCards(c.Request.Context(), agencyID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rate_cards": cards})
}

func (h *Handler) GetRateCard(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	rc, err := h.service.GetRateCard(c.Request.Context(), agencyID(c), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rate_card": rc})
}

func (h *Handler) GetAuthoringTree(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	tree, err := h.service.GetAuthoringTree(c.Request.Context(), agencyID(c), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rate_card": tree})
}

func (h *Handler) GetPublicRateCard(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	tree, err := h.service.GetPublicTree(c.Request.Context(), id)
	if err != nil {
		// Unpublished and missing cards are indistinguishable publicly.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Rate card not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load rate card")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rate_card": tree})
}

func (h *Handler) UpdateRateCard(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateRateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rc, err := h.service.UpdateRateCard(c.Request.Context(), agencyID(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rate_card": rc})
}

func (h *Handler) DeleteRateCard(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRateCard(c.Request.Context(), agencyID(c), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

/* ---------- SECTIONS ---------- */

func (h *Handler) CreateSection(c *gin.Context) {
	cardID, ok := paramID(c)
	if !ok {
		return
	}
	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sec, err := h.service.CreateSection(c.Request.Context(), agencyID(c), cardID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"section": sec})
}

func (h *Handler) UpdateSection(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sec, err := h.service.UpdateSection(c.Request.Context(), agencyID(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"section": sec})
}

func (h *Handler) DeleteSection(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSection(c.Request.Context(), agencyID(c), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ReorderSections(c *gin.Context) {
	cardID, ok := paramID(c)
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ReorderSections(c.Request.Context(), agencyID(c), cardID, req); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reordered": len(req.Items)})
}

/* ---------- TABLES ---------- */

func (h *Handler) CreateTable(c *gin.Context) {
	sectionID, ok := paramID(c)
	if !ok {
		return
	}
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	table, err := h.service.CreateTable(c.Request.Context(), agencyID(c), sectionID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"table": table})
}

func (h *Handler) UpdateTable(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	table, err := h.service.UpdateTable(c.Request.Context(), agencyID(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"table": table})
}

func (h *Handler) DeleteTable(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTable(c.Request.Context(), agencyID(c), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ReorderTables(c *gin.Context) {
	sectionID, ok := paramID(c)
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ReorderTables(c.Request.Context(), agencyID(c), sectionID, req); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reordered": len(req.Items)})
}

/* ---------- COLUMNS ---------- */

func (h *Handler) CreateColumn(c *gin.Context) {
	tableID, ok := paramID(c)
	if !ok {
		return
	}
	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	col, err := h.service.CreateColumn(c.Request.Context(), agencyID(c), tableID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"column": col})
}

func (h *Handler) UpdateColumn(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	col, err := h.service.UpdateColumn(c.Request.Context(), agencyID(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"column": col})
}

func (h *Handler) DeleteColumn(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteColumn(c.Request.Context(), agencyID(c), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ReorderColumns(c *gin.Context) {
	tableID, ok := paramID(c)
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ReorderColumns(c.Request.Context(), agencyID(c), tableID, req); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reordered": len(req.Items)})
}

/* ---------- ROWS & CELLS ---------- */

func (h *Handler) CreateRow(c *gin.Context) {
	tableID, ok := paramID(c)
	if !ok {
		return
	}
	var req CreateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	row, err := h.service.CreateRow(c.Request.Context(), agencyID(c), tableID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"row": row})
}

func (h *Handler) UpdateRow(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	row, err := h.service.UpdateRow(c.Request.Context(), agencyID(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"row": row})
}

func (h *Handler) DeleteRow(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRow(c.Request.Context(), agencyID(c), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ReorderRows(c *gin.Context) {
	tableID, ok := paramID(c)
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ReorderRows(c.Request.Context(), agencyID(c), tableID, req); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reordered": len(req.Items)})
}

func (h *Handler) UpsertCells(c *gin.Context) {
	rowID, ok := paramID(c)
	if !ok {
		return
	}
	var req UpsertCellsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cells, err := h.service.UpsertCells(c.Request.Context(), agencyID(c), rowID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cells": cells})
}

/* ---------- helpers ---------- */

func agencyID(c *gin.Context) int64 {
	return c.GetInt64("agency_id")
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	var refErr *repository.RowReferencedError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid or missing fields")
	case errors.As(err, &refErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "ROW_HAS_BOOKINGS",
			"Cannot delete row with existing bookings",
			gin.H{"bookings_count": refErr.Bookings})
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected failure")
	}
}
