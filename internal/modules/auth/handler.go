package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mediakit/internal/domain"
	"mediakit/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/agencies/me", h.GetMe)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	agency, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if err == ErrEmailAlreadyExists {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register agency")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"agency": toPublic(agency),
		"token":  token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	agency, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"agency": toPublic(agency),
		"token":  token,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	agencyID := c.GetInt64("agency_id")

	agency, err := h.service.GetMe(c.Request.Context(), agencyID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Agency not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"agency": toPublic(agency)})
}

func toPublic(a *domain.Agency) AgencyPublic {
	return AgencyPublic{
		ID:      a.ID,
		Name:    a.Name,
		Email:   a.Email,
		Phone:   a.Phone,
		Website: a.Website,
	}
}
