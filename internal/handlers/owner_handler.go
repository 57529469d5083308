package handlers

import (
	"net/http"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// OwnerHandler handles owner profile HTTP requests
type OwnerHandler struct {
	ownerRepository repositories.OwnerRepository
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(ownerRepo repositories.OwnerRepository) *OwnerHandler {
	return &OwnerHandler{ownerRepository: ownerRepo}
}

// RegisterOwnerRoutes registers owner profile routes
func (h *OwnerHandler) RegisterOwnerRoutes(g *echo.Group) {
	g.POST("/owners", h.RegisterOwner)
	g.GET("/owners/me", h.GetMe)
	g.PATCH("/owners/me", h.UpdateMe)
}

// RegisterOwnerRequest defines the request body for profile bootstrap
type RegisterOwnerRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=80"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// RegisterOwner creates the owner profile row for a verified identity
// user. Registering twice returns the existing profile.
func (h *OwnerHandler) RegisterOwner(c echo.Context) error {
	uid, ok := c.Get("firebaseUID").(string)
	if !ok || uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req RegisterOwnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if existing, err := h.ownerRepository.GetOwnerByUserID(c.Request().Context(), uid); err == nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": existing})
	}

	owner := &models.Owner{
		UserID:      uid,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	}
	if err := h.ownerRepository.CreateOwner(c.Request().Context(), owner); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": owner})
}

// GetMe returns the caller's owner profile
func (h *OwnerHandler) GetMe(c echo.Context) error {
	owner, err := resolveOwner(c, h.ownerRepository)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": owner})
}

// UpdateMe refreshes the caller's display name and/or avatar
func (h *OwnerHandler) UpdateMe(c echo.Context) error {
	owner, err := resolveOwner(c, h.ownerRepository)
	if err != nil {
		return err
	}

	var req models.UpdateOwnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.DisplayName != "" {
		owner.DisplayName = req.DisplayName
	}
	if req.AvatarURL != "" {
		owner.AvatarURL = req.AvatarURL
	}
	if err := h.ownerRepository.UpdateOwner(c.Request().Context(), owner); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": owner})
}
