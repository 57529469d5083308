package handlers

import (
	"net/http"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// resolveOwner maps the verified Firebase UID stored by the auth middleware
// to the owner profile row
func resolveOwner(c echo.Context, owners repositories.OwnerRepository) (*models.Owner, error) {
	uid, ok := c.Get("firebaseUID").(string)
	if !ok || uid == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	owner, err := owners.GetOwnerByUserID(c.Request().Context(), uid)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Authenticated user has no owner profile")
	}
	return owner, nil
}
