package handlers

import (
	"net/http"
	"strconv"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow-graph HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	ownerRepository  repositories.OwnerRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, ownerRepo repositories.OwnerRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		ownerRepository:  ownerRepo,
	}
}

// RegisterFollowRoutes registers follow-graph routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/owners/:owner_id/follow", h.FollowOwner)
	g.DELETE("/owners/:owner_id/follow", h.UnfollowOwner)
	g.GET("/owners/:owner_id/follow-stats", h.GetFollowStats)
}

// FollowOwner creates a follow edge from the caller to the target owner.
// Self-follows are rejected: the author clause of the visibility policy
// already covers self-visibility, so a self-edge only pollutes counts.
func (h *FollowHandler) FollowOwner(c echo.Context) error {
	owner, err := resolveOwner(c, h.ownerRepository)
	if err != nil {
		return err
	}
	targetID, err := parseOwnerID(c)
	if err != nil {
		return err
	}
	if targetID == owner.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "Owners cannot follow themselves")
	}

	if _, err := h.ownerRepository.GetOwnerByID(c.Request().Context(), targetID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Owner not found")
	}

	following, err := h.followRepository.IsFollowing(c.Request().Context(), owner.ID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if following {
		return echo.NewHTTPError(http.StatusConflict, "Already following this owner")
	}

	follow := &models.OwnerFollow{FollowerOwnerID: owner.ID, FollowingOwnerID: targetID}
	if err := h.followRepository.CreateFollow(c.Request().Context(), follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// UnfollowOwner removes the caller's follow edge to the target owner
func (h *FollowHandler) UnfollowOwner(c echo.Context) error {
	owner, err := resolveOwner(c, h.ownerRepository)
	if err != nil {
		return err
	}
	targetID, err := parseOwnerID(c)
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(c.Request().Context(), owner.ID, targetID); err != nil {
		if err.Error() == "follow relationship not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Follow relationship not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetFollowStats returns follower/following counts for an owner
func (h *FollowHandler) GetFollowStats(c echo.Context) error {
	targetID, err := parseOwnerID(c)
	if err != nil {
		return err
	}

	followers, err := h.followRepository.GetFollowersCount(c.Request().Context(), targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	following, err := h.followRepository.GetFollowingCount(c.Request().Context(), targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"owner_id":  targetID,
		"followers": followers,
		"following": following,
	})
}

func parseOwnerID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("owner_id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid owner ID")
	}
	return uint(id), nil
}
