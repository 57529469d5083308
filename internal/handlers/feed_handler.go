package handlers

import (
	"net/http"
	"strconv"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/engagement"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/repositories"
	"github.com/ZamboVet/zambovet-v2-sub000/pkg/metrics"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	sessions        *engagement.Manager
	ownerRepository repositories.OwnerRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(sessions *engagement.Manager, ownerRepo repositories.OwnerRepository) *FeedHandler {
	return &FeedHandler{
		sessions:        sessions,
		ownerRepository: ownerRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns an assembled, visibility-filtered feed page for the
// current owner. A failed fetch leaves the session's previous page intact.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	owner, err := resolveOwner(c, h.ownerRepository)
	if err != nil {
		return err
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}
	reset, _ := strconv.ParseBool(c.QueryParam("reset"))
	followingOnly, _ := strconv.ParseBool(c.QueryParam("following_only"))

	session := h.sessions.Session(owner)
	page, err := session.FetchFeed(c.Request().Context(), offset, reset, followingOnly)
	if err != nil {
		metrics.FeedPagesAssembled.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	metrics.FeedPagesAssembled.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"posts": page.Posts,
		},
		"meta": echo.Map{
			"offset":       offset,
			"nextOffset":   page.NextOffset,
			"itemsPerPage": engagement.DefaultPageSize,
		},
	})
}
