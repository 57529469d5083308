package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/engagement"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/repositories"
	"github.com/ZamboVet/zambovet-v2-sub000/pkg/metrics"
	"github.com/labstack/echo/v4"
)

// EngagementHandler handles reaction toggles and comment submissions
type EngagementHandler struct {
	sessions        *engagement.Manager
	ownerRepository repositories.OwnerRepository
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(sessions *engagement.Manager, ownerRepo repositories.OwnerRepository) *EngagementHandler {
	return &EngagementHandler{
		sessions:        sessions,
		ownerRepository: ownerRepo,
	}
}

// RegisterEngagementRoutes registers engagement routes
func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/reactions/toggle", h.ToggleReaction)
	g.POST("/posts/:post_id/comments", h.AddComment)
}

// ToggleReaction flips the current owner's reaction on a post. The
// optimistic state change and any rollback happen inside the session;
// only the final error, if any, reaches the client.
func (h *EngagementHandler) ToggleReaction(c echo.Context) error {
	owner, err := resolveOwner(c, h.ownerRepository)
	if err != nil {
		return err
	}
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	session := h.sessions.Session(owner)
	if err := session.ToggleReaction(c.Request().Context(), postID); err != nil {
		if errors.Is(err, engagement.ErrPostNotLoaded) {
			metrics.EngagementMutations.WithLabelValues("reaction", "rejected").Inc()
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		metrics.EngagementMutations.WithLabelValues("reaction", "error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	metrics.EngagementMutations.WithLabelValues("reaction", "ok").Inc()

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// AddComment appends a comment to a post. Empty or over-length text is
// rejected before any store call.
func (h *EngagementHandler) AddComment(c echo.Context) error {
	owner, err := resolveOwner(c, h.ownerRepository)
	if err != nil {
		return err
	}
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	session := h.sessions.Session(owner)
	if err := session.AddComment(c.Request().Context(), postID, req.Content); err != nil {
		switch {
		case errors.Is(err, engagement.ErrEmptyComment), errors.Is(err, engagement.ErrCommentTooLong):
			metrics.EngagementMutations.WithLabelValues("comment", "rejected").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, engagement.ErrPostNotLoaded):
			metrics.EngagementMutations.WithLabelValues("comment", "rejected").Inc()
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			metrics.EngagementMutations.WithLabelValues("comment", "error").Inc()
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	metrics.EngagementMutations.WithLabelValues("comment", "ok").Inc()

	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	return uint(id), nil
}
