package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/changestream"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/repositories"
	"github.com/ZamboVet/zambovet-v2-sub000/pkg/storage"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post lifecycle HTTP requests
type PostHandler struct {
	postRepository    repositories.PostRepository
	mediaRepository   repositories.MediaRepository
	patientRepository repositories.PatientRepository
	ownerRepository   repositories.OwnerRepository
	objectStore       storage.ObjectStore
	changes           changestream.Publisher
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	mediaRepo repositories.MediaRepository,
	patientRepo repositories.PatientRepository,
	ownerRepo repositories.OwnerRepository,
	objectStore storage.ObjectStore,
	changes changestream.Publisher,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		mediaRepository:   mediaRepo,
		patientRepository: patientRepo,
		ownerRepository:   ownerRepo,
		objectStore:       objectStore,
		changes:           changes,
	}
}

// RegisterPostRoutes registers post lifecycle routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PATCH("/posts/:post_id", h.UpdatePost)
	g.DELETE("/posts/:post_id", h.DeletePost)
	g.POST("/media/uploads", h.UploadMedia)
}

// CreatePost creates a post with its media attachments. Media blobs were
// already uploaded through the object store; only their URLs are recorded
// here, and media_count is fixed at creation time.
func (h *PostHandler) CreatePost(c echo.Context) error {
	owner, err := resolveOwner(c, h.ownerRepository)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Content) == "" && len(req.MediaURLs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Post needs content or at least one media attachment")
	}
	if len(req.MediaTypes) > 0 && len(req.MediaTypes) != len(req.MediaURLs) {
		return echo.NewHTTPError(http.StatusBadRequest, "media_types must match media_urls")
	}

	if req.PatientID != nil {
		patient, err := h.patientRepository.GetPatientByID(c.Request().Context(), *req.PatientID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Linked patient not found")
		}
		if patient.OwnerID != owner.ID {
			return echo.NewHTTPError(http.StatusForbidden, "Patient belongs to another owner")
		}
	}

	post := &models.Post{
		OwnerID:    owner.ID,
		PatientID:  req.PatientID,
		Content:    strings.TrimSpace(req.Content),
		MediaCount: len(req.MediaURLs),
		Visibility: req.Visibility,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if len(req.MediaURLs) > 0 {
		media := make([]models.PostMedia, len(req.MediaURLs))
		for i, url := range req.MediaURLs {
			mediaType := models.MediaTypeImage
			if len(req.MediaTypes) > 0 {
				mediaType = req.MediaTypes[i]
			}
			media[i] = models.PostMedia{PostID: post.ID, MediaURL: url, MediaType: mediaType}
		}
		if err := h.mediaRepository.CreateMedia(c.Request().Context(), media); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if err := h.changes.Publish(changestream.TablePosts, changestream.EventInsert, post); err != nil {
		log.Printf("posts: publishing create event failed: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    echo.Map{"post_id": post.ID},
	})
}

// UpdatePost edits content and/or visibility of a post owned by the caller
func (h *PostHandler) UpdatePost(c echo.Context) error {
	owner, err := resolveOwner(c, h.ownerRepository)
	if err != nil {
		return err
	}
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.OwnerID != owner.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author may edit a post")
	}

	if req.Content != "" {
		post.Content = strings.TrimSpace(req.Content)
	}
	if req.Visibility != "" {
		post.Visibility = req.Visibility
	}
	post.UpdatedAt = time.Now()

	if err := h.postRepository.UpdatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.changes.Publish(changestream.TablePosts, changestream.EventUpdate, post); err != nil {
		log.Printf("posts: publishing update event failed: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}

// DeletePost removes a post owned by the caller along with its media rows
func (h *PostHandler) DeletePost(c echo.Context) error {
	owner, err := resolveOwner(c, h.ownerRepository)
	if err != nil {
		return err
	}
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID, owner.ID); err != nil {
		if err.Error() == "post not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.mediaRepository.DeleteMediaByPostID(c.Request().Context(), postID); err != nil {
		log.Printf("posts: deleting media for post %d failed: %v", postID, err)
	}

	if err := h.changes.Publish(changestream.TablePosts, changestream.EventDelete, echo.Map{"id": postID}); err != nil {
		log.Printf("posts: publishing delete event failed: %v", err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadMedia pushes one media blob through the object-store collaborator
// and returns the URL to record on a subsequent post creation
func (h *PostHandler) UploadMedia(c echo.Context) error {
	if _, err := resolveOwner(c, h.ownerRepository); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file upload")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot read file upload")
	}
	defer src.Close()

	url, err := h.objectStore.Save(c.Request().Context(), fileHeader.Filename, src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    echo.Map{"url": url},
	})
}
