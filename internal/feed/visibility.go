package feed

import "github.com/ZamboVet/zambovet-v2-sub000/internal/models"

// Visible reports whether a viewer may see a post. Authors always see their
// own posts regardless of visibility; public posts are visible to everyone;
// owners_only posts are visible to viewers following the author; everything
// else (private, or owners_only from a non-followed author) is hidden.
//
// The store is never trusted to pre-filter: this is applied to every
// candidate row after fetching, even when the query was already narrowed.
func Visible(post *models.Post, viewerOwnerID uint, followingSet map[uint]bool) bool {
	if post.OwnerID == viewerOwnerID {
		return true
	}
	switch post.Visibility {
	case models.VisibilityPublic:
		return true
	case models.VisibilityOwnersOnly:
		return followingSet[post.OwnerID]
	default:
		return false
	}
}
