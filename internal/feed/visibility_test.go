package feed

import (
	"testing"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
)

func TestVisibleMatrix(t *testing.T) {
	const (
		authorID   = uint(1)
		followerID = uint(2)
		strangerID = uint(3)
	)
	followsAuthor := map[uint]bool{authorID: true}
	followsNobody := map[uint]bool{}

	tests := []struct {
		name       string
		visibility string
		viewerID   uint
		following  map[uint]bool
		want       bool
	}{
		{"public seen by author", models.VisibilityPublic, authorID, followsNobody, true},
		{"public seen by follower", models.VisibilityPublic, followerID, followsAuthor, true},
		{"public seen by stranger", models.VisibilityPublic, strangerID, followsNobody, true},
		{"owners_only seen by author", models.VisibilityOwnersOnly, authorID, followsNobody, true},
		{"owners_only seen by follower", models.VisibilityOwnersOnly, followerID, followsAuthor, true},
		{"owners_only hidden from stranger", models.VisibilityOwnersOnly, strangerID, followsNobody, false},
		{"private seen by author", models.VisibilityPrivate, authorID, followsNobody, true},
		{"private hidden from follower", models.VisibilityPrivate, followerID, followsAuthor, false},
		{"private hidden from stranger", models.VisibilityPrivate, strangerID, followsNobody, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &models.Post{ID: 10, OwnerID: authorID, Visibility: tt.visibility}
			if got := Visible(post, tt.viewerID, tt.following); got != tt.want {
				t.Errorf("Visible(%s, viewer=%d) = %v, want %v", tt.visibility, tt.viewerID, got, tt.want)
			}
		})
	}
}

func TestVisibleUnknownVisibilityHidden(t *testing.T) {
	post := &models.Post{ID: 10, OwnerID: 1, Visibility: "mystery"}
	if Visible(post, 2, map[uint]bool{1: true}) {
		t.Error("unknown visibility value should be hidden from non-authors")
	}
}
