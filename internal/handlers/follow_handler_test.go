package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOwnerRepo struct {
	owners []models.Owner
}

func (f *fakeOwnerRepo) CreateOwner(ctx context.Context, owner *models.Owner) error { return nil }

func (f *fakeOwnerRepo) GetOwnerByID(ctx context.Context, id uint) (*models.Owner, error) {
	for i := range f.owners {
		if f.owners[i].ID == id {
			return &f.owners[i], nil
		}
	}
	return nil, errors.New("owner not found")
}

func (f *fakeOwnerRepo) GetOwnerByUserID(ctx context.Context, userID string) (*models.Owner, error) {
	for i := range f.owners {
		if f.owners[i].UserID == userID {
			return &f.owners[i], nil
		}
	}
	return nil, errors.New("owner not found")
}

func (f *fakeOwnerRepo) GetOwnersByIDs(ctx context.Context, ids []uint) ([]models.Owner, error) {
	return nil, nil
}

func (f *fakeOwnerRepo) UpdateOwner(ctx context.Context, owner *models.Owner) error { return nil }

type fakeFollowRepo struct {
	edges []models.OwnerFollow
}

func (f *fakeFollowRepo) CreateFollow(ctx context.Context, follow *models.OwnerFollow) error {
	f.edges = append(f.edges, *follow)
	return nil
}

func (f *fakeFollowRepo) DeleteFollow(ctx context.Context, followerOwnerID, followingOwnerID uint) error {
	for i, e := range f.edges {
		if e.FollowerOwnerID == followerOwnerID && e.FollowingOwnerID == followingOwnerID {
			f.edges = append(f.edges[:i], f.edges[i+1:]...)
			return nil
		}
	}
	return errors.New("follow relationship not found")
}

func (f *fakeFollowRepo) IsFollowing(ctx context.Context, followerOwnerID, followingOwnerID uint) (bool, error) {
	for _, e := range f.edges {
		if e.FollowerOwnerID == followerOwnerID && e.FollowingOwnerID == followingOwnerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollowRepo) GetFollowingIDs(ctx context.Context, ownerID uint) ([]uint, error) {
	return nil, nil
}

func (f *fakeFollowRepo) GetFollowersCount(ctx context.Context, ownerID uint) (int64, error) {
	return 0, nil
}

func (f *fakeFollowRepo) GetFollowingCount(ctx context.Context, ownerID uint) (int64, error) {
	return 0, nil
}

func followContext(t *testing.T, method, targetOwnerID string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("owner_id")
	c.SetParamValues(targetOwnerID)
	c.Set("firebaseUID", "uid-7")
	return c
}

func newFollowHandler() (*FollowHandler, *fakeFollowRepo) {
	follows := &fakeFollowRepo{}
	owners := &fakeOwnerRepo{owners: []models.Owner{
		{ID: 7, UserID: "uid-7", DisplayName: "Vee"},
		{ID: 8, UserID: "uid-8", DisplayName: "Ana"},
	}}
	return NewFollowHandler(follows, owners), follows
}

func TestFollowOwnerRejectsSelfFollow(t *testing.T) {
	h, follows := newFollowHandler()
	c := followContext(t, http.MethodPost, "7")

	err := h.FollowOwner(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Empty(t, follows.edges)
}

func TestFollowOwnerCreatesEdgeOnce(t *testing.T) {
	h, follows := newFollowHandler()

	require.NoError(t, h.FollowOwner(followContext(t, http.MethodPost, "8")))
	require.Len(t, follows.edges, 1)
	assert.Equal(t, uint(7), follows.edges[0].FollowerOwnerID)
	assert.Equal(t, uint(8), follows.edges[0].FollowingOwnerID)

	err := h.FollowOwner(followContext(t, http.MethodPost, "8"))
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.Len(t, follows.edges, 1)
}

func TestUnfollowOwnerMissingEdge(t *testing.T) {
	h, _ := newFollowHandler()

	err := h.UnfollowOwner(followContext(t, http.MethodDelete, "8"))
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
