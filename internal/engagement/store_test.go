package engagement

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/feed"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	page  *feed.Page
	err   error
	calls int
}

func (f *fakeFetcher) FetchPage(ctx context.Context, viewerOwnerID uint, offset, pageSize int, followingOnly bool) (*feed.Page, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	// Hand out a copy so session mutations never leak back into the fixture.
	posts := make([]feed.AssembledPost, len(f.page.Posts))
	copy(posts, f.page.Posts)
	return &feed.Page{Posts: posts, NextOffset: f.page.NextOffset}, nil
}

type fakeReactionRepo struct {
	upserts int
	deletes int
	err     error
	observe func()
}

func (f *fakeReactionRepo) UpsertReaction(ctx context.Context, reaction *models.PostReaction) error {
	if f.observe != nil {
		f.observe()
	}
	if f.err != nil {
		return f.err
	}
	f.upserts++
	return nil
}

func (f *fakeReactionRepo) DeleteReaction(ctx context.Context, postID, ownerID uint) error {
	if f.observe != nil {
		f.observe()
	}
	if f.err != nil {
		return f.err
	}
	f.deletes++
	return nil
}

func (f *fakeReactionRepo) GetReactionCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return map[uint]int64{}, nil
}

func (f *fakeReactionRepo) GetReactedPostIDs(ctx context.Context, ownerID uint, postIDs []uint) (map[uint]bool, error) {
	return map[uint]bool{}, nil
}

type fakeCommentRepo struct {
	created []models.PostComment
	err     error
}

func (f *fakeCommentRepo) CreateComment(ctx context.Context, comment *models.PostComment) error {
	if f.err != nil {
		return f.err
	}
	comment.ID = int64(100 + len(f.created))
	comment.CreatedAt = time.Now()
	f.created = append(f.created, *comment)
	return nil
}

func (f *fakeCommentRepo) GetCommentCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return map[uint]int64{}, nil
}

func (f *fakeCommentRepo) GetRecentComments(ctx context.Context, postIDs []uint, limit int) ([]models.PostComment, error) {
	return nil, nil
}

type dispatchCall struct {
	targetOwnerID uint
	actingOwnerID uint
	kind          string
}

type fakeNotifier struct {
	calls []dispatchCall
}

func (f *fakeNotifier) Dispatch(targetOwnerID, actingOwnerID uint, kind, title, message string) {
	f.calls = append(f.calls, dispatchCall{targetOwnerID, actingOwnerID, kind})
}

type publishedEvent struct {
	table     string
	eventType string
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) Publish(table, eventType string, newRow interface{}) error {
	f.events = append(f.events, publishedEvent{table, eventType})
	return nil
}

// testPage seeds one self-authored post (10) and one post by owner 2 (11).
func testPage() *feed.Page {
	return &feed.Page{
		Posts: []feed.AssembledPost{
			{
				Post:           models.Post{ID: 10, OwnerID: 7, Visibility: models.VisibilityPublic},
				ReactionsCount: 1,
			},
			{
				Post:           models.Post{ID: 11, OwnerID: 2, Visibility: models.VisibilityPublic},
				ReactionsCount: 3,
				CommentsCount:  1,
			},
		},
		NextOffset: 2,
	}
}

func newTestSession(t *testing.T) (*Session, *fakeFetcher, *fakeReactionRepo, *fakeCommentRepo, *fakeNotifier, *fakePublisher) {
	t.Helper()
	fetcher := &fakeFetcher{page: testPage()}
	reactions := &fakeReactionRepo{}
	comments := &fakeCommentRepo{}
	notifier := &fakeNotifier{}
	publisher := &fakePublisher{}

	viewer := &models.Owner{ID: 7, UserID: "uid-7", DisplayName: "Vee"}
	session := NewSession(viewer, fetcher, reactions, comments, notifier, publisher)

	_, err := session.FetchFeed(context.Background(), 0, true, false)
	require.NoError(t, err)
	return session, fetcher, reactions, comments, notifier, publisher
}

func postByID(t *testing.T, session *Session, id uint) feed.AssembledPost {
	t.Helper()
	for _, p := range session.Posts() {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("post %d not loaded", id)
	return feed.AssembledPost{}
}

func TestToggleReactionOptimisticBeforeStoreCall(t *testing.T) {
	session, _, reactions, _, _, _ := newTestSession(t)

	var flagDuringCall bool
	var countDuringCall int64
	reactions.observe = func() {
		p := postByID(t, session, 11)
		flagDuringCall = p.ReactedByMe
		countDuringCall = p.ReactionsCount
	}

	require.NoError(t, session.ToggleReaction(context.Background(), 11))
	assert.True(t, flagDuringCall, "reacted flag must flip before the store call")
	assert.Equal(t, int64(4), countDuringCall, "count must be bumped before the store call")
	assert.Equal(t, 1, reactions.upserts)
}

func TestDoubleToggleRestoresOriginalState(t *testing.T) {
	session, _, reactions, _, _, _ := newTestSession(t)
	before := postByID(t, session, 11)

	require.NoError(t, session.ToggleReaction(context.Background(), 11))
	require.NoError(t, session.ToggleReaction(context.Background(), 11))

	after := postByID(t, session, 11)
	assert.Equal(t, before.ReactedByMe, after.ReactedByMe)
	assert.Equal(t, before.ReactionsCount, after.ReactionsCount)
	assert.Equal(t, 1, reactions.upserts)
	assert.Equal(t, 1, reactions.deletes)
}

func TestToggleReactionRollbackOnFailure(t *testing.T) {
	session, _, reactions, _, notifier, publisher := newTestSession(t)
	reactions.err = errors.New("store rejected statement")
	before := postByID(t, session, 11)

	err := session.ToggleReaction(context.Background(), 11)
	require.Error(t, err)

	after := postByID(t, session, 11)
	assert.Equal(t, before.ReactedByMe, after.ReactedByMe, "flag must be restored from snapshot")
	assert.Equal(t, before.ReactionsCount, after.ReactionsCount, "count must be restored from snapshot")
	assert.Empty(t, notifier.calls, "failed mutation must not fan out")
	assert.Empty(t, publisher.events, "failed mutation must not publish a change event")
}

func TestToggleReactionNotifiesPostOwner(t *testing.T) {
	session, _, _, _, notifier, publisher := newTestSession(t)

	require.NoError(t, session.ToggleReaction(context.Background(), 11))
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, uint(2), notifier.calls[0].targetOwnerID)
	assert.Equal(t, uint(7), notifier.calls[0].actingOwnerID)
	assert.Equal(t, models.NotificationKindReaction, notifier.calls[0].kind)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, "post_reactions", publisher.events[0].table)
	assert.Equal(t, "INSERT", publisher.events[0].eventType)

	// Removing the reaction publishes a delete but never notifies.
	require.NoError(t, session.ToggleReaction(context.Background(), 11))
	assert.Len(t, notifier.calls, 1)
	require.Len(t, publisher.events, 2)
	assert.Equal(t, "DELETE", publisher.events[1].eventType)
}

func TestToggleReactionOnOwnPostSuppressesNotification(t *testing.T) {
	session, _, _, _, notifier, _ := newTestSession(t)

	require.NoError(t, session.ToggleReaction(context.Background(), 10))
	assert.Empty(t, notifier.calls, "self-reaction must not notify")
}

func TestToggleReactionUnknownPost(t *testing.T) {
	session, _, reactions, _, _, _ := newTestSession(t)

	err := session.ToggleReaction(context.Background(), 99)
	assert.ErrorIs(t, err, ErrPostNotLoaded)
	assert.Zero(t, reactions.upserts)
	assert.Zero(t, reactions.deletes)
}

func TestAddCommentRejectsInvalidTextLocally(t *testing.T) {
	session, _, _, comments, notifier, _ := newTestSession(t)
	before := postByID(t, session, 11)

	err := session.AddComment(context.Background(), 11, "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	err = session.AddComment(context.Background(), 11, strings.Repeat("x", models.MaxCommentLength+1))
	assert.ErrorIs(t, err, ErrCommentTooLong)

	after := postByID(t, session, 11)
	assert.Empty(t, comments.created, "validation failures must not reach the store")
	assert.Equal(t, before.CommentsCount, after.CommentsCount)
	assert.Len(t, after.RecentComments, len(before.RecentComments))
	assert.Empty(t, notifier.calls)
}

func TestAddCommentSwapsPlaceholderOnSuccess(t *testing.T) {
	session, _, _, _, notifier, publisher := newTestSession(t)

	require.NoError(t, session.AddComment(context.Background(), 11, "what a good dog"))

	after := postByID(t, session, 11)
	assert.Equal(t, int64(2), after.CommentsCount)
	require.Len(t, after.RecentComments, 1)
	assert.Equal(t, int64(100), after.RecentComments[0].ID, "placeholder id must be swapped for the stored one")
	assert.Equal(t, "what a good dog", after.RecentComments[0].Content)
	assert.Equal(t, "Vee", after.RecentComments[0].Author.DisplayName)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, models.NotificationKindComment, notifier.calls[0].kind)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, "post_comments", publisher.events[0].table)
}

func TestAddCommentRollbackOnFailure(t *testing.T) {
	session, _, _, comments, notifier, _ := newTestSession(t)
	comments.err = errors.New("store unreachable")
	before := postByID(t, session, 11)

	err := session.AddComment(context.Background(), 11, "gone before it lands")
	require.Error(t, err)

	after := postByID(t, session, 11)
	assert.Equal(t, before.CommentsCount, after.CommentsCount, "count must be restored")
	assert.Len(t, after.RecentComments, len(before.RecentComments), "placeholder must be removed")
	assert.Empty(t, notifier.calls)
}

func TestAddCommentOnOwnPostSuppressesNotification(t *testing.T) {
	session, _, _, _, notifier, _ := newTestSession(t)

	require.NoError(t, session.AddComment(context.Background(), 10, "my own pup"))
	assert.Empty(t, notifier.calls)
}

func TestFetchFeedFailureKeepsPreviousState(t *testing.T) {
	session, fetcher, _, _, _, _ := newTestSession(t)
	loaded := session.Posts()
	require.Len(t, loaded, 2)

	fetcher.err = errors.New("store unreachable")
	_, err := session.FetchFeed(context.Background(), 0, true, false)
	require.Error(t, err)
	assert.Len(t, session.Posts(), 2, "failed fetch must leave the displayed page intact")
}

func TestRefreshFirstPageReplacesHead(t *testing.T) {
	session, fetcher, _, _, _, _ := newTestSession(t)

	fetcher.page = &feed.Page{
		Posts: []feed.AssembledPost{
			{Post: models.Post{ID: 12, OwnerID: 2, Visibility: models.VisibilityPublic}},
		},
		NextOffset: 1,
	}
	require.NoError(t, session.RefreshFirstPage(context.Background()))

	posts := session.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, uint(12), posts[0].ID)
	assert.Equal(t, 2, fetcher.calls)
}
