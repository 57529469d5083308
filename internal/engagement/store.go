// Package engagement holds per-viewer feed sessions and applies reaction
// and comment mutations optimistically: local state changes first, then
// the store write, with a snapshot-based rollback when the write fails.
package engagement

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/changestream"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/feed"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/repositories"
)

// DefaultPageSize is the feed page size used by viewer sessions
const DefaultPageSize = 20

// Validation failures rejected before any store call
var (
	ErrEmptyComment   = errors.New("comment text is empty")
	ErrCommentTooLong = fmt.Errorf("comment exceeds %d characters", models.MaxCommentLength)
	ErrPostNotLoaded  = errors.New("post is not in the loaded feed")
)

// Notifier dispatches a detached best-effort notification to a post owner
type Notifier interface {
	Dispatch(targetOwnerID, actingOwnerID uint, kind, title, message string)
}

// PageFetcher assembles feed pages for a viewer
type PageFetcher interface {
	FetchPage(ctx context.Context, viewerOwnerID uint, offset, pageSize int, followingOnly bool) (*feed.Page, error)
}

// Session is one viewer's in-memory feed state. The list is mutated only
// through this session; a single mutex stands in for the single-actor
// update discipline.
type Session struct {
	viewerOwnerID uint
	viewerCompact models.OwnerCompact
	pageSize      int

	fetcher   PageFetcher
	reactions repositories.ReactionRepository
	comments  repositories.CommentRepository
	notifier  Notifier
	changes   changestream.Publisher

	mu            sync.Mutex
	posts         []feed.AssembledPost
	nextOffset    int
	followingOnly bool

	nextPlaceholderID int64 // client-only comment ids, always negative
}

// NewSession creates a feed session for one viewer
func NewSession(
	viewer *models.Owner,
	fetcher PageFetcher,
	reactionRepo repositories.ReactionRepository,
	commentRepo repositories.CommentRepository,
	notifier Notifier,
	changes changestream.Publisher,
) *Session {
	return &Session{
		viewerOwnerID: viewer.ID,
		viewerCompact: viewer.ToCompact(),
		pageSize:      DefaultPageSize,
		fetcher:       fetcher,
		reactions:     reactionRepo,
		comments:      commentRepo,
		notifier:      notifier,
		changes:       changes,
	}
}

// FetchFeed loads a feed page into the session. With reset the session
// state is replaced from offset zero; otherwise the page is appended.
// A failed fetch leaves the previously loaded state intact.
func (s *Session) FetchFeed(ctx context.Context, offset int, reset, followingOnly bool) (*feed.Page, error) {
	if reset {
		offset = 0
	}
	page, err := s.fetcher.FetchPage(ctx, s.viewerOwnerID, offset, s.pageSize, followingOnly)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.followingOnly = followingOnly
	if reset || offset == 0 {
		s.posts = page.Posts
	} else {
		s.posts = append(s.posts, page.Posts...)
	}
	s.nextOffset = page.NextOffset
	return &feed.Page{Posts: s.snapshotPosts(), NextOffset: s.nextOffset}, nil
}

// RefreshFirstPage re-assembles the first page only and splices it over
// the head of the loaded list. Deeper pages the viewer has scrolled past
// keep whatever staleness they had.
func (s *Session) RefreshFirstPage(ctx context.Context) error {
	s.mu.Lock()
	followingOnly := s.followingOnly
	s.mu.Unlock()

	page, err := s.fetcher.FetchPage(ctx, s.viewerOwnerID, 0, s.pageSize, followingOnly)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.posts) > s.pageSize {
		s.posts = append(page.Posts, s.posts[s.pageSize:]...)
	} else {
		s.posts = page.Posts
		s.nextOffset = page.NextOffset
	}
	return nil
}

// ToggleReaction flips the viewer's reaction on a loaded post. The flag
// and displayed count change before the store call; on failure both are
// restored from the pre-toggle snapshot and the error is surfaced. A
// successful add to someone else's post dispatches a detached
// notification that can never roll the reaction back.
func (s *Session) ToggleReaction(ctx context.Context, postID uint) error {
	s.mu.Lock()
	idx := s.findPost(postID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrPostNotLoaded
	}
	snapshot := s.posts[idx]
	wasReacted := snapshot.ReactedByMe
	if wasReacted {
		s.posts[idx].ReactedByMe = false
		s.posts[idx].ReactionsCount--
	} else {
		s.posts[idx].ReactedByMe = true
		s.posts[idx].ReactionsCount++
	}
	postOwnerID := snapshot.OwnerID
	s.mu.Unlock()

	var mutErr error
	reaction := &models.PostReaction{PostID: postID, OwnerID: s.viewerOwnerID, Kind: models.ReactionKindLike}
	if wasReacted {
		mutErr = s.reactions.DeleteReaction(ctx, postID, s.viewerOwnerID)
	} else {
		mutErr = s.reactions.UpsertReaction(ctx, reaction)
	}
	if mutErr != nil {
		s.mu.Lock()
		if i := s.findPost(postID); i >= 0 {
			s.posts[i].ReactedByMe = snapshot.ReactedByMe
			s.posts[i].ReactionsCount = snapshot.ReactionsCount
		}
		s.mu.Unlock()
		return fmt.Errorf("toggling reaction on post %d: %w", postID, mutErr)
	}

	eventType := changestream.EventInsert
	if wasReacted {
		eventType = changestream.EventDelete
	}
	if err := s.changes.Publish(changestream.TableReactions, eventType, reaction); err != nil {
		log.Printf("engagement: publishing reaction change failed: %v", err)
	}

	if !wasReacted && postOwnerID != s.viewerOwnerID {
		s.notifier.Dispatch(postOwnerID, s.viewerOwnerID,
			models.NotificationKindReaction,
			"New reaction on your post",
			fmt.Sprintf("%s liked your post", s.viewerCompact.DisplayName))
	}
	return nil
}

// AddComment appends a comment to a loaded post. Empty or over-length
// text is rejected locally without any store call. A placeholder with a
// negative client-only id is shown immediately; on failure it is removed
// and the count restored, on success it is swapped for the stored row.
func (s *Session) AddComment(ctx context.Context, postID uint, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyComment
	}
	if utf8.RuneCountInString(trimmed) > models.MaxCommentLength {
		return ErrCommentTooLong
	}

	s.mu.Lock()
	idx := s.findPost(postID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrPostNotLoaded
	}
	snapshot := s.posts[idx]
	s.nextPlaceholderID--
	placeholderID := s.nextPlaceholderID
	s.posts[idx].RecentComments = append(s.posts[idx].RecentComments, feed.CommentView{
		PostComment: models.PostComment{
			ID:        placeholderID,
			PostID:    postID,
			OwnerID:   s.viewerOwnerID,
			Content:   trimmed,
			CreatedAt: time.Now(),
		},
		Author: s.viewerCompact,
	})
	s.posts[idx].CommentsCount++
	postOwnerID := snapshot.OwnerID
	s.mu.Unlock()

	comment := &models.PostComment{PostID: postID, OwnerID: s.viewerOwnerID, Content: trimmed}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		s.mu.Lock()
		if i := s.findPost(postID); i >= 0 {
			s.posts[i].RecentComments = snapshot.RecentComments
			s.posts[i].CommentsCount = snapshot.CommentsCount
		}
		s.mu.Unlock()
		return fmt.Errorf("adding comment to post %d: %w", postID, err)
	}

	// Swap the placeholder for the stored row.
	s.mu.Lock()
	if i := s.findPost(postID); i >= 0 {
		for j := range s.posts[i].RecentComments {
			if s.posts[i].RecentComments[j].ID == placeholderID {
				s.posts[i].RecentComments[j].PostComment = *comment
				break
			}
		}
	}
	s.mu.Unlock()

	if err := s.changes.Publish(changestream.TableComments, changestream.EventInsert, comment); err != nil {
		log.Printf("engagement: publishing comment change failed: %v", err)
	}

	if postOwnerID != s.viewerOwnerID {
		s.notifier.Dispatch(postOwnerID, s.viewerOwnerID,
			models.NotificationKindComment,
			"New comment on your post",
			fmt.Sprintf("%s commented: %s", s.viewerCompact.DisplayName, truncate(trimmed, 80)))
	}
	return nil
}

// Posts returns a copy of the loaded feed entries
func (s *Session) Posts() []feed.AssembledPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotPosts()
}

// findPost returns the index of a loaded post, or -1. Caller holds the lock.
func (s *Session) findPost(postID uint) int {
	for i := range s.posts {
		if s.posts[i].ID == postID {
			return i
		}
	}
	return -1
}

// snapshotPosts copies the loaded list. Caller holds the lock.
func (s *Session) snapshotPosts() []feed.AssembledPost {
	out := make([]feed.AssembledPost, len(s.posts))
	copy(out, s.posts)
	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
