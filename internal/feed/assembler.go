package feed

import (
	"context"
	"fmt"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/repositories"
)

// RecentCommentsPerPost bounds how many recent comments are attached to
// each feed entry after grouping.
const RecentCommentsPerPost = 3

// CommentView is a comment joined with its author for display
type CommentView struct {
	models.PostComment
	Author models.OwnerCompact `json:"author"`
}

// AssembledPost is a post joined with everything the feed needs to render it
type AssembledPost struct {
	models.Post
	Author         models.OwnerCompact `json:"author"`
	PatientName    string              `json:"patient_name,omitempty"`
	Media          []models.PostMedia  `json:"media"`
	ReactionsCount int64               `json:"reactions_count"`
	CommentsCount  int64               `json:"comments_count"`
	ReactedByMe    bool                `json:"reacted_by_me"`
	RecentComments []CommentView       `json:"recent_comments"`
}

// Page is one assembled feed page. NextOffset advances past the raw range
// that was scanned, not past the surviving posts, so pagination never
// re-reads rows the visibility filter dropped.
type Page struct {
	Posts      []AssembledPost `json:"posts"`
	NextOffset int             `json:"next_offset"`
}

// Assembler fetches feed pages and joins media, engagement counts, authors
// and recent comments onto them
type Assembler struct {
	posts     repositories.PostRepository
	media     repositories.MediaRepository
	reactions repositories.ReactionRepository
	comments  repositories.CommentRepository
	follows   repositories.FollowRepository
	owners    repositories.OwnerRepository
	patients  repositories.PatientRepository
}

// NewAssembler creates a feed Assembler over the given repositories
func NewAssembler(
	postRepo repositories.PostRepository,
	mediaRepo repositories.MediaRepository,
	reactionRepo repositories.ReactionRepository,
	commentRepo repositories.CommentRepository,
	followRepo repositories.FollowRepository,
	ownerRepo repositories.OwnerRepository,
	patientRepo repositories.PatientRepository,
) *Assembler {
	return &Assembler{
		posts:     postRepo,
		media:     mediaRepo,
		reactions: reactionRepo,
		comments:  commentRepo,
		follows:   followRepo,
		owners:    ownerRepo,
		patients:  patientRepo,
	}
}

// FetchPage assembles one feed page for a viewer. Candidate posts are
// fetched newest-first over [offset, offset+pageSize), optionally narrowed
// to the viewer's own posts plus followed authors, then filtered through
// the visibility policy. Any failing sub-query aborts the whole page;
// partial pages are never returned.
func (a *Assembler) FetchPage(ctx context.Context, viewerOwnerID uint, offset, pageSize int, followingOnly bool) (*Page, error) {
	followingIDs, err := a.follows.GetFollowingIDs(ctx, viewerOwnerID)
	if err != nil {
		return nil, fmt.Errorf("fetching following set: %w", err)
	}
	followingSet := make(map[uint]bool, len(followingIDs))
	for _, id := range followingIDs {
		followingSet[id] = true
	}

	var narrowTo []uint
	if followingOnly {
		narrowTo = append([]uint{viewerOwnerID}, followingIDs...)
	}

	candidates, err := a.posts.GetFeedPosts(ctx, offset, pageSize, narrowTo)
	if err != nil {
		return nil, fmt.Errorf("fetching feed posts: %w", err)
	}
	nextOffset := offset + len(candidates)

	// Defense-in-depth filter; the page may shrink below pageSize and
	// that is accepted rather than compensated for.
	visible := make([]models.Post, 0, len(candidates))
	for i := range candidates {
		if Visible(&candidates[i], viewerOwnerID, followingSet) {
			visible = append(visible, candidates[i])
		}
	}
	if len(visible) == 0 {
		return &Page{Posts: []AssembledPost{}, NextOffset: nextOffset}, nil
	}

	postIDs := make([]uint, len(visible))
	for i, p := range visible {
		postIDs[i] = p.ID
	}

	media, err := a.media.GetMediaByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching media: %w", err)
	}
	mediaByPost := make(map[uint][]models.PostMedia)
	for _, m := range media {
		mediaByPost[m.PostID] = append(mediaByPost[m.PostID], m)
	}

	reactionCounts, err := a.reactions.GetReactionCounts(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching reaction counts: %w", err)
	}
	reactedByViewer, err := a.reactions.GetReactedPostIDs(ctx, viewerOwnerID, postIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching viewer reactions: %w", err)
	}

	commentCounts, err := a.comments.GetCommentCounts(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching comment counts: %w", err)
	}
	recent, err := a.comments.GetRecentComments(ctx, postIDs, len(postIDs)*RecentCommentsPerPost)
	if err != nil {
		return nil, fmt.Errorf("fetching recent comments: %w", err)
	}
	// Rows arrive newest-first across the whole page; keep at most
	// RecentCommentsPerPost per post, then flip each group oldest-first
	// for display.
	commentsByPost := make(map[uint][]models.PostComment)
	for _, c := range recent {
		if len(commentsByPost[c.PostID]) < RecentCommentsPerPost {
			commentsByPost[c.PostID] = append(commentsByPost[c.PostID], c)
		}
	}
	for id, group := range commentsByPost {
		for i, j := 0, len(group)-1; i < j; i, j = i+1, j-1 {
			group[i], group[j] = group[j], group[i]
		}
		commentsByPost[id] = group
	}

	// One batched owner lookup covers post authors and comment authors.
	ownerIDSet := make(map[uint]bool)
	for _, p := range visible {
		ownerIDSet[p.OwnerID] = true
	}
	for _, group := range commentsByPost {
		for _, c := range group {
			ownerIDSet[c.OwnerID] = true
		}
	}
	ownerIDs := make([]uint, 0, len(ownerIDSet))
	for id := range ownerIDSet {
		ownerIDs = append(ownerIDs, id)
	}
	owners, err := a.owners.GetOwnersByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching owners: %w", err)
	}
	ownerMap := make(map[uint]models.OwnerCompact, len(owners))
	for i := range owners {
		ownerMap[owners[i].ID] = owners[i].ToCompact()
	}

	patientIDSet := make(map[uint]bool)
	for _, p := range visible {
		if p.PatientID != nil {
			patientIDSet[*p.PatientID] = true
		}
	}
	patientNames := make(map[uint]string)
	if len(patientIDSet) > 0 {
		patientIDs := make([]uint, 0, len(patientIDSet))
		for id := range patientIDSet {
			patientIDs = append(patientIDs, id)
		}
		patients, err := a.patients.GetPatientsByIDs(ctx, patientIDs)
		if err != nil {
			return nil, fmt.Errorf("fetching patients: %w", err)
		}
		for _, p := range patients {
			patientNames[p.ID] = p.Name
		}
	}

	assembled := make([]AssembledPost, len(visible))
	for i, p := range visible {
		entry := AssembledPost{
			Post:           p,
			Author:         ownerMap[p.OwnerID],
			Media:          mediaByPost[p.ID],
			ReactionsCount: reactionCounts[p.ID],
			CommentsCount:  commentCounts[p.ID],
			ReactedByMe:    reactedByViewer[p.ID],
		}
		if p.PatientID != nil {
			entry.PatientName = patientNames[*p.PatientID]
		}
		for _, c := range commentsByPost[p.ID] {
			entry.RecentComments = append(entry.RecentComments, CommentView{
				PostComment: c,
				Author:      ownerMap[c.OwnerID],
			})
		}
		assembled[i] = entry
	}

	return &Page{Posts: assembled, NextOffset: nextOffset}, nil
}
