package engagement

import (
	"context"
	"log"
	"sync"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/changestream"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/repositories"
)

// Manager hands out one Session per viewer and drives realtime refreshes
// across all active sessions
type Manager struct {
	fetcher   PageFetcher
	reactions repositories.ReactionRepository
	comments  repositories.CommentRepository
	notifier  Notifier
	changes   changestream.Publisher

	mu       sync.Mutex
	sessions map[uint]*Session
}

// NewManager creates a session Manager
func NewManager(
	fetcher PageFetcher,
	reactionRepo repositories.ReactionRepository,
	commentRepo repositories.CommentRepository,
	notifier Notifier,
	changes changestream.Publisher,
) *Manager {
	return &Manager{
		fetcher:   fetcher,
		reactions: reactionRepo,
		comments:  commentRepo,
		notifier:  notifier,
		changes:   changes,
		sessions:  make(map[uint]*Session),
	}
}

// Session returns the viewer's session, creating it on first use
func (m *Manager) Session(viewer *models.Owner) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[viewer.ID]; ok {
		return s
	}
	s := NewSession(viewer, m.fetcher, m.reactions, m.comments, m.notifier, m.changes)
	m.sessions[viewer.ID] = s
	return s
}

// RefreshFirstPages re-assembles the first page of every active session.
// Per-session failures are logged and do not stop the sweep; the first
// error is reported so the caller can record the refresh as failed.
func (m *Manager) RefreshFirstPages(ctx context.Context) error {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	var firstErr error
	for _, s := range sessions {
		if err := s.RefreshFirstPage(ctx); err != nil {
			log.Printf("engagement: refreshing session %d failed: %v", s.viewerOwnerID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
