// Package notify writes engagement notifications to post owners.
// All dispatch is best-effort: failures are logged, never retried, and
// never propagated to the engagement action that triggered them.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/repositories"
)

const dispatchTimeout = 10 * time.Second

// Fanout resolves a target owner to their identity-provider user id and
// writes a single notification row addressed to it
type Fanout struct {
	owners        repositories.OwnerRepository
	notifications repositories.NotificationRepository
}

// NewFanout creates a Fanout over the given repositories
func NewFanout(ownerRepo repositories.OwnerRepository, notificationRepo repositories.NotificationRepository) *Fanout {
	return &Fanout{
		owners:        ownerRepo,
		notifications: notificationRepo,
	}
}

// Notify writes one notification addressed to the target owner's
// identity-provider user. An owner acting on their own post never
// generates a notification.
func (f *Fanout) Notify(ctx context.Context, targetOwnerID, actingOwnerID uint, kind, title, message string) error {
	if targetOwnerID == actingOwnerID {
		return nil
	}
	owner, err := f.owners.GetOwnerByID(ctx, targetOwnerID)
	if err != nil {
		return fmt.Errorf("resolving notification target %d: %w", targetOwnerID, err)
	}
	notification := &models.Notification{
		UserID:  owner.UserID,
		Title:   title,
		Message: message,
		Kind:    kind,
	}
	if err := f.notifications.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("writing notification: %w", err)
	}
	return nil
}

// Dispatch spawns Notify detached from the caller. The write runs on its
// own context so a finished request cannot cancel it, and its error is
// deliberately discarded after logging.
func (f *Fanout) Dispatch(targetOwnerID, actingOwnerID uint, kind, title, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := f.Notify(ctx, targetOwnerID, actingOwnerID, kind, title, message); err != nil {
			log.Printf("notify: fan-out to owner %d failed: %v", targetOwnerID, err)
		}
	}()
}
