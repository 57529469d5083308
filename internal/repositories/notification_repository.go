package repositories

import (
	"context"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification writes.
// The feed subsystem only ever inserts; reading and consumption belong to
// the notifications subsystem.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a Postgres-backed NotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}
