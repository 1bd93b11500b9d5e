package repository

import (
	"context"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

const notificationColumns = `id, user_id, title, message, type, reference_id, reference_type,
	   is_read, created_at, read_at`

type CreateNotificationInput struct {
	UserID        int64
	Title         string
	Message       string
	Type          string
	ReferenceID   *int64
	ReferenceType *string
}

type NotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, input CreateNotificationInput) (*models.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, title, message, type, reference_id, reference_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + notificationColumns
	return r.scanNotification(r.db.QueryRow(ctx, query,
		input.UserID,
		input.Title,
		input.Message,
		input.Type,
		input.ReferenceID,
		input.ReferenceType,
	))
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1 AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, userID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		notification, err := r.scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *notification)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID int64) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_read = FALSE
	`
	_, err := r.db.Exec(ctx, query, notificationID, userID)
	return err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`
	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NotificationRepository) scanNotification(row rowScanner) (*models.Notification, error) {
	var notification models.Notification
	err := row.Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Title,
		&notification.Message,
		&notification.Type,
		&notification.ReferenceID,
		&notification.ReferenceType,
		&notification.IsRead,
		&notification.CreatedAt,
		&notification.ReadAt,
	)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}
