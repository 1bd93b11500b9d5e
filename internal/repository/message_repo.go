package repository

import (
	"context"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
)

const messageColumns = `id, sender_id, receiver_id, job_id, content, is_read, created_at, read_at`

type CreateMessageInput struct {
	SenderID   int64
	ReceiverID int64
	JobID      *int64
	Content    string
}

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, input CreateMessageInput) (*models.Message, error) {
	query := `
		INSERT INTO messages (sender_id, receiver_id, job_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + messageColumns
	return r.scanMessage(r.db.QueryRow(ctx, query,
		input.SenderID,
		input.ReceiverID,
		input.JobID,
		input.Content,
	))
}

// ListBetweenUsers returns the conversation between two users in
// chronological order, capped at the limit most recent messages.
func (r *MessageRepository) ListBetweenUsers(ctx context.Context, userA, userB int64, limit int) ([]models.Message, error) {
	query := `
		SELECT ` + messageColumns + ` FROM (
			SELECT ` + messageColumns + `
			FROM messages
			WHERE (sender_id = $1 AND receiver_id = $2)
			   OR (sender_id = $2 AND receiver_id = $1)
			ORDER BY created_at DESC, id DESC
			LIMIT $3
		) recent
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, userA, userB, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		message, err := r.scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *message)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkConversationRead marks every unread message sent by senderID to
// receiverID as read.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, receiverID, senderID int64) error {
	query := `
		UPDATE messages
		SET is_read = TRUE, read_at = NOW()
		WHERE receiver_id = $1 AND sender_id = $2 AND is_read = FALSE
	`
	_, err := r.db.Exec(ctx, query, receiverID, senderID)
	return err
}

func (r *MessageRepository) scanMessage(row rowScanner) (*models.Message, error) {
	var message models.Message
	err := row.Scan(
		&message.ID,
		&message.SenderID,
		&message.ReceiverID,
		&message.JobID,
		&message.Content,
		&message.IsRead,
		&message.CreatedAt,
		&message.ReadAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}
