package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageService struct {
	db          *pgxpool.Pool
	messageRepo *repository.MessageRepository
	userRepo    *repository.UserRepository
}

func NewMessageService(
	db *pgxpool.Pool,
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
) *MessageService {
	return &MessageService{db: db, messageRepo: messageRepo, userRepo: userRepo}
}

type SendMessageInput struct {
	ReceiverID int64
	JobID      *int64
	Content    string
}

// Send stores the message and a notification for the receiver in one
// transaction. The caller decides how to fan it out to live connections.
func (s *MessageService) Send(ctx context.Context, senderID int64, input SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if input.ReceiverID == senderID {
		return nil, ErrMessageToSelf
	}
	if _, err := s.userRepo.GetByID(ctx, input.ReceiverID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txMessageRepo := repository.NewMessageRepository(tx)
	txNotificationRepo := repository.NewNotificationRepository(tx)

	message, err := txMessageRepo.Create(ctx, repository.CreateMessageInput{
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		JobID:      input.JobID,
		Content:    content,
	})
	if err != nil {
		return nil, err
	}

	referenceType := "message"
	if _, err := txNotificationRepo.Create(ctx, repository.CreateNotificationInput{
		UserID:        input.ReceiverID,
		Title:         "New message",
		Message:       "You have a new message",
		Type:          "message",
		ReferenceID:   &message.ID,
		ReferenceType: &referenceType,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *MessageService) History(ctx context.Context, userID, otherUserID int64, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.messageRepo.ListBetweenUsers(ctx, userID, otherUserID, limit)
}

func (s *MessageService) MarkConversationRead(ctx context.Context, userID, otherUserID int64) error {
	return s.messageRepo.MarkConversationRead(ctx, userID, otherUserID)
}
