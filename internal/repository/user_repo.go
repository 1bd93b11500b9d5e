package repository

import (
	"context"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (phone, user_type, last_login_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at, updated_at, last_login_at
	`
	return r.db.QueryRow(ctx, query, user.Phone, user.UserType).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	query := `
		SELECT id, phone, user_type, created_at, updated_at, last_login_at
		FROM users
		WHERE phone = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, phone).
		Scan(&user.ID, &user.Phone, &user.UserType, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, phone, user_type, created_at, updated_at, last_login_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Phone, &user.UserType, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	query := `UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
