package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/domain"
)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresUserRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, address, password_hash, type,
		email_verified, two_factor_enabled, COALESCE(two_factor_secret, ''),
		COALESCE(refresh_token_hash, ''), COALESCE(avatar, ''), created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Address,
		&user.PasswordHash, &user.Type, &user.EmailVerified, &user.TwoFactorEnabled,
		&user.TwoFactorSecret, &user.RefreshTokenHash, &user.Avatar, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1;`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1;`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, first_name, last_name, email, address, password_hash, type,
                           email_verified, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, user.ID, user.FirstName, user.LastName, user.Email, user.Address, user.PasswordHash,
		user.Type, user.EmailVerified, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id, firstName, lastName, address string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET first_name = $2, last_name = $3, address = $4, updated_at = now()
		WHERE id = $1
	`, id, firstName, lastName, address)
	return err
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1
	`, id, hash)
	return err
}

func (r *PostgresRepository) UpdateEmail(ctx context.Context, id, email string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET email = $2, updated_at = now() WHERE id = $1
	`, id, email)
	return err
}

func (r *PostgresRepository) MarkEmailVerified(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET email_verified = TRUE, updated_at = now() WHERE id = $1
	`, id)
	return err
}

func (r *PostgresRepository) SetTwoFactorSecret(ctx context.Context, id, secret string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET two_factor_secret = $2, updated_at = now() WHERE id = $1
	`, id, secret)
	return err
}

func (r *PostgresRepository) EnableTwoFactor(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET two_factor_enabled = TRUE, updated_at = now()
		WHERE id = $1 AND two_factor_secret IS NOT NULL
	`, id)
	return err
}

func (r *PostgresRepository) DisableTwoFactor(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET two_factor_enabled = FALSE, two_factor_secret = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	return err
}

func (r *PostgresRepository) SetRefreshTokenHash(ctx context.Context, id, hash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET refresh_token_hash = $2, updated_at = now() WHERE id = $1
	`, id, hash)
	return err
}

// SwapRefreshTokenHash rotates the session hash only when the previous hash
// still matches. The WHERE clause is the storage-level guard that makes two
// concurrent rotations with the same old token mutually exclusive.
func (r *PostgresRepository) SwapRefreshTokenHash(ctx context.Context, id, oldHash, newHash string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET refresh_token_hash = $3, updated_at = now()
		WHERE id = $1 AND refresh_token_hash = $2
	`, id, oldHash, newHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) ClearRefreshTokenHash(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET refresh_token_hash = NULL, updated_at = now() WHERE id = $1
	`, id)
	return err
}

// CreateAuthToken supersedes all prior live tokens of the same purpose
// before inserting the new one, so at most one is redeemable at a time.
func (r *PostgresRepository) CreateAuthToken(ctx context.Context, token *domain.AuthToken) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM auth_tokens WHERE user_id = $1 AND purpose = $2 AND NOT consumed
	`, token.UserID, string(token.Purpose))
	if err != nil {
		return fmt.Errorf("failed to invalidate previous tokens: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO auth_tokens (id, user_id, purpose, token_hash, payload, expires_at, consumed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
	`, token.ID, token.UserID, string(token.Purpose), token.TokenHash, token.Payload,
		token.ExpiresAt, token.CreatedAt)
	return err
}

func (r *PostgresRepository) ConsumeAuthToken(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.AuthToken, error) {
	query := `
		UPDATE auth_tokens
		SET consumed = TRUE
		WHERE token_hash = $1 AND purpose = $2 AND NOT consumed AND expires_at > now()
		RETURNING id, user_id, payload, expires_at, created_at
	`
	var token domain.AuthToken
	token.TokenHash = tokenHash
	token.Purpose = purpose
	token.Consumed = true
	err := r.db.QueryRow(ctx, query, tokenHash, string(purpose)).
		Scan(&token.ID, &token.UserID, &token.Payload, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to consume token: %w", err)
	}
	return &token, nil
}

func (r *PostgresRepository) PeekAuthToken(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.AuthToken, error) {
	query := `
		SELECT id, user_id, payload, expires_at, created_at
		FROM auth_tokens
		WHERE token_hash = $1 AND purpose = $2 AND NOT consumed AND expires_at > now()
		LIMIT 1
	`
	var token domain.AuthToken
	token.TokenHash = tokenHash
	token.Purpose = purpose
	err := r.db.QueryRow(ctx, query, tokenHash, string(purpose)).
		Scan(&token.ID, &token.UserID, &token.Payload, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	return &token, nil
}
