package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
)

const userColumns = `id, name, email, profile_picture, password_hash, auth_provider, oauth_id, role, is_active,
        reset_otp_hash, reset_token_id, reset_expires_at, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	domain.User
	ResetOTPHash   sql.NullString `db:"reset_otp_hash"`
	ResetTokenID   sql.NullString `db:"reset_token_id"`
	ResetExpiresAt sql.NullTime   `db:"reset_expires_at"`
}

func (row *userRow) toDomain() *domain.User {
	user := row.User
	if row.ResetOTPHash.Valid && row.ResetTokenID.Valid && row.ResetExpiresAt.Valid {
		user.Reset = &domain.ResetState{
			OTPHash:   row.ResetOTPHash.String,
			TokenID:   row.ResetTokenID.String,
			ExpiresAt: row.ResetExpiresAt.Time,
		}
	}
	return &user
}

func (r *UserRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var row userRow
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *UserRepository) CreateEmailUser(ctx context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error) {
	query := `
        INSERT INTO user_account (name, email, password_hash, auth_provider, role)
        VALUES ($1, $2, $3, 'local', $4)
        RETURNING ` + userColumns
	return r.scanOne(ctx, query, name, email, passwordHash, role)
}

func (r *UserRepository) CreateOAuthUser(ctx context.Context, name, email, oauthID string, picture *string, role domain.Role) (*domain.User, error) {
	query := `
        INSERT INTO user_account (name, email, profile_picture, auth_provider, oauth_id, role)
        VALUES ($1, $2, $3, 'google', $4, $5)
        RETURNING ` + userColumns
	return r.scanOne(ctx, query, name, email, picture, oauthID, role)
}

// LinkOAuth attaches a Google identity to an existing account. The stored
// provider stays as it was so a local password keeps working.
func (r *UserRepository) LinkOAuth(ctx context.Context, id uuid.UUID, oauthID string, picture *string) (*domain.User, error) {
	query := `
        UPDATE user_account
        SET oauth_id = $2,
            profile_picture = COALESCE(profile_picture, $3),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns
	return r.scanOne(ctx, query, id, oauthID, picture)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM user_account WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(ctx, query, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM user_account WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *UserRepository) FindByOAuthID(ctx context.Context, oauthID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM user_account WHERE oauth_id = $1`
	return r.scanOne(ctx, query, oauthID)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name *string, picture *string) (*domain.User, error) {
	query := `
        UPDATE user_account
        SET name = COALESCE($2, name),
            profile_picture = COALESCE($3, profile_picture),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns
	return r.scanOne(ctx, query, id, name, picture)
}

func (r *UserRepository) UpdateAccount(ctx context.Context, id uuid.UUID, update domain.UserAccountUpdate) (*domain.User, error) {
	setParts := make([]string, 0, 5)
	args := []any{id}
	idx := 2

	if update.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", idx))
		args = append(args, *update.Name)
		idx++
	}
	if update.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", idx))
		args = append(args, *update.Email)
		idx++
	}
	if update.Role != nil {
		setParts = append(setParts, fmt.Sprintf("role = $%d", idx))
		args = append(args, *update.Role)
		idx++
	}
	if update.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", idx))
		args = append(args, *update.IsActive)
	}
	if len(setParts) == 0 {
		return r.FindByID(ctx, id)
	}
	setParts = append(setParts, "updated_at = NOW()")

	query := `UPDATE user_account SET ` + strings.Join(setParts, ", ") + ` WHERE id = $1 RETURNING ` + userColumns
	return r.scanOne(ctx, query, args...)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `
        UPDATE user_account
        SET password_hash = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	return execOne(ctx, r.db, query, id, passwordHash)
}

func (r *UserRepository) SaveResetState(ctx context.Context, id uuid.UUID, state domain.ResetState) error {
	const query = `
        UPDATE user_account
        SET reset_otp_hash = $2,
            reset_token_id = $3,
            reset_expires_at = $4,
            updated_at = NOW()
        WHERE id = $1
    `
	return execOne(ctx, r.db, query, id, state.OTPHash, state.TokenID, state.ExpiresAt)
}

func (r *UserRepository) CompletePasswordReset(ctx context.Context, id uuid.UUID, passwordHash string, now time.Time) error {
	const query = `
        UPDATE user_account
        SET password_hash = $2,
            reset_otp_hash = NULL,
            reset_token_id = NULL,
            reset_expires_at = NULL,
            updated_at = NOW()
        WHERE id = $1
          AND reset_expires_at IS NOT NULL
          AND reset_expires_at >= $3
    `
	return execOne(ctx, r.db, query, id, passwordHash, now)
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + `
        FROM user_account
        ORDER BY created_at DESC, id
        LIMIT $1 OFFSET $2`
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) Totals(ctx context.Context, recentSince time.Time) (*domain.UserTotals, error) {
	const query = `
        SELECT COUNT(*) AS total,
               COUNT(*) FILTER (WHERE is_active) AS active,
               COUNT(*) FILTER (WHERE NOT is_active) AS inactive,
               COUNT(*) FILTER (WHERE created_at >= $1) AS recent,
               COUNT(*) FILTER (WHERE auth_provider = 'local') AS local,
               COUNT(*) FILTER (WHERE auth_provider = 'google') AS google
        FROM user_account
    `
	var totals domain.UserTotals
	if err := r.db.GetContext(ctx, &totals, query, recentSince); err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, r.db, `DELETE FROM user_account WHERE id = $1`, id)
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, db *sqlx.DB, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
