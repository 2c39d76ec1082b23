package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
)

// UserRepository is the credential store. Lookups return sql.ErrNoRows when
// nothing matches and a *pgconn.PgError with code 23505 on duplicate email or
// OAuth id.
type UserRepository interface {
	CreateEmailUser(ctx context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error)
	CreateOAuthUser(ctx context.Context, name, email, oauthID string, picture *string, role domain.Role) (*domain.User, error)
	LinkOAuth(ctx context.Context, id uuid.UUID, oauthID string, picture *string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByOAuthID(ctx context.Context, oauthID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name *string, picture *string) (*domain.User, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, update domain.UserAccountUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// SaveResetState replaces any in-flight reset for the user.
	SaveResetState(ctx context.Context, id uuid.UUID, state domain.ResetState) error
	// CompletePasswordReset stores the new hash and clears the reset state in
	// a single write, only while a reset is still open at now. Otherwise it
	// returns sql.ErrNoRows.
	CompletePasswordReset(ctx context.Context, id uuid.UUID, passwordHash string, now time.Time) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Totals(ctx context.Context, recentSince time.Time) (*domain.UserTotals, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
