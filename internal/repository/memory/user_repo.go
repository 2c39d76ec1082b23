// Package memory holds map-backed repositories used by tests and by
// STORAGE_DRIVER=memory. They mirror the error contract of the postgres
// repositories: sql.ErrNoRows on a miss and a 23505 *pgconn.PgError on a
// duplicate key.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
	now   func() time.Time
}

func NewUserRepo() *UserRepository {
	return NewUserRepoWithClock(time.Now)
}

func NewUserRepoWithClock(now func() time.Time) *UserRepository {
	return &UserRepository{
		users: make(map[uuid.UUID]*domain.User),
		now:   now,
	}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}

func cloneUser(u *domain.User) *domain.User {
	out := *u
	if u.Reset != nil {
		reset := *u.Reset
		out.Reset = &reset
	}
	return &out
}

func strPtr(s string) *string { return &s }

// emailTakenLocked must be called with mu held.
func (r *UserRepository) emailTakenLocked(email string, except uuid.UUID) bool {
	for id, u := range r.users {
		if id != except && domain.NormalizeEmail(u.Email) == domain.NormalizeEmail(email) {
			return true
		}
	}
	return false
}

func (r *UserRepository) oauthTakenLocked(oauthID string, except uuid.UUID) bool {
	for id, u := range r.users {
		if id != except && u.OAuthID != nil && *u.OAuthID == oauthID {
			return true
		}
	}
	return false
}

func (r *UserRepository) insertLocked(u *domain.User) *domain.User {
	now := r.now()
	u.ID = uuid.New()
	u.IsActive = true
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = u
	return cloneUser(u)
}

func (r *UserRepository) CreateEmailUser(_ context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTakenLocked(email, uuid.Nil) {
		return nil, uniqueViolation("user_account_email_uq")
	}
	return r.insertLocked(&domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: strPtr(passwordHash),
		Provider:     domain.ProviderLocal,
		Role:         role,
	}), nil
}

func (r *UserRepository) CreateOAuthUser(_ context.Context, name, email, oauthID string, picture *string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTakenLocked(email, uuid.Nil) {
		return nil, uniqueViolation("user_account_email_uq")
	}
	if r.oauthTakenLocked(oauthID, uuid.Nil) {
		return nil, uniqueViolation("user_account_oauth_id_uq")
	}
	return r.insertLocked(&domain.User{
		Name:           name,
		Email:          email,
		ProfilePicture: picture,
		Provider:       domain.ProviderGoogle,
		OAuthID:        strPtr(oauthID),
		Role:           role,
	}), nil
}

func (r *UserRepository) LinkOAuth(_ context.Context, id uuid.UUID, oauthID string, picture *string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if r.oauthTakenLocked(oauthID, id) {
		return nil, uniqueViolation("user_account_oauth_id_uq")
	}
	u.OAuthID = strPtr(oauthID)
	if u.ProfilePicture == nil && picture != nil {
		u.ProfilePicture = strPtr(*picture)
	}
	u.UpdatedAt = r.now()
	return cloneUser(u), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if domain.NormalizeEmail(u.Email) == domain.NormalizeEmail(email) {
			return cloneUser(u), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByOAuthID(_ context.Context, oauthID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.OAuthID != nil && *u.OAuthID == oauthID {
			return cloneUser(u), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *UserRepository) UpdateProfile(_ context.Context, id uuid.UUID, name *string, picture *string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if name != nil {
		u.Name = *name
	}
	if picture != nil {
		u.ProfilePicture = strPtr(*picture)
	}
	u.UpdatedAt = r.now()
	return cloneUser(u), nil
}

func (r *UserRepository) UpdateAccount(_ context.Context, id uuid.UUID, update domain.UserAccountUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.Email != nil && r.emailTakenLocked(*update.Email, id) {
		return nil, uniqueViolation("user_account_email_uq")
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.IsActive != nil {
		u.IsActive = *update.IsActive
	}
	u.UpdatedAt = r.now()
	return cloneUser(u), nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = strPtr(passwordHash)
	u.UpdatedAt = r.now()
	return nil
}

func (r *UserRepository) SaveResetState(_ context.Context, id uuid.UUID, state domain.ResetState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.Reset = &state
	u.UpdatedAt = r.now()
	return nil
}

func (r *UserRepository) CompletePasswordReset(_ context.Context, id uuid.UUID, passwordHash string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Reset == nil || u.Reset.Expired(now) {
		return sql.ErrNoRows
	}
	u.PasswordHash = strPtr(passwordHash)
	u.Reset = nil
	u.UpdatedAt = r.now()
	return nil
}

func (r *UserRepository) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	r.mu.RLock()
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *cloneUser(u))
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []domain.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *UserRepository) Totals(_ context.Context, recentSince time.Time) (*domain.UserTotals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var totals domain.UserTotals
	for _, u := range r.users {
		totals.Total++
		if u.IsActive {
			totals.Active++
		} else {
			totals.Inactive++
		}
		if !u.CreatedAt.Before(recentSince) {
			totals.Recent++
		}
		switch u.Provider {
		case domain.ProviderLocal:
			totals.Local++
		case domain.ProviderGoogle:
			totals.Google++
		}
	}
	return &totals, nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.users, id)
	return nil
}
