package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/repository/ports"
)

const (
	defaultUserPageSize = 50
	maxUserPageSize     = 200
	recentUserWindow    = 7 * 24 * time.Hour
)

type AdminService struct {
	users     ports.UserRepository
	wardrobes ports.WardrobeRepository
	now       func() time.Time
}

type UserListResult struct {
	Users  []domain.UserWithCounts
	Total  int64
	Limit  int
	Offset int
}

type UserDetail struct {
	User      *domain.User
	Stats     domain.WardrobeCounts
	Wardrobes []domain.Wardrobe
}

func NewAdminService(users ports.UserRepository, wardrobes ports.WardrobeRepository) *AdminService {
	return &AdminService{users: users, wardrobes: wardrobes, now: time.Now}
}

func normalizeUserPagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultUserPageSize
	}
	if limit > maxUserPageSize {
		limit = maxUserPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) (*UserListResult, error) {
	limit, offset = normalizeUserPagination(limit, offset)
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	totals, err := s.users.Totals(ctx, s.now().Add(-recentUserWindow))
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	counts, err := s.wardrobes.CountsByOwners(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.UserWithCounts, len(users))
	for i := range users {
		out[i] = domain.UserWithCounts{User: users[i], Stats: counts[users[i].ID]}
	}
	return &UserListResult{Users: out, Total: totals.Total, Limit: limit, Offset: offset}, nil
}

func (s *AdminService) GetUser(ctx context.Context, id uuid.UUID) (*UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	wardrobes, err := s.wardrobes.ListByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &UserDetail{User: user, Wardrobes: wardrobes}
	detail.Stats.Wardrobes = int64(len(wardrobes))
	for _, w := range wardrobes {
		detail.Stats.Items += int64(len(w.Items))
	}
	return detail, nil
}

// UpdateUser applies an admin edit to the account id. An admin editing their
// own account cannot switch it off or drop the admin role.
func (s *AdminService) UpdateUser(ctx context.Context, actor *domain.User, id uuid.UUID, update domain.UserAccountUpdate) (*domain.User, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if actor.ID == id {
		if update.IsActive != nil && !*update.IsActive {
			return nil, ErrSelfProtection
		}
		if update.Role != nil && *update.Role != domain.RoleAdmin {
			return nil, ErrSelfProtection
		}
	}
	if err := normalizeAccountUpdate(&update); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateAccount(ctx, id, update)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrUserNotFound
		case isUniqueViolation(err):
			return nil, ErrEmailAlreadyUsed
		default:
			return nil, err
		}
	}
	return user, nil
}

func normalizeAccountUpdate(update *domain.UserAccountUpdate) error {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		update.Name = &name
	}
	if update.Email != nil {
		email := domain.NormalizeEmail(*update.Email)
		if email == "" || !strings.Contains(email, "@") {
			return fmt.Errorf("%w: email is invalid", ErrValidation)
		}
		update.Email = &email
	}
	if update.Role != nil && !update.Role.Valid() {
		return fmt.Errorf("%w: role must be user or admin", ErrValidation)
	}
	return nil
}

// DeleteUser removes the user's wardrobes and then the user. The two steps are
// not transactional; a failure in between leaves an empty account behind.
func (s *AdminService) DeleteUser(ctx context.Context, actor *domain.User, id uuid.UUID) (int64, error) {
	if actor == nil || !actor.IsAdmin() {
		return 0, ErrForbidden
	}
	if actor.ID == id {
		return 0, ErrSelfProtection
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	removed, err := s.wardrobes.DeleteByOwner(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete wardrobes of user %s: %w", id, err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return removed, ErrUserNotFound
		}
		return removed, fmt.Errorf("delete user %s: %w", id, err)
	}
	return removed, nil
}

func (s *AdminService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	totals, err := s.users.Totals(ctx, s.now().Add(-recentUserWindow))
	if err != nil {
		return nil, err
	}
	counts, err := s.wardrobes.Totals(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.AdminStats{
		Users:     *totals,
		Wardrobes: counts.Wardrobes,
		Items:     counts.Items,
		AuthProviders: map[string]int64{
			string(domain.ProviderLocal):  totals.Local,
			string(domain.ProviderGoogle): totals.Google,
		},
	}, nil
}
