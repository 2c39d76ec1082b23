package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
)

// WardrobeRepository stores wardrobes and their items. Owner-scoped calls
// return sql.ErrNoRows when the wardrobe does not belong to userID.
type WardrobeRepository interface {
	Create(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Wardrobe, error)
	FindForOwner(ctx context.Context, id, userID uuid.UUID) (*domain.Wardrobe, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]domain.Wardrobe, error)
	Update(ctx context.Context, id, userID uuid.UUID, name, description *string) (*domain.Wardrobe, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	// DeleteByOwner removes every wardrobe of userID together with its items.
	DeleteByOwner(ctx context.Context, userID uuid.UUID) (int64, error)

	AddItem(ctx context.Context, wardrobeID uuid.UUID, item domain.Item) (*domain.Item, error)
	SaveItem(ctx context.Context, item domain.Item) error
	RemoveItem(ctx context.Context, wardrobeID, itemID uuid.UUID) error

	CountsByOwners(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]domain.WardrobeCounts, error)
	Totals(ctx context.Context) (domain.WardrobeCounts, error)
}
