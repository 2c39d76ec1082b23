package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
)

type WardrobeRepository struct {
	mu        sync.RWMutex
	wardrobes map[uuid.UUID]*domain.Wardrobe
	now       func() time.Time
}

func NewWardrobeRepo() *WardrobeRepository {
	return NewWardrobeRepoWithClock(time.Now)
}

func NewWardrobeRepoWithClock(now func() time.Time) *WardrobeRepository {
	return &WardrobeRepository{
		wardrobes: make(map[uuid.UUID]*domain.Wardrobe),
		now:       now,
	}
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneItem(item domain.Item) domain.Item {
	item.Colors = cloneStrings(item.Colors)
	item.Tags = cloneStrings(item.Tags)
	item.StylingTags = domain.StylingTags{
		Occasion: cloneStrings(item.StylingTags.Occasion),
		Mood:     cloneStrings(item.StylingTags.Mood),
	}
	if item.DatePurchased != nil {
		d := *item.DatePurchased
		item.DatePurchased = &d
	}
	return item
}

func cloneWardrobe(w *domain.Wardrobe) *domain.Wardrobe {
	out := *w
	out.Items = make([]domain.Item, len(w.Items))
	for i := range w.Items {
		out.Items[i] = cloneItem(w.Items[i])
	}
	return &out
}

func (r *WardrobeRepository) Create(_ context.Context, userID uuid.UUID, name, description string) (*domain.Wardrobe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	w := &domain.Wardrobe{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Items:       []domain.Item{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.wardrobes[w.ID] = w
	return cloneWardrobe(w), nil
}

func (r *WardrobeRepository) ownedLocked(id, userID uuid.UUID) (*domain.Wardrobe, bool) {
	w, ok := r.wardrobes[id]
	if !ok || w.UserID != userID {
		return nil, false
	}
	return w, true
}

func (r *WardrobeRepository) FindForOwner(_ context.Context, id, userID uuid.UUID) (*domain.Wardrobe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.ownedLocked(id, userID)
	if !ok {
		return nil, sql.ErrNoRows
	}
	return cloneWardrobe(w), nil
}

func (r *WardrobeRepository) ListByOwner(_ context.Context, userID uuid.UUID) ([]domain.Wardrobe, error) {
	r.mu.RLock()
	out := []domain.Wardrobe{}
	for _, w := range r.wardrobes {
		if w.UserID == userID {
			out = append(out, *cloneWardrobe(w))
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *WardrobeRepository) Update(_ context.Context, id, userID uuid.UUID, name, description *string) (*domain.Wardrobe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.ownedLocked(id, userID)
	if !ok {
		return nil, sql.ErrNoRows
	}
	if name != nil {
		w.Name = *name
	}
	if description != nil {
		w.Description = *description
	}
	w.UpdatedAt = r.now()
	return cloneWardrobe(w), nil
}

func (r *WardrobeRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ownedLocked(id, userID); !ok {
		return sql.ErrNoRows
	}
	delete(r.wardrobes, id)
	return nil
}

func (r *WardrobeRepository) DeleteByOwner(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, w := range r.wardrobes {
		if w.UserID == userID {
			delete(r.wardrobes, id)
			removed++
		}
	}
	return removed, nil
}

func (r *WardrobeRepository) AddItem(_ context.Context, wardrobeID uuid.UUID, item domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wardrobes[wardrobeID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	item = cloneItem(item)
	item.ID = uuid.New()
	item.WardrobeID = wardrobeID
	item.AddedAt = r.now()
	w.Items = append(w.Items, item)
	w.UpdatedAt = item.AddedAt
	saved := cloneItem(item)
	return &saved, nil
}

func (r *WardrobeRepository) SaveItem(_ context.Context, item domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wardrobes[item.WardrobeID]
	if !ok {
		return sql.ErrNoRows
	}
	for i := range w.Items {
		if w.Items[i].ID == item.ID {
			item.AddedAt = w.Items[i].AddedAt
			w.Items[i] = cloneItem(item)
			w.UpdatedAt = r.now()
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *WardrobeRepository) RemoveItem(_ context.Context, wardrobeID, itemID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wardrobes[wardrobeID]
	if !ok {
		return sql.ErrNoRows
	}
	for i := range w.Items {
		if w.Items[i].ID == itemID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			w.UpdatedAt = r.now()
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *WardrobeRepository) CountsByOwners(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID]domain.WardrobeCounts, error) {
	wanted := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uuid.UUID]domain.WardrobeCounts, len(userIDs))
	for _, w := range r.wardrobes {
		if _, ok := wanted[w.UserID]; !ok {
			continue
		}
		counts := out[w.UserID]
		counts.Wardrobes++
		counts.Items += int64(len(w.Items))
		out[w.UserID] = counts
	}
	return out, nil
}

func (r *WardrobeRepository) Totals(_ context.Context) (domain.WardrobeCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var counts domain.WardrobeCounts
	for _, w := range r.wardrobes {
		counts.Wardrobes++
		counts.Items += int64(len(w.Items))
	}
	return counts, nil
}
