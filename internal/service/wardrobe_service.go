package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/repository/ports"
)

type WardrobeService struct {
	wardrobes ports.WardrobeRepository
}

func NewWardrobeService(wardrobes ports.WardrobeRepository) *WardrobeService {
	return &WardrobeService{wardrobes: wardrobes}
}

func (s *WardrobeService) List(ctx context.Context, userID uuid.UUID) ([]domain.Wardrobe, error) {
	return s.wardrobes.ListByOwner(ctx, userID)
}

func (s *WardrobeService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Wardrobe, error) {
	wardrobe, err := s.wardrobes.FindForOwner(ctx, id, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrWardrobeNotFound
		}
		return nil, err
	}
	return wardrobe, nil
}

func (s *WardrobeService) Create(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Wardrobe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: wardrobe name is required", ErrValidation)
	}
	return s.wardrobes.Create(ctx, userID, name, strings.TrimSpace(description))
}

func (s *WardrobeService) Update(ctx context.Context, userID, id uuid.UUID, name, description *string) (*domain.Wardrobe, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: wardrobe name cannot be empty", ErrValidation)
		}
		name = &trimmed
	}
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		description = &trimmed
	}
	wardrobe, err := s.wardrobes.Update(ctx, id, userID, name, description)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrWardrobeNotFound
		}
		return nil, err
	}
	return wardrobe, nil
}

func (s *WardrobeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.wardrobes.Delete(ctx, id, userID); err != nil {
		if isNotFound(err) {
			return ErrWardrobeNotFound
		}
		return err
	}
	return nil
}

// AddItem stores a new item in the owner's wardrobe. Name and image URL are
// required; unset enum fields take their defaults.
func (s *WardrobeService) AddItem(ctx context.Context, userID, wardrobeID uuid.UUID, input domain.ItemPatch) (*domain.Item, error) {
	if _, err := s.Get(ctx, userID, wardrobeID); err != nil {
		return nil, err
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrValidation)
	}
	if input.ImageURL == nil || strings.TrimSpace(*input.ImageURL) == "" {
		return nil, fmt.Errorf("%w: item image_url is required", ErrValidation)
	}
	if err := validateItemPatch(input); err != nil {
		return nil, err
	}

	item := newItem()
	input.Apply(&item)
	item.Name = strings.TrimSpace(item.Name)
	item.ImageURL = strings.TrimSpace(item.ImageURL)
	return s.wardrobes.AddItem(ctx, wardrobeID, item)
}

func newItem() domain.Item {
	return domain.Item{
		Category:    domain.CategoryOther,
		Colors:      []string{},
		Tags:        []string{},
		Visibility:  domain.VisibilityPrivate,
		Season:      domain.SeasonAllSeason,
		StylingTags: domain.StylingTags{Occasion: []string{}, Mood: []string{}},
		Status:      domain.StatusKeep,
	}
}

func (s *WardrobeService) UpdateItem(ctx context.Context, userID, wardrobeID, itemID uuid.UUID, patch domain.ItemPatch) (*domain.Item, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	}
	if patch.ImageURL != nil && strings.TrimSpace(*patch.ImageURL) == "" {
		return nil, fmt.Errorf("%w: item image_url cannot be empty", ErrValidation)
	}
	if err := validateItemPatch(patch); err != nil {
		return nil, err
	}
	item, err := s.findItem(ctx, userID, wardrobeID, itemID)
	if err != nil {
		return nil, err
	}
	patch.Apply(item)
	if err := s.saveItem(ctx, *item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *WardrobeService) ToggleFavorite(ctx context.Context, userID, wardrobeID, itemID uuid.UUID) (*domain.Item, error) {
	item, err := s.findItem(ctx, userID, wardrobeID, itemID)
	if err != nil {
		return nil, err
	}
	item.IsFavorite = !item.IsFavorite
	if err := s.saveItem(ctx, *item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *WardrobeService) RemoveItem(ctx context.Context, userID, wardrobeID, itemID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, wardrobeID); err != nil {
		return err
	}
	if err := s.wardrobes.RemoveItem(ctx, wardrobeID, itemID); err != nil {
		if isNotFound(err) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

func (s *WardrobeService) findItem(ctx context.Context, userID, wardrobeID, itemID uuid.UUID) (*domain.Item, error) {
	wardrobe, err := s.Get(ctx, userID, wardrobeID)
	if err != nil {
		return nil, err
	}
	for i := range wardrobe.Items {
		if wardrobe.Items[i].ID == itemID {
			item := wardrobe.Items[i]
			return &item, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *WardrobeService) saveItem(ctx context.Context, item domain.Item) error {
	if err := s.wardrobes.SaveItem(ctx, item); err != nil {
		if isNotFound(err) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

func validateItemPatch(p domain.ItemPatch) error {
	switch {
	case p.Category != nil && !p.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrValidation, *p.Category)
	case p.Visibility != nil && !p.Visibility.Valid():
		return fmt.Errorf("%w: unknown visibility %q", ErrValidation, *p.Visibility)
	case p.Season != nil && !p.Season.Valid():
		return fmt.Errorf("%w: unknown season %q", ErrValidation, *p.Season)
	case p.Status != nil && !p.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrValidation, *p.Status)
	case p.Price != nil && *p.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return nil
}
