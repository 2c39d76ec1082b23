package http

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/service"
)

type wardrobeEnvelope struct {
	Wardrobe domain.Wardrobe `json:"wardrobe"`
}

type itemEnvelope struct {
	Item domain.Item `json:"item"`
}

func TestWardrobeLifecycle(t *testing.T) {
	s := newTestServer(t, service.PasswordResetConfig{})
	token, _ := s.register(t, "closet@x.com", "secret1")

	rec := s.do(t, http.MethodPost, "/api/wardrobe", token, map[string]string{"name": "Summer", "description": "linen"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created wardrobeEnvelope
	decode(t, rec, &created)
	base := "/api/wardrobe/" + created.Wardrobe.ID.String()

	rec = s.do(t, http.MethodPost, base+"/items", token, map[string]interface{}{
		"name":      "Linen shirt",
		"image_url": "https://cdn.example.com/shirt.png",
		"colors":    []string{"white"},
		"styling_tags": map[string][]string{
			"occasion": {"beach"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var added itemEnvelope
	decode(t, rec, &added)
	assert.Equal(t, domain.CategoryOther, added.Item.Category)
	assert.Equal(t, domain.VisibilityPrivate, added.Item.Visibility)
	assert.Equal(t, domain.SeasonAllSeason, added.Item.Season)
	assert.Equal(t, domain.StatusKeep, added.Item.Status)
	assert.Equal(t, []string{"beach"}, added.Item.StylingTags.Occasion)
	itemPath := base + "/items/" + added.Item.ID.String()

	rec = s.do(t, http.MethodPut, itemPath, token, map[string]interface{}{"season": "Summer", "price": 39.5})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated itemEnvelope
	decode(t, rec, &updated)
	assert.Equal(t, domain.SeasonSummer, updated.Item.Season)
	assert.Equal(t, 39.5, updated.Item.Price)
	assert.Equal(t, "Linen shirt", updated.Item.Name)

	rec = s.do(t, http.MethodPatch, itemPath+"/favorite", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var favorite itemEnvelope
	decode(t, rec, &favorite)
	assert.True(t, favorite.Item.IsFavorite)

	rec = s.do(t, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched wardrobeEnvelope
	decode(t, rec, &fetched)
	require.Len(t, fetched.Wardrobe.Items, 1)

	rec = s.do(t, http.MethodDelete, itemPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, itemPath, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeItemNotFound, errorCode(t, rec))

	rec = s.do(t, http.MethodDelete, base, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, base, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWardrobeItemValidation(t *testing.T) {
	s := newTestServer(t, service.PasswordResetConfig{})
	token, _ := s.register(t, "strict@x.com", "secret1")

	rec := s.do(t, http.MethodPost, "/api/wardrobe", token, map[string]string{"name": "Main"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created wardrobeEnvelope
	decode(t, rec, &created)
	base := "/api/wardrobe/" + created.Wardrobe.ID.String()

	rec = s.do(t, http.MethodPost, base+"/items", token, map[string]interface{}{
		"name": "Boots", "image_url": "https://cdn.example.com/b.png", "category": "Hats",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	decode(t, rec, &resp)
	assert.Contains(t, resp.Fields, "category")

	rec = s.do(t, http.MethodPost, base+"/items", token, map[string]interface{}{"image_url": "https://cdn.example.com/b.png"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeValidation, errorCode(t, rec))

	rec = s.do(t, http.MethodPost, base+"/items", token, map[string]interface{}{
		"name": "Boots", "image_url": "https://cdn.example.com/b.png", "price": -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWardrobeIsolatedBetweenUsers(t *testing.T) {
	s := newTestServer(t, service.PasswordResetConfig{})
	owner, _ := s.register(t, "owner@x.com", "secret1")
	stranger, _ := s.register(t, "stranger@x.com", "secret1")

	rec := s.do(t, http.MethodPost, "/api/wardrobe", owner, map[string]string{"name": "Private"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created wardrobeEnvelope
	decode(t, rec, &created)
	base := "/api/wardrobe/" + created.Wardrobe.ID.String()

	rec = s.do(t, http.MethodGet, base, stranger, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeWardrobeNotFound, errorCode(t, rec))

	rec = s.do(t, http.MethodDelete, base, stranger, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/wardrobe", stranger, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Wardrobes []domain.Wardrobe `json:"wardrobes"`
	}
	decode(t, rec, &list)
	assert.Empty(t, list.Wardrobes)

	rec = s.do(t, http.MethodGet, "/api/wardrobe/"+uuid.NewString(), owner, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
