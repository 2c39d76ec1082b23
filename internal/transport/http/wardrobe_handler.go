package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/service"
)

type WardrobeHandler struct {
	wardrobes *service.WardrobeService
}

type WardrobeRequest struct {
	Name        string `json:"name" validate:"required,max=100" example:"Summer capsule"`
	Description string `json:"description" validate:"max=500" example:"Light layers for July"`
}

type WardrobeUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type StylingTagsRequest struct {
	Occasion *[]string `json:"occasion" validate:"omitempty,dive,max=50"`
	Mood     *[]string `json:"mood" validate:"omitempty,dive,max=50"`
}

// ItemRequest is used for both creating and patching items; only the fields
// present in the body are applied.
type ItemRequest struct {
	Name          *string             `json:"name" validate:"omitempty,max=120" example:"Linen shirt"`
	ImageURL      *string             `json:"image_url" validate:"omitempty,url" example:"https://cdn.example.com/shirt.png"`
	Category      *string             `json:"category" validate:"omitempty,oneof=Tops Bottoms Dresses Outerwear Shoes Accessories Other"`
	Colors        *[]string           `json:"colors" validate:"omitempty,dive,max=30"`
	Tags          *[]string           `json:"tags" validate:"omitempty,dive,max=50"`
	Brand         *string             `json:"brand" validate:"omitempty,max=100"`
	Size          *string             `json:"size" validate:"omitempty,max=20"`
	Visibility    *string             `json:"visibility" validate:"omitempty,oneof=Private Public Friends"`
	Price         *float64            `json:"price" validate:"omitempty,gte=0"`
	DatePurchased *time.Time          `json:"date_purchased"`
	Season        *string             `json:"season" validate:"omitempty,oneof=Spring Summer Fall Winter 'All Season'"`
	StylingTags   *StylingTagsRequest `json:"styling_tags"`
	Status        *string             `json:"status" validate:"omitempty,oneof=Keep Swap Donate Resell"`
	IsFavorite    *bool               `json:"is_favorite"`
	Comments      *string             `json:"comments" validate:"omitempty,max=1000"`
}

func (r ItemRequest) toPatch() domain.ItemPatch {
	patch := domain.ItemPatch{
		Name:          r.Name,
		ImageURL:      r.ImageURL,
		Colors:        r.Colors,
		Tags:          r.Tags,
		Brand:         r.Brand,
		Size:          r.Size,
		Price:         r.Price,
		DatePurchased: r.DatePurchased,
		IsFavorite:    r.IsFavorite,
		Comments:      r.Comments,
	}
	if r.Category != nil {
		v := domain.ItemCategory(*r.Category)
		patch.Category = &v
	}
	if r.Visibility != nil {
		v := domain.ItemVisibility(*r.Visibility)
		patch.Visibility = &v
	}
	if r.Season != nil {
		v := domain.ItemSeason(*r.Season)
		patch.Season = &v
	}
	if r.Status != nil {
		v := domain.ItemStatus(*r.Status)
		patch.Status = &v
	}
	if r.StylingTags != nil {
		patch.Occasion = r.StylingTags.Occasion
		patch.Mood = r.StylingTags.Mood
	}
	return patch
}

func RegisterWardrobes(e *echo.Echo, auth *service.AuthService, wardrobes *service.WardrobeService) {
	h := &WardrobeHandler{wardrobes: wardrobes}

	g := e.Group("/api/wardrobe", RequireAuth(auth))
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/items", h.addItem)
	g.PUT("/:id/items/:itemId", h.updateItem)
	g.DELETE("/:id/items/:itemId", h.removeItem)
	g.PATCH("/:id/items/:itemId/favorite", h.toggleFavorite)
}

func (h *WardrobeHandler) list(c echo.Context) error {
	user, _ := CurrentUser(c)
	wardrobes, err := h.wardrobes.List(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"wardrobes": wardrobes})
}

func (h *WardrobeHandler) create(c echo.Context) error {
	user, _ := CurrentUser(c)
	var req WardrobeRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	wardrobe, err := h.wardrobes.Create(c.Request().Context(), user.ID, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"wardrobe": wardrobe})
}

func (h *WardrobeHandler) get(c echo.Context) error {
	user, _ := CurrentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	wardrobe, err := h.wardrobes.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"wardrobe": wardrobe})
}

func (h *WardrobeHandler) update(c echo.Context) error {
	user, _ := CurrentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req WardrobeUpdateRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	wardrobe, err := h.wardrobes.Update(c.Request().Context(), user.ID, id, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"wardrobe": wardrobe})
}

func (h *WardrobeHandler) delete(c echo.Context) error {
	user, _ := CurrentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.wardrobes.Delete(c.Request().Context(), user.ID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "wardrobe deleted"})
}

func (h *WardrobeHandler) addItem(c echo.Context) error {
	user, _ := CurrentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req ItemRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	item, err := h.wardrobes.AddItem(c.Request().Context(), user.ID, id, req.toPatch())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": item})
}

func (h *WardrobeHandler) updateItem(c echo.Context) error {
	user, _ := CurrentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		return respondError(c, err)
	}
	var req ItemRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	item, err := h.wardrobes.UpdateItem(c.Request().Context(), user.ID, id, itemID, req.toPatch())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

func (h *WardrobeHandler) removeItem(c echo.Context) error {
	user, _ := CurrentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.wardrobes.RemoveItem(c.Request().Context(), user.ID, id, itemID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "item removed"})
}

func (h *WardrobeHandler) toggleFavorite(c echo.Context) error {
	user, _ := CurrentUser(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.wardrobes.ToggleFavorite(c.Request().Context(), user.ID, id, itemID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}
