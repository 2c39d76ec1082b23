package domain

import (
	"time"

	"github.com/google/uuid"
)

type ItemCategory string

const (
	CategoryTops        ItemCategory = "Tops"
	CategoryBottoms     ItemCategory = "Bottoms"
	CategoryDresses     ItemCategory = "Dresses"
	CategoryOuterwear   ItemCategory = "Outerwear"
	CategoryShoes       ItemCategory = "Shoes"
	CategoryAccessories ItemCategory = "Accessories"
	CategoryOther       ItemCategory = "Other"
)

type ItemVisibility string

const (
	VisibilityPrivate ItemVisibility = "Private"
	VisibilityPublic  ItemVisibility = "Public"
	VisibilityFriends ItemVisibility = "Friends"
)

type ItemSeason string

const (
	SeasonSpring    ItemSeason = "Spring"
	SeasonSummer    ItemSeason = "Summer"
	SeasonFall      ItemSeason = "Fall"
	SeasonWinter    ItemSeason = "Winter"
	SeasonAllSeason ItemSeason = "All Season"
)

type ItemStatus string

const (
	StatusKeep   ItemStatus = "Keep"
	StatusSwap   ItemStatus = "Swap"
	StatusDonate ItemStatus = "Donate"
	StatusResell ItemStatus = "Resell"
)

type StylingTags struct {
	Occasion []string `json:"occasion"`
	Mood     []string `json:"mood"`
}

type Item struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	WardrobeID    uuid.UUID      `db:"wardrobe_id" json:"wardrobe_id"`
	Name          string         `db:"name" json:"name"`
	ImageURL      string         `db:"image_url" json:"image_url"`
	Category      ItemCategory   `db:"category" json:"category"`
	Colors        []string       `db:"colors" json:"colors"`
	Tags          []string       `db:"tags" json:"tags"`
	Brand         string         `db:"brand" json:"brand"`
	Size          string         `db:"size" json:"size"`
	Visibility    ItemVisibility `db:"visibility" json:"visibility"`
	Price         float64        `db:"price" json:"price"`
	DatePurchased *time.Time     `db:"date_purchased" json:"date_purchased,omitempty"`
	Season        ItemSeason     `db:"season" json:"season"`
	StylingTags   StylingTags    `db:"-" json:"styling_tags"`
	Status        ItemStatus     `db:"status" json:"status"`
	IsFavorite    bool           `db:"is_favorite" json:"is_favorite"`
	Comments      string         `db:"comments" json:"comments"`
	AddedAt       time.Time      `db:"added_at" json:"added_at"`
}

type Wardrobe struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Items       []Item    `db:"-" json:"items"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ItemPatch is a partial item update; nil fields are left as they are.
type ItemPatch struct {
	Name          *string
	ImageURL      *string
	Category      *ItemCategory
	Colors        *[]string
	Tags          *[]string
	Brand         *string
	Size          *string
	Visibility    *ItemVisibility
	Price         *float64
	DatePurchased *time.Time
	Season        *ItemSeason
	Occasion      *[]string
	Mood          *[]string
	Status        *ItemStatus
	IsFavorite    *bool
	Comments      *string
}

func (c ItemCategory) Valid() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryDresses, CategoryOuterwear, CategoryShoes, CategoryAccessories, CategoryOther:
		return true
	}
	return false
}

func (v ItemVisibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityPublic, VisibilityFriends:
		return true
	}
	return false
}

func (s ItemSeason) Valid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter, SeasonAllSeason:
		return true
	}
	return false
}

func (s ItemStatus) Valid() bool {
	switch s {
	case StatusKeep, StatusSwap, StatusDonate, StatusResell:
		return true
	}
	return false
}

// Apply copies the set fields of p onto item.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Colors != nil {
		item.Colors = *p.Colors
	}
	if p.Tags != nil {
		item.Tags = *p.Tags
	}
	if p.Brand != nil {
		item.Brand = *p.Brand
	}
	if p.Size != nil {
		item.Size = *p.Size
	}
	if p.Visibility != nil {
		item.Visibility = *p.Visibility
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.DatePurchased != nil {
		item.DatePurchased = p.DatePurchased
	}
	if p.Season != nil {
		item.Season = *p.Season
	}
	if p.Occasion != nil {
		item.StylingTags.Occasion = *p.Occasion
	}
	if p.Mood != nil {
		item.StylingTags.Mood = *p.Mood
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.IsFavorite != nil {
		item.IsFavorite = *p.IsFavorite
	}
	if p.Comments != nil {
		item.Comments = *p.Comments
	}
}
