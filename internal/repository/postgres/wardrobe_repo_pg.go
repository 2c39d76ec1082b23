package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
)

const itemColumns = `id, wardrobe_id, name, image_url, category, colors, tags, brand, size, visibility,
        price::float8 AS price, date_purchased, season, occasion, mood, status, is_favorite, comments, added_at`

type WardrobeRepository struct {
	db *sqlx.DB
}

func NewWardrobeRepo(db *sqlx.DB) *WardrobeRepository {
	return &WardrobeRepository{db: db}
}

type itemRow struct {
	ID            uuid.UUID      `db:"id"`
	WardrobeID    uuid.UUID      `db:"wardrobe_id"`
	Name          string         `db:"name"`
	ImageURL      string         `db:"image_url"`
	Category      string         `db:"category"`
	Colors        pq.StringArray `db:"colors"`
	Tags          pq.StringArray `db:"tags"`
	Brand         string         `db:"brand"`
	Size          string         `db:"size"`
	Visibility    string         `db:"visibility"`
	Price         float64        `db:"price"`
	DatePurchased *time.Time     `db:"date_purchased"`
	Season        string         `db:"season"`
	Occasion      pq.StringArray `db:"occasion"`
	Mood          pq.StringArray `db:"mood"`
	Status        string         `db:"status"`
	IsFavorite    bool           `db:"is_favorite"`
	Comments      string         `db:"comments"`
	AddedAt       time.Time      `db:"added_at"`
}

func (row itemRow) toDomain() domain.Item {
	return domain.Item{
		ID:            row.ID,
		WardrobeID:    row.WardrobeID,
		Name:          row.Name,
		ImageURL:      row.ImageURL,
		Category:      domain.ItemCategory(row.Category),
		Colors:        nonNil(row.Colors),
		Tags:          nonNil(row.Tags),
		Brand:         row.Brand,
		Size:          row.Size,
		Visibility:    domain.ItemVisibility(row.Visibility),
		Price:         row.Price,
		DatePurchased: row.DatePurchased,
		Season:        domain.ItemSeason(row.Season),
		StylingTags:   domain.StylingTags{Occasion: nonNil(row.Occasion), Mood: nonNil(row.Mood)},
		Status:        domain.ItemStatus(row.Status),
		IsFavorite:    row.IsFavorite,
		Comments:      row.Comments,
		AddedAt:       row.AddedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (r *WardrobeRepository) Create(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Wardrobe, error) {
	const query = `
        INSERT INTO wardrobe (user_id, name, description)
        VALUES ($1, $2, $3)
        RETURNING id, user_id, name, description, created_at, updated_at
    `
	var wardrobe domain.Wardrobe
	if err := r.db.GetContext(ctx, &wardrobe, query, userID, name, description); err != nil {
		return nil, err
	}
	wardrobe.Items = []domain.Item{}
	return &wardrobe, nil
}

func (r *WardrobeRepository) FindForOwner(ctx context.Context, id, userID uuid.UUID) (*domain.Wardrobe, error) {
	const query = `
        SELECT id, user_id, name, description, created_at, updated_at
        FROM wardrobe
        WHERE id = $1 AND user_id = $2
    `
	var wardrobe domain.Wardrobe
	if err := r.db.GetContext(ctx, &wardrobe, query, id, userID); err != nil {
		return nil, err
	}
	items, err := r.itemsFor(ctx, []uuid.UUID{wardrobe.ID})
	if err != nil {
		return nil, err
	}
	wardrobe.Items = itemsOrEmpty(items[wardrobe.ID])
	return &wardrobe, nil
}

func (r *WardrobeRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]domain.Wardrobe, error) {
	const query = `
        SELECT id, user_id, name, description, created_at, updated_at
        FROM wardrobe
        WHERE user_id = $1
        ORDER BY created_at DESC, id
    `
	var wardrobes []domain.Wardrobe
	if err := r.db.SelectContext(ctx, &wardrobes, query, userID); err != nil {
		return nil, err
	}
	if len(wardrobes) == 0 {
		return []domain.Wardrobe{}, nil
	}

	ids := make([]uuid.UUID, len(wardrobes))
	for i := range wardrobes {
		ids[i] = wardrobes[i].ID
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range wardrobes {
		wardrobes[i].Items = itemsOrEmpty(items[wardrobes[i].ID])
	}
	return wardrobes, nil
}

func (r *WardrobeRepository) itemsFor(ctx context.Context, wardrobeIDs []uuid.UUID) (map[uuid.UUID][]domain.Item, error) {
	query := `SELECT ` + itemColumns + `
        FROM wardrobe_item
        WHERE wardrobe_id = ANY($1)
        ORDER BY added_at, id`
	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(wardrobeIDs)); err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID][]domain.Item, len(wardrobeIDs))
	for _, row := range rows {
		out[row.WardrobeID] = append(out[row.WardrobeID], row.toDomain())
	}
	return out, nil
}

func itemsOrEmpty(items []domain.Item) []domain.Item {
	if items == nil {
		return []domain.Item{}
	}
	return items
}

func (r *WardrobeRepository) Update(ctx context.Context, id, userID uuid.UUID, name, description *string) (*domain.Wardrobe, error) {
	const query = `
        UPDATE wardrobe
        SET name = COALESCE($3, name),
            description = COALESCE($4, description),
            updated_at = NOW()
        WHERE id = $1 AND user_id = $2
    `
	if err := execOne(ctx, r.db, query, id, userID, name, description); err != nil {
		return nil, err
	}
	return r.FindForOwner(ctx, id, userID)
}

func (r *WardrobeRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return execOne(ctx, r.db, `DELETE FROM wardrobe WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *WardrobeRepository) DeleteByOwner(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wardrobe WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *WardrobeRepository) AddItem(ctx context.Context, wardrobeID uuid.UUID, item domain.Item) (*domain.Item, error) {
	query := `
        INSERT INTO wardrobe_item (wardrobe_id, name, image_url, category, colors, tags, brand, size, visibility,
            price, date_purchased, season, occasion, mood, status, is_favorite, comments)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
        RETURNING ` + itemColumns
	var row itemRow
	err := r.db.QueryRowxContext(ctx, query,
		wardrobeID, item.Name, item.ImageURL, item.Category,
		pq.Array(nonNil(item.Colors)), pq.Array(nonNil(item.Tags)),
		item.Brand, item.Size, item.Visibility, item.Price, item.DatePurchased, item.Season,
		pq.Array(nonNil(item.StylingTags.Occasion)), pq.Array(nonNil(item.StylingTags.Mood)),
		item.Status, item.IsFavorite, item.Comments,
	).StructScan(&row)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE wardrobe SET updated_at = NOW() WHERE id = $1`, wardrobeID); err != nil {
		return nil, err
	}
	saved := row.toDomain()
	return &saved, nil
}

func (r *WardrobeRepository) SaveItem(ctx context.Context, item domain.Item) error {
	const query = `
        UPDATE wardrobe_item
        SET name = $3, image_url = $4, category = $5, colors = $6, tags = $7, brand = $8, size = $9,
            visibility = $10, price = $11, date_purchased = $12, season = $13, occasion = $14, mood = $15,
            status = $16, is_favorite = $17, comments = $18
        WHERE id = $1 AND wardrobe_id = $2
    `
	return execOne(ctx, r.db, query,
		item.ID, item.WardrobeID, item.Name, item.ImageURL, item.Category,
		pq.Array(nonNil(item.Colors)), pq.Array(nonNil(item.Tags)),
		item.Brand, item.Size, item.Visibility, item.Price, item.DatePurchased, item.Season,
		pq.Array(nonNil(item.StylingTags.Occasion)), pq.Array(nonNil(item.StylingTags.Mood)),
		item.Status, item.IsFavorite, item.Comments,
	)
}

func (r *WardrobeRepository) RemoveItem(ctx context.Context, wardrobeID, itemID uuid.UUID) error {
	return execOne(ctx, r.db, `DELETE FROM wardrobe_item WHERE id = $1 AND wardrobe_id = $2`, itemID, wardrobeID)
}

func (r *WardrobeRepository) CountsByOwners(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]domain.WardrobeCounts, error) {
	out := make(map[uuid.UUID]domain.WardrobeCounts, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	const query = `
        SELECT w.user_id,
               COUNT(DISTINCT w.id) AS wardrobes,
               COUNT(i.id) AS items
        FROM wardrobe w
        LEFT JOIN wardrobe_item i ON i.wardrobe_id = w.id
        WHERE w.user_id = ANY($1)
        GROUP BY w.user_id
    `
	var rows []struct {
		UserID    uuid.UUID `db:"user_id"`
		Wardrobes int64     `db:"wardrobes"`
		Items     int64     `db:"items"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(userIDs)); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.UserID] = domain.WardrobeCounts{Wardrobes: row.Wardrobes, Items: row.Items}
	}
	return out, nil
}

func (r *WardrobeRepository) Totals(ctx context.Context) (domain.WardrobeCounts, error) {
	const query = `
        SELECT (SELECT COUNT(*) FROM wardrobe) AS wardrobes,
               (SELECT COUNT(*) FROM wardrobe_item) AS items
    `
	var counts struct {
		Wardrobes int64 `db:"wardrobes"`
		Items     int64 `db:"items"`
	}
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return domain.WardrobeCounts{}, err
	}
	return domain.WardrobeCounts{Wardrobes: counts.Wardrobes, Items: counts.Items}, nil
}

