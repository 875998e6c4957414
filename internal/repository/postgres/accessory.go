package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/search"
	"github.com/Humanoid-1/Web-backend/pkg/database"
)

var accessoryColumns = []string{
	"id", "name", "brand", "category", "type", "model", "features", "price",
	"description", "in_stock", "image_urls", "created_at", "updated_at",
}

// NewAccessoryStore creates the accessories repository.
func NewAccessoryStore(db database.DBTX) *CatalogStore[domain.Accessory] {
	return &CatalogStore[domain.Accessory]{db: db, t: table[domain.Accessory]{
		entity:  domain.EntityAccessory,
		name:    "accessories",
		columns: accessoryColumns,
		kinds:   columnKinds(search.AccessorySchema.Fields()),
		scan: func(row pgx.Row) (domain.Accessory, error) {
			var a domain.Accessory
			err := row.Scan(
				&a.ID, &a.Name, &a.Brand, &a.Category, &a.Type, &a.Model, &a.Features, &a.Price,
				&a.Description, &a.InStock, &a.ImageURLs, &a.CreatedAt, &a.UpdatedAt,
			)
			return a, err
		},
		values: func(a *domain.Accessory) []any {
			return []any{
				a.ID, a.Name, a.Brand, a.Category, a.Type, a.Model, nonNil(a.Features), a.Price,
				a.Description, a.InStock, nonNil(a.ImageURLs), a.CreatedAt, a.UpdatedAt,
			}
		},
		id: func(a *domain.Accessory) string { return a.ID },
	}}
}
