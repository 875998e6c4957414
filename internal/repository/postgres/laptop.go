package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/search"
	"github.com/Humanoid-1/Web-backend/pkg/database"
)

var laptopColumns = []string{
	"id", "brand", "model", "category", "cpu", "ram", "storage", "connectivity",
	"availability", "currency", "features", "price", "ratings", "warranty",
	"description", "image_urls", "created_at", "updated_at",
}

// NewLaptopStore creates the laptops repository.
func NewLaptopStore(db database.DBTX) *CatalogStore[domain.Laptop] {
	return &CatalogStore[domain.Laptop]{db: db, t: table[domain.Laptop]{
		entity:  domain.EntityLaptop,
		name:    "laptops",
		columns: laptopColumns,
		kinds:   columnKinds(search.LaptopSchema.Fields()),
		scan: func(row pgx.Row) (domain.Laptop, error) {
			var l domain.Laptop
			err := row.Scan(
				&l.ID, &l.Brand, &l.Model, &l.Category, &l.CPU, &l.RAM, &l.Storage, &l.Connectivity,
				&l.Availability, &l.Currency, &l.Features, &l.Price, &l.Ratings, &l.Warranty,
				&l.Description, &l.ImageURLs, &l.CreatedAt, &l.UpdatedAt,
			)
			return l, err
		},
		values: func(l *domain.Laptop) []any {
			return []any{
				l.ID, l.Brand, l.Model, l.Category, l.CPU, l.RAM, l.Storage, l.Connectivity,
				l.Availability, l.Currency, nonNil(l.Features), l.Price, l.Ratings, l.Warranty,
				l.Description, nonNil(l.ImageURLs), l.CreatedAt, l.UpdatedAt,
			}
		},
		id: func(l *domain.Laptop) string { return l.ID },
	}}
}
