package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/search"
	"github.com/Humanoid-1/Web-backend/pkg/database"
)

var partColumns = []string{
	"id", "name", "category", "brand", "ram", "processor", "price", "stock", "created_at", "updated_at",
}

// NewPartStore creates the parts repository.
func NewPartStore(db database.DBTX) *CatalogStore[domain.Part] {
	return &CatalogStore[domain.Part]{db: db, t: table[domain.Part]{
		entity:  domain.EntityPart,
		name:    "parts",
		columns: partColumns,
		kinds:   columnKinds(search.PartSchema.Fields()),
		scan: func(row pgx.Row) (domain.Part, error) {
			var p domain.Part
			err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.RAM, &p.Processor, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
			return p, err
		},
		values: func(p *domain.Part) []any {
			return []any{p.ID, p.Name, p.Category, p.Brand, p.RAM, p.Processor, p.Price, p.Stock, p.CreatedAt, p.UpdatedAt}
		},
		id: func(p *domain.Part) string { return p.ID },
	}}
}
