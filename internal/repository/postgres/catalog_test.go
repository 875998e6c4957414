package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/search"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

const partSelect = "SELECT id, name, category, brand, ram, processor, price, stock, created_at, updated_at FROM parts"

func samplePart() domain.Part {
	return domain.Part{
		ID: "p1", Name: "B450 Board", Category: "Motherboard", Brand: "Asus",
		RAM: "8GB", Processor: "i5", Price: 199, Stock: 3, CreatedAt: now, UpdatedAt: now,
	}
}

func partRow(p domain.Part) []any {
	return []any{p.ID, p.Name, p.Category, p.Brand, p.RAM, p.Processor, p.Price, p.Stock, p.CreatedAt, p.UpdatedAt}
}

func TestCatalogStore_Find(t *testing.T) {
	mock := newMock(t)
	store := NewPartStore(mock)

	p, err := search.PartSchema.Filter().Build(map[string]string{search.ParamBrand: "Asus"}, nil)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(partSelect + " WHERE lower(brand) = ANY($1) ORDER BY created_at, id")).
		WithArgs([]string{"asus"}).
		WillReturnRows(pgxmock.NewRows(partColumns).AddRow(partRow(samplePart())...))

	parts, err := store.Find(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, samplePart(), parts[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_FindEmptyIsNonNil(t *testing.T) {
	mock := newMock(t)
	store := NewPartStore(mock)

	mock.ExpectQuery(regexp.QuoteMeta(partSelect + " ORDER BY created_at, id")).
		WillReturnRows(pgxmock.NewRows(partColumns))

	parts, err := store.Find(context.Background(), search.Predicate{})
	require.NoError(t, err)
	assert.NotNil(t, parts)
	assert.Empty(t, parts)
}

func TestCatalogStore_FindWindow(t *testing.T) {
	mock := newMock(t)
	store := NewPartStore(mock)

	p, err := search.PartSchema.Filter().Build(map[string]string{search.ParamMinPrice: "100"}, nil)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(partSelect + " WHERE price >= $1 ORDER BY created_at, id LIMIT $2 OFFSET $3")).
		WithArgs(100.0, 10, 20).
		WillReturnRows(pgxmock.NewRows(partColumns).AddRow(partRow(samplePart())...))

	parts, err := store.FindWindow(context.Background(), p, 20, 10)
	require.NoError(t, err)
	assert.Len(t, parts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_Count(t *testing.T) {
	mock := newMock(t)
	store := NewLaptopStore(mock)

	p, err := search.LaptopSchema.Filter().Build(nil, []string{"i7"})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM laptops WHERE (brand ILIKE ANY($1) OR model ILIKE ANY($1) OR description ILIKE ANY($1) OR cpu ILIKE ANY($1) OR ram ILIKE ANY($1))")).
		WithArgs([]string{"%i7%"}).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	n, err := store.Count(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_QueryErrorWrapped(t *testing.T) {
	mock := newMock(t)
	store := NewPartStore(mock)

	mock.ExpectQuery("SELECT count").WillReturnError(assert.AnError)

	_, err := store.Count(context.Background(), search.Predicate{})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCatalogStore_Create(t *testing.T) {
	mock := newMock(t)
	store := NewPartStore(mock)
	part := samplePart()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO parts (id, name, category, brand, ram, processor, price, stock, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)")).
		WithArgs(partRow(part)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Create(context.Background(), &part))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_CreateDuplicate(t *testing.T) {
	mock := newMock(t)
	store := NewPartStore(mock)
	part := samplePart()

	mock.ExpectExec("INSERT INTO parts").WillReturnError(&pgconn.PgError{Code: "23505"})

	err := store.Create(context.Background(), &part)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestCatalogStore_CreateLaptopNilSlices(t *testing.T) {
	mock := newMock(t)
	store := NewLaptopStore(mock)
	l := domain.Laptop{ID: "l1", Brand: "Dell", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec("INSERT INTO laptops").
		WithArgs("l1", "Dell", "", "", "", "", "", "", "", "", []string{}, 0.0, 0.0, "", "", []string{}, now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Create(context.Background(), &l))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_GetByID(t *testing.T) {
	mock := newMock(t)
	store := NewPartStore(mock)

	mock.ExpectQuery(regexp.QuoteMeta(partSelect + " WHERE id = $1")).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows(partColumns).AddRow(partRow(samplePart())...))

	got, err := store.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "B450 Board", got.Name)
}

func TestCatalogStore_GetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	store := NewPartStore(mock)

	mock.ExpectQuery("FROM parts WHERE id").WithArgs("nope").WillReturnError(pgx.ErrNoRows)

	_, err := store.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogStore_Update(t *testing.T) {
	mock := newMock(t)
	store := NewPartStore(mock)
	part := samplePart()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE parts SET name = $2, category = $3, brand = $4, ram = $5, processor = $6, price = $7, stock = $8, updated_at = $9 WHERE id = $1")).
		WithArgs(part.ID, part.Name, part.Category, part.Brand, part.RAM, part.Processor, part.Price, part.Stock, part.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, store.Update(context.Background(), &part))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_UpdateMissing(t *testing.T) {
	mock := newMock(t)
	store := NewPartStore(mock)
	part := samplePart()

	mock.ExpectExec("UPDATE parts").WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, store.Update(context.Background(), &part), apperrors.ErrNotFound)
}

func TestCatalogStore_Delete(t *testing.T) {
	mock := newMock(t)
	store := NewAccessoryStore(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accessories WHERE id = $1")).
		WithArgs("a1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM accessories").
		WithArgs("a2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, store.Delete(context.Background(), "a1"))
	assert.ErrorIs(t, store.Delete(context.Background(), "a2"), apperrors.ErrNotFound)
}

func TestCatalogStore_Distinct(t *testing.T) {
	mock := newMock(t)
	store := NewLaptopStore(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT cpu FROM laptops WHERE cpu <> '' ORDER BY cpu")).
		WillReturnRows(pgxmock.NewRows([]string{"cpu"}).AddRow("i5").AddRow("i7"))

	values, err := store.Distinct(context.Background(), "cpu")
	require.NoError(t, err)
	assert.Equal(t, []string{"i5", "i7"}, values)
}

func TestCatalogStore_DistinctRejectsNonText(t *testing.T) {
	store := NewLaptopStore(newMock(t))

	_, err := store.Distinct(context.Background(), "price")
	assert.Error(t, err)

	_, err = store.Distinct(context.Background(), "id; --")
	assert.Error(t, err)
}
