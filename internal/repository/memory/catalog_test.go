package memory

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/repository"
	"github.com/Humanoid-1/Web-backend/internal/search"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

var _ repository.LaptopRepository = (*Catalog[domain.Laptop])(nil)

func seedParts(t *testing.T) *Catalog[domain.Part] {
	t.Helper()
	c := NewParts()
	for _, p := range []domain.Part{
		{ID: "p1", Name: "RAM Stick", Category: "Memory", Brand: "Corsair", RAM: "8GB"},
		{ID: "p2", Name: "Board", Category: "Motherboard", Brand: "Asus"},
		{ID: "p3", Name: "SSD", Category: "Storage", Brand: "Samsung"},
	} {
		require.NoError(t, c.Create(context.Background(), &p))
	}
	return c
}

func TestCatalog_CRUD(t *testing.T) {
	ctx := context.Background()
	c := seedParts(t)

	dup := domain.Part{ID: "p1"}
	assert.ErrorIs(t, c.Create(ctx, &dup), apperrors.ErrAlreadyExists)

	got, err := c.GetByID(ctx, "p2")
	require.NoError(t, err)
	got.Brand = "MSI"
	require.NoError(t, c.Update(ctx, got))

	again, err := c.GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "MSI", again.Brand)

	require.NoError(t, c.Delete(ctx, "p1"))
	_, err = c.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, c.Delete(ctx, "p1"), apperrors.ErrNotFound)

	ghost := domain.Part{ID: "zz"}
	assert.ErrorIs(t, c.Update(ctx, &ghost), apperrors.ErrNotFound)
}

func TestCatalog_FindKeepsInsertionOrder(t *testing.T) {
	c := seedParts(t)

	all, err := c.Find(context.Background(), search.Predicate{})
	require.NoError(t, err)
	assert.Equal(t, "p1", all[0].ID)
	assert.Equal(t, "p3", all[2].ID)

	win, err := c.FindWindow(context.Background(), search.Predicate{}, 1, 5)
	require.NoError(t, err)
	require.Len(t, win, 2)
	assert.Equal(t, "p2", win[0].ID)

	win, err = c.FindWindow(context.Background(), search.Predicate{}, 9, 5)
	require.NoError(t, err)
	assert.Empty(t, win)
}

func TestCatalog_Count(t *testing.T) {
	c := seedParts(t)
	p, err := search.PartSchema.Filter().Build(map[string]string{search.ParamCategory: "memory,storage"}, nil)
	require.NoError(t, err)

	n, err := c.Count(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCatalog_FindWindowClamps(t *testing.T) {
	c := seedParts(t)
	ctx := context.Background()

	out, err := c.FindWindow(ctx, search.Predicate{}, math.MaxInt, 10)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = c.FindWindow(ctx, search.Predicate{}, 1, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestCatalog_CanceledContext(t *testing.T) {
	c := seedParts(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Find(ctx, search.Predicate{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalog_Distinct(t *testing.T) {
	c := seedParts(t)

	values, err := c.Distinct(context.Background(), "ram")
	require.NoError(t, err)
	assert.Equal(t, []string{"8GB"}, values)

	values, err = c.Distinct(context.Background(), "brand")
	require.NoError(t, err)
	assert.Equal(t, []string{"Asus", "Corsair", "Samsung"}, values)

	_, err = c.Distinct(context.Background(), "price")
	assert.Error(t, err)
}
