package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

func accessoryEngine(records ...domain.Accessory) *Engine[domain.Accessory] {
	store := &sliceStore[domain.Accessory]{schema: AccessorySchema, records: records}
	return NewEngine(AccessorySchema, store, discardLogger())
}

func TestSearch_SonyHeadphones(t *testing.T) {
	bose := domain.Accessory{ID: "a2", Brand: "Bose", Category: "Headphones", Model: "X2"}
	sony := domain.Accessory{ID: "a1", Brand: "Sony", Category: "Headphones", Model: "X1"}
	// Bose first in scan order so ranking has to move Sony ahead.
	e := accessoryEngine(bose, sony)

	res, err := e.Search(context.Background(), NewQuery("Sony Headphones"))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 1, res.Pages)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "a1", res.Data[0].ID)
	assert.Equal(t, "a2", res.Data[1].ID)
}

func TestSearch_BrandListNoKeywords(t *testing.T) {
	store := &sliceStore[domain.Laptop]{schema: LaptopSchema, records: sampleLaptops()}
	e := NewEngine(LaptopSchema, store, discardLogger())

	res, err := e.Search(context.Background(), NewQuery("").With(ParamBrand, "Dell,HP"))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Total)
	assert.ElementsMatch(t, []string{"l1", "l2", "l3", "l5"}, ids(res.Data, laptopID))
}

func TestSearch_PagePastEnd(t *testing.T) {
	e := accessoryEngine(
		domain.Accessory{ID: "a1", Brand: "Sony"},
		domain.Accessory{ID: "a2", Brand: "Sony"},
		domain.Accessory{ID: "a3", Brand: "Sony"},
	)
	q := NewQuery("")
	q.Page, q.Limit = 2, 5

	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Pages)
	assert.Zero(t, res.Count)
	assert.Empty(t, res.Data)
}

func TestSearch_HugePageIsEmpty(t *testing.T) {
	sonys := []domain.Accessory{{ID: "a1", Brand: "Sony"}, {ID: "a2", Brand: "Sony"}, {ID: "a3", Brand: "Sony"}}
	stores := map[string]Store[domain.Accessory]{
		"find":   &sliceStore[domain.Accessory]{schema: AccessorySchema, records: sonys},
		"window": &windowStore[domain.Accessory]{sliceStore: &sliceStore[domain.Accessory]{schema: AccessorySchema, records: sonys}},
	}

	for name, store := range stores {
		for _, text := range []string{"", "sony"} {
			t.Run(name+"/"+text, func(t *testing.T) {
				e := NewEngine(AccessorySchema, store, discardLogger())
				q := NewQuery(text)
				q.Page, q.Limit = math.MaxInt/5, 10

				res, err := e.Search(context.Background(), q)
				require.NoError(t, err)
				assert.Equal(t, 3, res.Total)
				assert.Equal(t, 1, res.Pages)
				assert.Empty(t, res.Data)
			})
		}
	}
}

func TestSearch_HugeLimit(t *testing.T) {
	e := accessoryEngine(domain.Accessory{ID: "a1", Brand: "Sony"}, domain.Accessory{ID: "a2", Brand: "Bose"})
	q := NewQuery("")
	q.Limit = math.MaxInt

	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 2, res.Count)
}

func TestSearch_PriceRangeOnly(t *testing.T) {
	store := &sliceStore[domain.Laptop]{schema: LaptopSchema, records: sampleLaptops()}
	e := NewEngine(LaptopSchema, store, discardLogger())

	q := NewQuery("").With(ParamMinPrice, "500").With(ParamMaxPrice, "1000")
	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)

	// l2 650, l4 900, l6 1000 (inclusive); scan order kept since all score 0.
	assert.Equal(t, []string{"l2", "l4", "l6"}, ids(res.Data, laptopID))
	assert.Equal(t, 3, res.Total)
}

func TestSearch_PartCaseFolding(t *testing.T) {
	parts := []domain.Part{
		{ID: "p1", Name: "SODIMM", Category: "Memory", Brand: "Kingston", RAM: "4GB"},
		{ID: "p2", Name: "Board", Category: "Motherboard", Brand: "Asus", RAM: "8GB", Processor: "i5"},
	}
	store := &sliceStore[domain.Part]{schema: PartSchema, records: parts}
	e := NewEngine(PartSchema, store, discardLogger())

	res, err := e.Search(context.Background(), NewQuery("8gb ram"))
	require.NoError(t, err)

	require.Equal(t, 1, res.Total)
	assert.Equal(t, "p2", res.Data[0].ID)
	assert.Equal(t, 1, PartSchema.Scorer().Score(res.Data[0], Tokenize("8gb ram")))
}

func TestSearch_InvalidPagination(t *testing.T) {
	e := accessoryEngine()
	for _, q := range []Query{{Page: 0, Limit: 10}, {Page: 1, Limit: 0}, {Page: -2, Limit: 3}} {
		_, err := e.Search(context.Background(), q)
		assert.ErrorIs(t, err, ErrInvalidPagination)
	}
}

func TestSearch_MalformedFilter(t *testing.T) {
	_, err := accessoryEngine().Search(context.Background(), NewQuery("").With(ParamMaxPrice, "abc"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSearch_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	store := &sliceStore[domain.Part]{schema: PartSchema, err: boom}
	e := NewEngine(PartSchema, store, discardLogger())

	_, err := e.Search(context.Background(), NewQuery("i5"))
	assert.ErrorIs(t, err, boom)
}

func TestSearch_PaginationCoverage(t *testing.T) {
	parts := numberedParts(27)
	store := &sliceStore[domain.Part]{schema: PartSchema, records: parts}
	e := NewEngine(PartSchema, store, discardLogger())

	// Every part matches "board"; "16gb" and "i7" spread the scores.
	text := "board 16gb i7"
	ranked := PartSchema.Scorer().ScoreAll(parts, Tokenize(text))
	Rank(ranked)
	want := ids(recordsOf(ranked), partID)

	var got []string
	sizes := []int{}
	for page := 1; page <= 3; page++ {
		q := NewQuery(text)
		q.Page, q.Limit = page, 10
		res, err := e.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, 27, res.Total)
		assert.Equal(t, 3, res.Pages)
		sizes = append(sizes, res.Count)
		got = append(got, ids(res.Data, partID)...)
	}

	assert.Equal(t, []int{10, 10, 7}, sizes)
	assert.Equal(t, want, got)

	q := NewQuery(text)
	q.Page, q.Limit = 4, 10
	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, res.Data)
}

func TestSearch_ZeroScorePartitions(t *testing.T) {
	parts := numberedParts(27)

	check := func(t *testing.T, store Store[domain.Part]) {
		e := NewEngine(PartSchema, store, discardLogger())
		seen := map[string]bool{}
		for page := 1; page <= 3; page++ {
			q := NewQuery("")
			q.Page, q.Limit = page, 10
			res, err := e.Search(context.Background(), q)
			require.NoError(t, err)
			for _, p := range res.Data {
				assert.False(t, seen[p.ID], "duplicate %s", p.ID)
				seen[p.ID] = true
			}
		}
		assert.Len(t, seen, 27)
	}

	t.Run("find", func(t *testing.T) {
		check(t, &sliceStore[domain.Part]{schema: PartSchema, records: parts})
	})
	t.Run("window", func(t *testing.T) {
		ws := &windowStore[domain.Part]{sliceStore: &sliceStore[domain.Part]{schema: PartSchema, records: parts}}
		check(t, ws)
		assert.Equal(t, 3, ws.windows)
		assert.Zero(t, ws.finds)
	})
}

func TestSearch_KeywordsBypassWindow(t *testing.T) {
	ws := &windowStore[domain.Part]{sliceStore: &sliceStore[domain.Part]{schema: PartSchema, records: numberedParts(5)}}
	e := NewEngine(PartSchema, ws, discardLogger())

	_, err := e.Search(context.Background(), NewQuery("asus"))
	require.NoError(t, err)
	assert.Zero(t, ws.windows)
	assert.Equal(t, 1, ws.finds)
}

func TestSearch_Decorator(t *testing.T) {
	store := &sliceStore[domain.Laptop]{schema: LaptopSchema, records: []domain.Laptop{{ID: "l1", ImageURLs: []string{"a.png"}}}}
	e := NewEngine(LaptopSchema, store, discardLogger(), WithDecorator(func(l *domain.Laptop) {
		l.ImageURLs = []string{"https://cdn.example.com/" + l.ImageURLs[0]}
	}))

	res, err := e.Search(context.Background(), NewQuery(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/a.png"}, res.Data[0].ImageURLs)
	assert.Equal(t, []string{"a.png"}, store.records[0].ImageURLs)
}

func TestQueryWith_Copies(t *testing.T) {
	q := NewQuery("x")
	q2 := q.With(ParamBrand, "Dell")
	assert.Empty(t, q.Filters)
	assert.Equal(t, "Dell", q2.Filters[ParamBrand])
}
