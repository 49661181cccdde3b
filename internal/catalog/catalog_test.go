package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolfootwear/storefront/internal/entity"
)

type fakeSource struct {
	products []entity.Product
	calls    int
	err      error
}

func (f *fakeSource) FindAll(context.Context) ([]entity.Product, error) {
	f.calls++
	return f.products, f.err
}

func (f *fakeSource) FindByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func product(id, category, brand, size string, price int64) entity.Product {
	return entity.Product{
		ID:       id,
		Title:    "Shoe " + id,
		Category: category,
		Brand:    brand,
		Size:     size,
		Price:    decimal.NewFromInt(price),
	}
}

func ids(products []entity.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func sampleCatalog() []entity.Product {
	return []entity.Product{
		product("1", "Male", "Nike", "8", 3000),
		product("2", "Female", "Puma", "6", 1500),
		product("3", "Male", "Puma", "9", 900),
		product("4", "Kid", "Nike", "3", 1500),
		product("5", "Male", "Nike", "9", 4500),
	}
}

func TestFilters_ExactMatchAndWildcard(t *testing.T) {
	products := sampleCatalog()

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(Filters{}.Apply(products)))
	assert.Equal(t, []string{"1", "3", "5"}, ids(Filters{Category: "Male"}.Apply(products)))
	assert.Equal(t, []string{"1", "5"}, ids(Filters{Category: "Male", Brand: "Nike"}.Apply(products)))
	assert.Equal(t, []string{"3", "5"}, ids(Filters{Size: "9"}.Apply(products)))
	assert.Empty(t, Filters{Category: "male"}.Apply(products))
}

func TestFilters_Sort(t *testing.T) {
	products := sampleCatalog()

	assert.Equal(t, []string{"3", "2", "4", "1", "5"}, ids(Filters{Sort: SortLowToHigh}.Apply(products)))
	assert.Equal(t, []string{"5", "1", "2", "4", "3"}, ids(Filters{Sort: SortHighToLow}.Apply(products)))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(Filters{Sort: "featured"}.Apply(products)))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(products), "input untouched")
}

func TestSearch(t *testing.T) {
	products := sampleCatalog()

	assert.Equal(t, []string{"1", "4", "5"}, ids(Search(products, "nIKe")))
	assert.Equal(t, []string{"2", "4"}, ids(Search(products, "1500")))
	assert.Len(t, Search(products, ""), 5)
	assert.Empty(t, Search(products, "adidas"))
}

func TestCache_FetchesOnceUntilInvalidated(t *testing.T) {
	src := &fakeSource{products: sampleCatalog()}
	cache := NewCache(src)
	ctx := context.Background()

	_, err := cache.Products(ctx)
	require.NoError(t, err)
	_, err = cache.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	cache.Invalidate()
	_, err = cache.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestCache_DoesNotCacheFailures(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	cache := NewCache(src)

	_, err := cache.Products(context.Background())
	require.Error(t, err)

	src.err = nil
	src.products = sampleCatalog()
	products, err := cache.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 5)
}

func TestCache_Product(t *testing.T) {
	cache := NewCache(&fakeSource{products: sampleCatalog()})

	p, err := cache.Product(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Puma", p.Brand)

	_, err = cache.Product(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCache_BrowsePaginatesFilteredList(t *testing.T) {
	var products []entity.Product
	for i := 0; i < 30; i++ {
		category := "Male"
		if i >= 25 {
			category = "Female"
		}
		products = append(products, product(fmt.Sprint(i), category, "Nike", "8", int64(100+i)))
	}
	cache := NewCache(&fakeSource{products: products})
	ctx := context.Background()

	page, err := cache.Browse(ctx, Filters{Category: "Male"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 12)
	assert.Equal(t, [2]int{1, 3}, page.PageRange)

	page, err = cache.Browse(ctx, Filters{Category: "Male"}, 3)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "24", page.Items[0].ID)

	page, err = cache.Browse(ctx, Filters{Category: "Male"}, 9)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
}

func TestCache_BrowseEmpty(t *testing.T) {
	cache := NewCache(&fakeSource{})

	page, err := cache.Browse(context.Background(), Filters{}, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.TotalPages)
}

func TestRemoteSource_DecodesBothShapes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wrapped", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"allProducts":[{"id":"a","title":"A","price":"10"}]}`)
	})
	mux.HandleFunc("GET /list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"b","title":"B","price":20},{"id":"c","title":"C","price":"30"}]`)
	})
	mux.HandleFunc("GET /list/b", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"b","title":"B","price":20}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	ctx := context.Background()

	wrapped, err := NewRemoteSource(srv.URL+"/wrapped", srv.Client()).FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(wrapped))

	list := NewRemoteSource(srv.URL+"/list/", srv.Client())
	products, err := list.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(products))
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(20)))

	one, err := list.FindByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "B", one.Title)

	missing, err := list.FindByID(ctx, "zzz")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRemoteSource_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewRemoteSource(srv.URL, srv.Client()).FindAll(context.Background())
	assert.Error(t, err)
}

func TestRemoteSource_NumericIDs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"allProducts":[{"id":1,"title":"Shoe","price":499},{"id":"2","title":"Boot","price":899}]}`)
	})
	mux.HandleFunc("GET /products/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":1,"title":"Shoe","price":499}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	ctx := context.Background()

	source := NewRemoteSource(srv.URL+"/products", srv.Client())
	products, err := source.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(products))
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(499)))

	cache := NewCache(source)
	one, err := cache.Product(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Shoe", one.Title)

	direct, err := source.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", direct.ID)
}

func TestPrepareProduct(t *testing.T) {
	p := entity.Product{
		Title: " Suede Classic ", Description: "Low top", ImageURL: "https://img/1.png",
		Category: "Female", Brand: "pUMA", Color: "Red", Size: "7",
		Price: decimal.NewFromInt(2799), MRP: decimal.NewFromInt(3999),
	}

	got, err := PrepareProduct(p)
	require.NoError(t, err)
	assert.Equal(t, "Puma", got.Brand)
	assert.Equal(t, "Suede Classic", got.Title)

	p.Color = "  "
	_, err = PrepareProduct(p)
	assert.ErrorIs(t, err, ErrFieldsRequired)
}

func TestSeedProducts_SpanMoreThanOnePage(t *testing.T) {
	seed := SeedProducts()
	assert.Greater(t, len(seed), 12)

	ids := map[string]bool{}
	for _, p := range seed {
		assert.False(t, ids[p.ID], "duplicate id %s", p.ID)
		ids[p.ID] = true
	}
}
