package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shri-jewellery/storefront/internal/domain"
)

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestProductRepositoryLoadsInOrder(t *testing.T) {
	path := writeCatalog(t, `[
		{"id":"b","name":"Band","audience":"men","type":"ring","metal":"silver","grams":[5,10],"base_price":600},
		{"id":"a","name":"Chain","audience":"women","type":"chain","metal":"gold","grams":[10],"base_price":20570}
	]`)

	repo, err := NewProductRepository(context.Background(), NewJSONProductSource(path))
	require.NoError(t, err)

	products := repo.List(context.Background())
	require.Len(t, products, 2)
	assert.Equal(t, "b", products[0].ID)
	assert.Equal(t, "a", products[1].ID)

	p, err := repo.GetByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, int64(20570), p.BasePrice)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductRepositoryListIsReadOnly(t *testing.T) {
	path := writeCatalog(t, `[{"id":"a","name":"Ring","grams":[5],"base_price":100}]`)
	repo, err := NewProductRepository(context.Background(), NewJSONProductSource(path))
	require.NoError(t, err)

	first := repo.List(context.Background())
	first[0].Name = "changed"
	first[0].Grams[0] = 99

	again := repo.List(context.Background())
	assert.Equal(t, "Ring", again[0].Name)
	assert.Equal(t, []int{5}, again[0].Grams)
}

func TestProductRepositoryRejectsBadCatalogs(t *testing.T) {
	tests := map[string]string{
		"malformed":     `[{"id":`,
		"empty":         `[]`,
		"missing name":  `[{"id":"a","grams":[5],"base_price":1}]`,
		"no weights":    `[{"id":"a","name":"x","base_price":1}]`,
		"zero price":    `[{"id":"a","name":"x","grams":[5],"base_price":0}]`,
		"negative gram": `[{"id":"a","name":"x","grams":[-1],"base_price":5}]`,
		"duplicate":     `[{"id":"a","name":"x","grams":[5],"base_price":1},{"id":"a","name":"y","grams":[5],"base_price":1}]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewProductRepository(context.Background(), NewJSONProductSource(writeCatalog(t, body)))
			assert.Error(t, err)
		})
	}
}

func TestProductRepositoryMissingFile(t *testing.T) {
	_, err := NewProductRepository(context.Background(), NewJSONProductSource(filepath.Join(t.TempDir(), "nope.json")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBundledCatalogLoads(t *testing.T) {
	repo, err := NewProductRepository(context.Background(), NewJSONProductSource("../../data/products.json"))
	require.NoError(t, err)

	products := repo.List(context.Background())
	assert.NotEmpty(t, products)
	metals := map[string]bool{}
	for _, p := range products {
		metals[p.Metal] = true
	}
	assert.Equal(t, map[string]bool{"gold": true, "silver": true, "diamond": true}, metals)
}

type staticSource []domain.Product

func (s staticSource) Load(context.Context) ([]domain.Product, error) { return s, nil }

func TestProductRepositoryFromCustomSource(t *testing.T) {
	repo, err := NewProductRepository(context.Background(), staticSource{{ID: "x", Name: "X", Grams: []int{1}, BasePrice: 10}})
	require.NoError(t, err)
	assert.Len(t, repo.List(context.Background()), 1)
}

func TestPostgresSourceWithoutPool(t *testing.T) {
	_, err := NewPostgresProductSource(nil).Load(context.Background())
	assert.Error(t, err)
}
