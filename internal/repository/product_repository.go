package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shri-jewellery/storefront/internal/domain"
)

// ProductSource loads the raw catalog dataset.
type ProductSource interface {
	Load(ctx context.Context) ([]domain.Product, error)
}

// ProductRepository is a read-only view over the loaded catalog.
type ProductRepository interface {
	List(ctx context.Context) []domain.Product
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type productRepository struct {
	products []domain.Product
	byID     map[string]int
}

// NewProductRepository loads and validates the whole catalog once. Any error means
// the catalog must not be served.
func NewProductRepository(ctx context.Context, source ProductSource) (ProductRepository, error) {
	products, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, errors.New("load catalog: dataset is empty")
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("load catalog: product %d: %w", i, err)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("load catalog: duplicate product id %q", p.ID)
		}
		byID[p.ID] = i
	}
	return &productRepository{products: products, byID: byID}, nil
}

func validateProduct(p domain.Product) error {
	switch {
	case p.ID == "":
		return errors.New("missing id")
	case p.Name == "":
		return fmt.Errorf("%s: missing name", p.ID)
	case len(p.Grams) == 0:
		return fmt.Errorf("%s: no weights", p.ID)
	case p.BasePrice <= 0:
		return fmt.Errorf("%s: base price must be positive", p.ID)
	}
	for _, g := range p.Grams {
		if g <= 0 {
			return fmt.Errorf("%s: invalid weight %d", p.ID, g)
		}
	}
	return nil
}

func (r *productRepository) List(_ context.Context) []domain.Product {
	out := make([]domain.Product, len(r.products))
	for i, p := range r.products {
		p.Grams = append([]int(nil), p.Grams...)
		out[i] = p
	}
	return out
}

func (r *productRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := r.products[idx]
	p.Grams = append([]int(nil), p.Grams...)
	return &p, nil
}

type jsonProductSource struct {
	path string
}

// NewJSONProductSource reads the catalog from a JSON array file.
func NewJSONProductSource(path string) ProductSource {
	return &jsonProductSource{path: path}
}

func (s *jsonProductSource) Load(_ context.Context) ([]domain.Product, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return products, nil
}

type postgresProductSource struct {
	pool *pgxpool.Pool
}

// NewPostgresProductSource reads the catalog from the products table.
func NewPostgresProductSource(pool *pgxpool.Pool) ProductSource {
	return &postgresProductSource{pool: pool}
}

func (s *postgresProductSource) Load(ctx context.Context) ([]domain.Product, error) {
	if s.pool == nil {
		return nil, errors.New("postgres pool not configured")
	}
	const query = `
        SELECT id, name, audience, type, metal, grams, base_price, image
        FROM products ORDER BY position`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			p     domain.Product
			grams []int32
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Audience, &p.Type, &p.Metal, &grams, &p.BasePrice, &p.Image); err != nil {
			return nil, err
		}
		p.Grams = make([]int, len(grams))
		for i, g := range grams {
			p.Grams[i] = int(g)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
