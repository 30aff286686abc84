package ports

import (
	"context"

	"github.com/tesloshop/catalog-api/internal/core/domain"
)

// ProductTx exposes the write operations available inside one product
// transaction. Implementations bind every call to the same underlying
// transaction handle; the handle is owned by a single InTx invocation and
// is never shared across requests.
type ProductTx interface {
	// DeleteImages removes every image owned by the product id.
	DeleteImages(ctx context.Context, productID string) error
	// InsertImages stages urls as newly created children of the product.
	InsertImages(ctx context.Context, productID string, urls []string) error
	// UpdateProduct persists the product's scalar fields.
	UpdateProduct(ctx context.Context, p *domain.Product) error
}

// ProductRepository defines persistence operations for the product
// aggregate and its owned images.
type ProductRepository interface {
	// Create inserts the product and its images as one atomic unit.
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindBySlugOrTitle performs a case-insensitive equality match
	// against title or slug.
	FindBySlugOrTitle(ctx context.Context, criteria string) (*domain.Product, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// DeleteAll removes every product (images cascade). Seed utility only.
	DeleteAll(ctx context.Context) error
	// InTx runs fn inside a single transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise; either way
	// it is released before InTx returns.
	InTx(ctx context.Context, fn func(tx ProductTx) error) error
}
