package ports

import (
	"context"

	"github.com/tesloshop/catalog-api/internal/core/domain"
)

// CreateProductInput carries the fields for a new product. Images is the
// flattened URL list; the service materialises the child entities.
type CreateProductInput struct {
	Title       string
	Price       float64
	Description string
	Slug        string
	Stock       int
	Sizes       []string
	Gender      domain.Gender
	Tags        []string
	Images      []string
}

// UpdateProductInput carries a partial update. Nil scalar pointers mean
// "leave unchanged". A nil or empty Images slice means "no change to the
// image set"; a non-empty slice replaces it wholesale.
type UpdateProductInput struct {
	Title       *string
	Price       *float64
	Description *string
	Slug        *string
	Stock       *int
	Sizes       []string
	Gender      *domain.Gender
	Tags        []string
	Images      []string
}

// ProductDetail is the canonical outward representation: scalar fields
// plus flattened image URLs.
type ProductDetail struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Gender      string   `json:"gender"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

// ProductService is the application-facing surface of the catalog core.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput, owner *domain.User) (*ProductDetail, error)
	List(ctx context.Context, limit, offset int) ([]*ProductDetail, error)
	// FindOne resolves criteria as an id when it parses as one, and as a
	// case-insensitive title/slug match otherwise.
	FindOne(ctx context.Context, criteria string) (*ProductDetail, error)
	Update(ctx context.Context, id string, input UpdateProductInput, user *domain.User) (*ProductDetail, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
