package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Gender is the fixed target-audience enumeration for a product.
type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderKid    Gender = "kid"
	GenderUnisex Gender = "unisex"
)

var ErrProductNotFound = errors.New("product not found")
var ErrDuplicateProduct = errors.New("duplicate product")

// NotFoundError names the criteria that failed to resolve so the caller
// can see exactly what was asked for. errors.Is matches ErrProductNotFound.
type NotFoundError struct {
	Criteria string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with criteria '%s' not found", e.Criteria)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrProductNotFound }

// DuplicateError surfaces the underlying unique-constraint detail.
// errors.Is matches ErrDuplicateProduct.
type DuplicateError struct {
	Detail string
}

func (e *DuplicateError) Error() string { return e.Detail }

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicateProduct }

// Image is a child entity owned by a Product. It has no lifecycle of its
// own: it is created with (or staged onto) a product and removed when the
// product is deleted or its image set is replaced.
type Image struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// Product is the aggregate root of the catalog.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Stock       int       `json:"stock"`
	Sizes       []string  `json:"sizes"`
	Gender      Gender    `json:"gender"`
	Tags        []string  `json:"tags"`
	Images      []Image   `json:"images"`
	UserID      string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NormalizeSlug applies the canonical slug format: lowercase, spaces
// become underscores, apostrophes, commas and periods are stripped.
// The transformation is idempotent.
func NormalizeSlug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}

// EnsureSlug derives the slug before an insert: an empty slug falls back
// to the title, then the canonical format is applied.
func (p *Product) EnsureSlug() {
	if p.Slug == "" {
		p.Slug = p.Title
	}
	p.Slug = NormalizeSlug(p.Slug)
}

// ImageURLs returns the flattened image URL list in stored order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

// IsValidGender reports whether g belongs to the closed gender set.
func IsValidGender(g Gender) bool {
	switch g {
	case GenderMen, GenderWomen, GenderKid, GenderUnisex:
		return true
	}
	return false
}
