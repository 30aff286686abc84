package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// ProductService implements the catalog operations, including the
// transactional image-replacement protocol on update.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.ProductCache // optional, may be nil
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.ProductCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

// Create inserts a new product owned by the caller. The slug is derived
// from the title when absent and normalized either way. Images are
// created with the product as one atomic unit.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput, owner *domain.User) (*ports.ProductDetail, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Slug:        input.Slug,
		Price:       input.Price,
		Description: input.Description,
		Stock:       input.Stock,
		Sizes:       input.Sizes,
		Gender:      input.Gender,
		Tags:        input.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if owner != nil {
		product.UserID = owner.ID
	}
	product.EnsureSlug()

	for _, url := range input.Images {
		product.Images = append(product.Images, domain.Image{URL: url})
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("slug", product.Slug).Msg("product created")
	return toDetail(product), nil
}

// List returns a page of products with flattened image URLs.
func (s *ProductService) List(ctx context.Context, limit, offset int) ([]*ports.ProductDetail, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	details := make([]*ports.ProductDetail, 0, len(products))
	for _, p := range products {
		details = append(details, toDetail(p))
	}
	return details, nil
}

// FindOne resolves criteria as an id when it parses as a UUID, and as a
// case-insensitive title/slug match otherwise. The result is served from
// the read cache when present.
func (s *ProductService) FindOne(ctx context.Context, criteria string) (*ports.ProductDetail, error) {
	if s.cache != nil {
		if detail, ok := s.cache.Get(ctx, criteria); ok {
			return detail, nil
		}
	}

	product, err := s.findOne(ctx, criteria)
	if err != nil {
		return nil, err
	}

	detail := toDetail(product)
	if s.cache != nil {
		s.cache.Set(ctx, detail)
	}
	return detail, nil
}

func (s *ProductService) findOne(ctx context.Context, criteria string) (*domain.Product, error) {
	var (
		product *domain.Product
		err     error
	)
	if _, uuidErr := uuid.Parse(criteria); uuidErr == nil {
		product, err = s.repo.FindByID(ctx, criteria)
	} else {
		product, err = s.repo.FindBySlugOrTitle(ctx, strings.ToLower(criteria))
	}
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, notFound(criteria)
		}
		return nil, err
	}
	return product, nil
}

// Update merges the supplied scalar changes into the stored product and,
// when a non-empty image list is supplied, replaces the whole image set.
// Delete-then-insert-then-persist runs inside one transaction; any
// failure rolls the whole unit back, so a half-updated product is never
// observable. A nil or empty image list leaves the existing images
// untouched.
func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput, user *domain.User) (*ports.ProductDetail, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}

	merged := mergeProduct(existing, input, user)

	err = s.repo.InTx(ctx, func(tx ports.ProductTx) error {
		if len(input.Images) > 0 {
			if err := tx.DeleteImages(ctx, id); err != nil {
				return err
			}
			if err := tx.InsertImages(ctx, id, input.Images); err != nil {
				return err
			}
		}
		return tx.UpdateProduct(ctx, merged)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("product update failed")
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id, existing.Slug, existing.Title, merged.Slug, merged.Title)
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")

	// Re-fetch so the response reflects exactly the committed state.
	product, err := s.findOne(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDetail(product), nil
}

// Delete removes a product by id or slug/title; images cascade with it.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.findOne(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, product.ID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, product.ID, product.Slug, product.Title)
	}
	s.logger.Info().Str("product_id", product.ID).Msg("product deleted")
	return nil
}

// DeleteAll wipes the catalog. Seed utility only.
func (s *ProductService) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func mergeProduct(existing *domain.Product, input ports.UpdateProductInput, user *domain.User) *domain.Product {
	merged := *existing
	slugTouched := false

	if input.Title != nil {
		merged.Title = *input.Title
		// A new title re-derives the slug unless one was supplied too.
		if input.Slug == nil {
			merged.Slug = *input.Title
			slugTouched = true
		}
	}
	if input.Slug != nil {
		merged.Slug = *input.Slug
		slugTouched = true
	}
	if input.Price != nil {
		merged.Price = *input.Price
	}
	if input.Description != nil {
		merged.Description = *input.Description
	}
	if input.Stock != nil {
		merged.Stock = *input.Stock
	}
	if input.Sizes != nil {
		merged.Sizes = input.Sizes
	}
	if input.Gender != nil {
		merged.Gender = *input.Gender
	}
	if input.Tags != nil {
		merged.Tags = input.Tags
	}
	if slugTouched {
		merged.Slug = domain.NormalizeSlug(merged.Slug)
	}
	if user != nil {
		merged.UserID = user.ID
	}
	merged.UpdatedAt = time.Now().UTC()
	return &merged
}

func notFound(criteria string) error {
	return &domain.NotFoundError{Criteria: criteria}
}

func toDetail(p *domain.Product) *ports.ProductDetail {
	return &ports.ProductDetail{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Price:       p.Price,
		Description: p.Description,
		Stock:       p.Stock,
		Sizes:       p.Sizes,
		Gender:      string(p.Gender),
		Tags:        p.Tags,
		Images:      p.ImageURLs(),
	}
}
