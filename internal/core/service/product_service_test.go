package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
)

// stubProductRepo stores products in memory and mirrors the real
// repository's transaction contract: tx writes are staged and only
// applied when the InTx callback returns nil.
type stubProductRepo struct {
	products map[string]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: map[string]*domain.Product{}}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	for _, existing := range r.products {
		if existing.Title == p.Title || existing.Slug == p.Slug {
			return &domain.DuplicateError{Detail: "duplicate entry '" + p.Title + "'"}
		}
	}
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) FindBySlugOrTitle(_ context.Context, criteria string) (*domain.Product, error) {
	for _, p := range r.products {
		if strings.EqualFold(p.Slug, criteria) || strings.EqualFold(p.Title, criteria) {
			return cloneProduct(p), nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) List(_ context.Context, limit, offset int) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, cloneProduct(p))
	}
	_ = limit
	_ = offset
	return out, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) DeleteAll(context.Context) error {
	r.products = map[string]*domain.Product{}
	return nil
}

func (r *stubProductRepo) InTx(_ context.Context, fn func(tx ports.ProductTx) error) error {
	tx := &stubProductTx{repo: r, staged: map[string]*domain.Product{}}
	if err := fn(tx); err != nil {
		return err
	}
	for id, p := range tx.staged {
		r.products[id] = p
	}
	return nil
}

// stubProductTx stages mutations on copies; nothing touches the repo
// until the enclosing InTx commits.
type stubProductTx struct {
	repo         *stubProductRepo
	staged       map[string]*domain.Product
	updateErr    error
	deletedCalls int
}

func (t *stubProductTx) working(id string) (*domain.Product, bool) {
	if p, ok := t.staged[id]; ok {
		return p, true
	}
	p, ok := t.repo.products[id]
	if !ok {
		return nil, false
	}
	cp := cloneProduct(p)
	t.staged[id] = cp
	return cp, true
}

func (t *stubProductTx) DeleteImages(_ context.Context, productID string) error {
	t.deletedCalls++
	p, ok := t.working(productID)
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Images = nil
	return nil
}

func (t *stubProductTx) InsertImages(_ context.Context, productID string, urls []string) error {
	p, ok := t.working(productID)
	if !ok {
		return domain.ErrProductNotFound
	}
	for _, url := range urls {
		p.Images = append(p.Images, domain.Image{URL: url})
	}
	return nil
}

func (t *stubProductTx) UpdateProduct(_ context.Context, updated *domain.Product) error {
	if t.updateErr != nil {
		return t.updateErr
	}
	p, ok := t.working(updated.ID)
	if !ok {
		return domain.ErrProductNotFound
	}
	images := p.Images
	*p = *updated
	p.Images = images
	return nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	cp := *p
	cp.Sizes = append([]string(nil), p.Sizes...)
	cp.Tags = append([]string(nil), p.Tags...)
	cp.Images = append([]domain.Image(nil), p.Images...)
	return &cp
}

func newProductService(repo *stubProductRepo) *ProductService {
	return NewProductService(repo, nil, zerolog.Nop())
}

func seedProduct(t *testing.T, svc *ProductService, title string, images ...string) *ports.ProductDetail {
	t.Helper()
	detail, err := svc.Create(context.Background(), ports.CreateProductInput{
		Title:  title,
		Price:  49.99,
		Stock:  5,
		Sizes:  []string{"S", "M"},
		Gender: domain.GenderMen,
		Images: images,
	}, &domain.User{ID: "owner-1"})
	if err != nil {
		t.Fatalf("seed product %q: %v", title, err)
	}
	return detail
}

func TestProductService_CreateNormalizesSlug(t *testing.T) {
	svc := newProductService(newStubProductRepo())

	detail, err := svc.Create(context.Background(), ports.CreateProductInput{
		Title:  "Men's Chill Crew Neck",
		Price:  75,
		Sizes:  []string{"M"},
		Gender: domain.GenderMen,
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if detail.Slug != "mens_chill_crew_neck" {
		t.Fatalf("slug = %q, want %q", detail.Slug, "mens_chill_crew_neck")
	}
}

func TestProductService_FindOneByIDAndBySlug(t *testing.T) {
	svc := newProductService(newStubProductRepo())
	created := seedProduct(t, svc, "Cybertruck Hoodie", "1.jpg")

	byID, err := svc.FindOne(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindOne by id: %v", err)
	}
	if byID.Title != "Cybertruck Hoodie" {
		t.Fatalf("title = %q", byID.Title)
	}

	// The slug lookup is case-insensitive.
	bySlug, err := svc.FindOne(context.Background(), "CYBERTRUCK_HOODIE")
	if err != nil {
		t.Fatalf("FindOne by slug: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Fatalf("resolved id = %q, want %q", bySlug.ID, created.ID)
	}

	byTitle, err := svc.FindOne(context.Background(), "cybertruck hoodie")
	if err != nil {
		t.Fatalf("FindOne by title: %v", err)
	}
	if byTitle.ID != created.ID {
		t.Fatalf("resolved id = %q, want %q", byTitle.ID, created.ID)
	}
}

func TestProductService_FindOneNamesCriteria(t *testing.T) {
	svc := newProductService(newStubProductRepo())

	_, err := svc.FindOne(context.Background(), "no_such_slug")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("err = %v, want product not found", err)
	}
	if !strings.Contains(err.Error(), "no_such_slug") {
		t.Fatalf("error %q does not name the criteria", err.Error())
	}
}

func TestProductService_UpdateReplacesImages(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo)
	created := seedProduct(t, svc, "Solar Roof Tee", "old-1.jpg", "old-2.jpg")

	detail, err := svc.Update(context.Background(), created.ID, ports.UpdateProductInput{
		Images: []string{"new-1.jpg"},
	}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(detail.Images) != 1 || detail.Images[0] != "new-1.jpg" {
		t.Fatalf("images = %v, want [new-1.jpg]", detail.Images)
	}
}

func TestProductService_UpdateWithoutImagesLeavesThem(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo)
	created := seedProduct(t, svc, "Plaid Mode Cap", "a.jpg", "b.jpg")

	price := 19.5
	for _, images := range [][]string{nil, {}} {
		detail, err := svc.Update(context.Background(), created.ID, ports.UpdateProductInput{
			Price:  &price,
			Images: images,
		}, nil)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if detail.Price != price {
			t.Fatalf("price = %v, want %v", detail.Price, price)
		}
		if len(detail.Images) != 2 {
			t.Fatalf("images = %v, want the original pair", detail.Images)
		}
	}
}

func TestProductService_UpdateRollsBackImagesOnFailure(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo)
	created := seedProduct(t, svc, "Raven Jacket", "keep-1.jpg", "keep-2.jpg")

	// Force the scalar update to fail after the image swap has been
	// staged; the whole transaction must be discarded.
	failing := &failingUpdateRepo{stubProductRepo: repo, err: &domain.DuplicateError{Detail: "duplicate entry 'raven_jacket'"}}
	failingSvc := NewProductService(failing, nil, zerolog.Nop())

	_, err := failingSvc.Update(context.Background(), created.ID, ports.UpdateProductInput{
		Images: []string{"lost.jpg"},
	}, nil)
	if !errors.Is(err, domain.ErrDuplicateProduct) {
		t.Fatalf("err = %v, want duplicate product", err)
	}

	stored, findErr := svc.FindOne(context.Background(), created.ID)
	if findErr != nil {
		t.Fatalf("FindOne after rollback: %v", findErr)
	}
	if len(stored.Images) != 2 || stored.Images[0] != "keep-1.jpg" {
		t.Fatalf("images = %v, want the originals intact", stored.Images)
	}
}

// failingUpdateRepo injects an UpdateProduct failure into the staged
// transaction while delegating everything else to the embedded repo.
type failingUpdateRepo struct {
	*stubProductRepo
	err error
}

func (r *failingUpdateRepo) InTx(_ context.Context, fn func(tx ports.ProductTx) error) error {
	tx := &stubProductTx{repo: r.stubProductRepo, staged: map[string]*domain.Product{}, updateErr: r.err}
	if err := fn(tx); err != nil {
		return err
	}
	for id, p := range tx.staged {
		r.products[id] = p
	}
	return nil
}

func TestProductService_UpdateMergesScalarsAndRederivesSlug(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo)
	created := seedProduct(t, svc, "Kids Cyberquad", "q.jpg")

	title := "Kids Cyberquad Bundle"
	stock := 42
	detail, err := svc.Update(context.Background(), created.ID, ports.UpdateProductInput{
		Title: &title,
		Stock: &stock,
	}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if detail.Title != title {
		t.Fatalf("title = %q", detail.Title)
	}
	if detail.Slug != "kids_cyberquad_bundle" {
		t.Fatalf("slug = %q, want re-derived from the new title", detail.Slug)
	}
	if detail.Stock != stock {
		t.Fatalf("stock = %d, want %d", detail.Stock, stock)
	}
	// Untouched scalars survive the merge.
	if detail.Price != created.Price {
		t.Fatalf("price = %v, want %v", detail.Price, created.Price)
	}
	if len(detail.Images) != 1 {
		t.Fatalf("images = %v, want untouched", detail.Images)
	}
}

func TestProductService_UpdateKeepsExplicitSlug(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo)
	created := seedProduct(t, svc, "Logo Tee")

	title := "Logo Tee V2"
	slug := "Custom Slug"
	detail, err := svc.Update(context.Background(), created.ID, ports.UpdateProductInput{
		Title: &title,
		Slug:  &slug,
	}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if detail.Slug != "custom_slug" {
		t.Fatalf("slug = %q, want the supplied slug normalized", detail.Slug)
	}
}

func TestProductService_UpdateMissingProduct(t *testing.T) {
	svc := newProductService(newStubProductRepo())

	price := 10.0
	_, err := svc.Update(context.Background(), "2f6a1f5e-6f6a-4a5e-9f0c-0d8a8e2f1b11", ports.UpdateProductInput{Price: &price}, nil)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("err = %v, want product not found", err)
	}
}

func TestProductService_DeleteBySlug(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo)
	seedProduct(t, svc, "Short Sleeve Tee")

	if err := svc.Delete(context.Background(), "short_sleeve_tee"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.FindOne(context.Background(), "short_sleeve_tee"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("err = %v, want product not found after delete", err)
	}
}

func TestProductService_ListClampsLimit(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo)
	seedProduct(t, svc, "Thermal Cybertruck Mug")

	details, err := svc.List(context.Background(), -5, -1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("len = %d, want 1", len(details))
	}
}
