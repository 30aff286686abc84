package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
)

// ProductRepository persists the product aggregate. Sizes and tags are
// stored as JSON-encoded text columns; images live in their own table
// with a cascading foreign key.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, title, slug, price, description, stock, sizes, gender, tags, user_id, created_at, updated_at`

// Create inserts the product row and its images inside one transaction.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.InTx(ctx, func(tx ports.ProductTx) error {
		t := tx.(*productTx)
		sizes, tags, err := marshalLists(p)
		if err != nil {
			return err
		}
		_, err = t.tx.ExecContext(ctx,
			`INSERT INTO products (`+productColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.Slug, p.Price, nullable(p.Description), p.Stock,
			sizes, string(p.Gender), tags, nullable(p.UserID), p.CreatedAt, p.UpdatedAt)
		if err != nil {
			if isDuplicate(err) {
				return &domain.DuplicateError{Detail: err.Error()}
			}
			return fmt.Errorf("insert product: %w", err)
		}
		return tx.InsertImages(ctx, p.ID, domainURLs(p))
	})
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ? LIMIT 1`, id)
	return r.scanWithImages(ctx, row)
}

func (r *ProductRepository) FindBySlugOrTitle(ctx context.Context, criteria string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE LOWER(title) = ? OR LOWER(slug) = ? LIMIT 1`, criteria, criteria)
	return r.scanWithImages(ctx, row)
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY title LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	for _, p := range products {
		if err := r.loadImages(ctx, p); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	// product_images cascade with their products
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	return nil
}

// InTx opens a transaction, runs fn and commits on success. The deferred
// rollback is a no-op after commit; it guarantees the transaction is
// released on every exit path, including panics.
func (r *ProductRepository) InTx(ctx context.Context, fn func(tx ports.ProductTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&productTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// productTx binds the ports.ProductTx operations to one *sql.Tx.
type productTx struct {
	tx *sql.Tx
}

func (t *productTx) DeleteImages(ctx context.Context, productID string) error {
	if _, err := t.tx.ExecContext(ctx,
		`DELETE FROM product_images WHERE product_id = ?`, productID); err != nil {
		return fmt.Errorf("delete images: %w", err)
	}
	return nil
}

func (t *productTx) InsertImages(ctx context.Context, productID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	query := `INSERT INTO product_images (product_id, url) VALUES `
	args := make([]interface{}, 0, len(urls)*2)
	for i, url := range urls {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, productID, url)
	}
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert images: %w", err)
	}
	return nil
}

func (t *productTx) UpdateProduct(ctx context.Context, p *domain.Product) error {
	sizes, tags, err := marshalLists(p)
	if err != nil {
		return err
	}
	res, err := t.tx.ExecContext(ctx,
		`UPDATE products
		 SET title = ?, slug = ?, price = ?, description = ?, stock = ?,
		     sizes = ?, gender = ?, tags = ?, user_id = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Slug, p.Price, nullable(p.Description), p.Stock,
		sizes, string(p.Gender), tags, nullable(p.UserID), p.UpdatedAt, p.ID)
	if err != nil {
		if isDuplicate(err) {
			return &domain.DuplicateError{Detail: err.Error()}
		}
		return fmt.Errorf("update product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// The row vanished between load and update.
		return domain.ErrProductNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p           domain.Product
		description sql.NullString
		userID      sql.NullString
		sizes, tags string
		gender      string
	)
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Price, &description, &p.Stock,
		&sizes, &gender, &tags, &userID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	p.Description = description.String
	p.UserID = userID.String
	p.Gender = domain.Gender(gender)
	if err := json.Unmarshal([]byte(sizes), &p.Sizes); err != nil {
		return nil, fmt.Errorf("unmarshal sizes: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) scanWithImages(ctx context.Context, row *sql.Row) (*domain.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadImages(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) loadImages(ctx context.Context, p *domain.Product) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, url FROM product_images WHERE product_id = ? ORDER BY id`, p.ID)
	if err != nil {
		return fmt.Errorf("load images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.URL); err != nil {
			return fmt.Errorf("scan image: %w", err)
		}
		p.Images = append(p.Images, img)
	}
	return rows.Err()
}

func marshalLists(p *domain.Product) (sizes, tags string, err error) {
	s, err := json.Marshal(emptyIfNil(p.Sizes))
	if err != nil {
		return "", "", fmt.Errorf("marshal sizes: %w", err)
	}
	t, err := json.Marshal(emptyIfNil(p.Tags))
	if err != nil {
		return "", "", fmt.Errorf("marshal tags: %w", err)
	}
	return string(s), string(t), nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func domainURLs(p *domain.Product) []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
