package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/tesloshop/catalog-api/internal/core/domain"
)

const erDupEntry = 1062

// UserRepository persists users in the users table. Role sets are stored
// as a JSON-encoded text column.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	roles, err := json.Marshal(user.Roles)
	if err != nil {
		return nil, fmt.Errorf("marshal roles: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, full_name, password_hash, is_active, roles, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.FullName, user.PasswordHash, user.IsActive,
		string(roles), user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	// fetch back so defaults applied by the store are reflected
	return r.FindByID(ctx, user.ID)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, email, full_name, password_hash, is_active, roles, created_at, updated_at
		 FROM users WHERE email = ? LIMIT 1`, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, email, full_name, password_hash, is_active, roles, created_at, updated_at
		 FROM users WHERE id = ? LIMIT 1`, id))
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users`)
	if err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var (
		u     domain.User
		roles string
	)
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.IsActive,
		&roles, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if err := json.Unmarshal([]byte(roles), &u.Roles); err != nil {
		return nil, fmt.Errorf("unmarshal roles: %w", err)
	}
	return &u, nil
}

// isDuplicate reports whether err is a MySQL unique-constraint violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == erDupEntry
}
