package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MySQL
// connection.
type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	Database string
}

// Open connects to MySQL, applies pool settings and verifies the
// connection with a ping.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	auth := cfg.User
	if cfg.Password != "" {
		auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Password)
	}
	// parseTime=true maps DATETIME to time.Time; loc=UTC keeps times consistent.
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.Host, cfg.Port, cfg.Database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql open: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables when they do not exist yet.
// product_images carries an ON DELETE CASCADE foreign key so images never
// outlive their product.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            CHAR(36)     NOT NULL PRIMARY KEY,
			email         VARCHAR(255) NOT NULL,
			full_name     VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			is_active     BOOLEAN      NOT NULL DEFAULT TRUE,
			roles         TEXT         NOT NULL,
			created_at    DATETIME     NOT NULL,
			updated_at    DATETIME     NOT NULL,
			UNIQUE KEY uq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS products (
			id          CHAR(36)     NOT NULL PRIMARY KEY,
			title       VARCHAR(255) NOT NULL,
			slug        VARCHAR(255) NOT NULL,
			price       DOUBLE       NOT NULL DEFAULT 0,
			description TEXT         NULL,
			stock       INT          NOT NULL DEFAULT 0,
			sizes       TEXT         NOT NULL,
			gender      VARCHAR(16)  NOT NULL,
			tags        TEXT         NOT NULL,
			user_id     CHAR(36)     NULL,
			created_at  DATETIME     NOT NULL,
			updated_at  DATETIME     NOT NULL,
			UNIQUE KEY uq_products_title (title),
			UNIQUE KEY uq_products_slug (slug),
			CONSTRAINT fk_products_user FOREIGN KEY (user_id)
				REFERENCES users (id) ON DELETE SET NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS product_images (
			id         BIGINT   NOT NULL AUTO_INCREMENT PRIMARY KEY,
			product_id CHAR(36) NOT NULL,
			url        TEXT     NOT NULL,
			CONSTRAINT fk_images_product FOREIGN KEY (product_id)
				REFERENCES products (id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
