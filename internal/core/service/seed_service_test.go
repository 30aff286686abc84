package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tesloshop/catalog-api/internal/core/domain"
)

func TestSeedService_Populate(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	svc := NewSeedService(users, newProductService(products), bcrypt.MinCost, zerolog.Nop())

	// Pre-existing data must be wiped before the fixtures land.
	users.users["stale"] = &domain.User{ID: "stale", Email: "stale@x.com"}
	products.products["stale"] = &domain.Product{ID: "stale", Title: "Stale", Slug: "stale"}

	if err := svc.Populate(context.Background()); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	if _, err := users.FindByEmail(context.Background(), "stale@x.com"); err != domain.ErrUserNotFound {
		t.Fatalf("stale user survived the reset: %v", err)
	}
	if len(users.users) != len(seedUsers) {
		t.Fatalf("users = %d, want %d", len(users.users), len(seedUsers))
	}
	if len(products.products) != len(seedProducts) {
		t.Fatalf("products = %d, want %d", len(products.products), len(seedProducts))
	}

	admin, err := users.FindByEmail(context.Background(), "admin@tesloshop.com")
	if err != nil {
		t.Fatalf("admin missing after seed: %v", err)
	}
	if !admin.HasAnyRole([]domain.Role{domain.RoleSuperUser}) {
		t.Fatalf("admin roles = %v, want super-user among them", admin.Roles)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("Admin123")); err != nil {
		t.Fatalf("admin password hash does not verify: %v", err)
	}

	// Every seeded product belongs to the first seed user.
	for _, p := range products.products {
		if p.UserID != admin.ID {
			t.Fatalf("product %q owner = %q, want %q", p.Title, p.UserID, admin.ID)
		}
		if len(p.Images) == 0 {
			t.Fatalf("product %q seeded without images", p.Title)
		}
	}
}

func TestSeedService_PopulateIsRepeatable(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	svc := NewSeedService(users, newProductService(products), bcrypt.MinCost, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if err := svc.Populate(context.Background()); err != nil {
			t.Fatalf("Populate run %d: %v", i+1, err)
		}
	}
	if len(users.users) != len(seedUsers) || len(products.products) != len(seedProducts) {
		t.Fatalf("second run duplicated fixtures: %d users, %d products", len(users.users), len(products.products))
	}
}
