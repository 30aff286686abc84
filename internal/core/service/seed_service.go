package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
)

// SeedService wipes all catalog data and repopulates deterministic
// fixtures. Test and local-development utility.
type SeedService struct {
	users      ports.UserRepository
	products   ports.ProductService
	bcryptCost int
	logger     zerolog.Logger
}

func NewSeedService(users ports.UserRepository, products ports.ProductService, bcryptCost int, logger zerolog.Logger) *SeedService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &SeedService{users: users, products: products, bcryptCost: bcryptCost, logger: logger}
}

type seedUser struct {
	Email    string
	FullName string
	Password string
	IsActive bool
	Roles    []domain.Role
}

var seedUsers = []seedUser{
	{
		Email:    "admin@tesloshop.com",
		FullName: "Admin User",
		Password: "Admin123",
		IsActive: true,
		Roles:    []domain.Role{domain.RoleAdmin, domain.RoleSuperUser, domain.RoleUser},
	},
	{
		Email:    "user@tesloshop.com",
		FullName: "Plain User",
		Password: "User1234",
		IsActive: true,
		Roles:    []domain.Role{domain.RoleUser},
	},
	{
		Email:    "inactive@tesloshop.com",
		FullName: "Inactive User",
		Password: "Inactive1",
		IsActive: false,
		Roles:    []domain.Role{domain.RoleUser},
	},
}

var seedProducts = []ports.CreateProductInput{
	{
		Title:       "Men's Chill Crew Neck Sweatshirt",
		Price:       75,
		Description: "Introducing the Tesla Chill Collection.",
		Stock:       7,
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      domain.GenderMen,
		Tags:        []string{"sweatshirt"},
		Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
	},
	{
		Title:       "Men's Quilted Shirt Jacket",
		Price:       200,
		Description: "Weather-resistant quilted nylon jacket.",
		Stock:       5,
		Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
		Gender:      domain.GenderMen,
		Tags:        []string{"jacket"},
		Images:      []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
	},
	{
		Title:       "Women's Cropped Puffer Jacket",
		Price:       225,
		Description: "Cropped puffer with an insulated shell.",
		Stock:       85,
		Sizes:       []string{"XS", "S", "M"},
		Gender:      domain.GenderWomen,
		Tags:        []string{"jacket"},
		Images:      []string{"1654219-00-A_0_2000.jpg", "1654219-00-A_1.jpg"},
	},
	{
		Title:       "Kids Cyberquad Bomber Jacket",
		Price:       65,
		Description: "Bomber jacket with a Cyberquad silhouette graphic.",
		Stock:       10,
		Sizes:       []string{"XS", "S", "M"},
		Gender:      domain.GenderKid,
		Tags:        []string{"jacket", "kids"},
		Images:      []string{"1742702-00-A_0_2000.jpg", "1742702-00-A_1.jpg"},
	},
	{
		Title:       "Unisex 3D T Logo Tee",
		Price:       35,
		Description: "Classic tee with the 3D T logo on the chest.",
		Stock:       50,
		Sizes:       []string{"XS", "S", "M", "L", "XL"},
		Gender:      domain.GenderUnisex,
		Tags:        []string{"shirt"},
		Images:      []string{"8764734-00-A_0_2000.jpg", "8764734-00-A_1.jpg"},
	},
}

// Populate resets the database: products first (cascade clears images),
// then users, then re-inserts the fixtures. The first seed user owns all
// seeded products.
func (s *SeedService) Populate(ctx context.Context) error {
	if err := s.products.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		return err
	}

	var admin *domain.User
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), s.bcryptCost)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		created, err := s.users.Create(ctx, &domain.User{
			ID:           uuid.NewString(),
			Email:        strings.ToLower(su.Email),
			FullName:     su.FullName,
			PasswordHash: string(hash),
			IsActive:     su.IsActive,
			Roles:        su.Roles,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}
		if admin == nil {
			admin = created
		}
	}

	for _, sp := range seedProducts {
		if _, err := s.products.Create(ctx, sp, admin); err != nil {
			return err
		}
	}

	s.logger.Info().
		Int("users", len(seedUsers)).
		Int("products", len(seedProducts)).
		Msg("seed executed")
	return nil
}
