package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Seeder wipes and repopulates the database with fixtures.
type Seeder interface {
	Populate(ctx context.Context) error
}

// SeedHandler handles GET /seed.
type SeedHandler struct {
	seeder Seeder
}

func NewSeedHandler(seeder Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Run executes the seed.
//
// @Summary      Reset and repopulate the database
// @Tags         seed
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  errorResponse
// @Router       /seed [get]
func (h *SeedHandler) Run(c echo.Context) error {
	if err := h.seeder.Populate(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "seed executed successfully"})
}
