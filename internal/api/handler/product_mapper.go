package handler

import (
	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
)

func toCreateInput(req createProductRequest) ports.CreateProductInput {
	return ports.CreateProductInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Slug:        req.Slug,
		Stock:       req.Stock,
		Sizes:       req.Sizes,
		Gender:      domain.Gender(req.Gender),
		Tags:        req.Tags,
		Images:      req.Images,
	}
}

func toUpdateInput(req updateProductRequest) ports.UpdateProductInput {
	input := ports.UpdateProductInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Slug:        req.Slug,
		Stock:       req.Stock,
		Sizes:       req.Sizes,
		Tags:        req.Tags,
		Images:      req.Images,
	}
	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		input.Gender = &g
	}
	return input
}
