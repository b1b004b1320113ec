package services

import (
	"context"
	"math"
	"strings"

	"tiendaBack/internal/models"
	"tiendaBack/internal/repositories"
)

const defaultProductPageSize = 20

type ProductService struct {
	ProductRepo *repositories.ProductRepository
}

func (s *ProductService) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	if err := validateProduct(product); err != nil {
		return models.Product{}, err
	}
	return s.ProductRepo.CreateProduct(ctx, product)
}

func (s *ProductService) GetProducts(ctx context.Context, search string, limit, offset int) ([]models.Product, int, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultProductPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.ProductRepo.GetProducts(ctx, search, limit, offset)
}

func (s *ProductService) GetProductByID(ctx context.Context, id int) (models.Product, error) {
	return s.ProductRepo.GetProductByID(ctx, id)
}

func (s *ProductService) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	if err := validateProduct(product); err != nil {
		return models.Product{}, err
	}
	return s.ProductRepo.UpdateProduct(ctx, product)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	return s.ProductRepo.DeleteProduct(ctx, id)
}

// ImagePaths lists every image the catalog still references.
func (s *ProductService) ImagePaths(ctx context.Context) ([]string, error) {
	return s.ProductRepo.ImagePaths(ctx)
}

func validateProduct(p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return models.ErrInvalidProduct
	}
	if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return models.ErrInvalidPrice
	}
	return nil
}
