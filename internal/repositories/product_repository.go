package repositories

import (
	"context"
	"errors"

	"catalogue/internal/models"
)

var (
	// ErrProductNotFound is returned when no product has the requested ID.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicatePartNumber is returned when the storage unique constraint on part_number is hit.
	ErrDuplicatePartNumber = errors.New("part number already exists")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	CountByPartNumber(ctx context.Context, partNumber string) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	SearchByPartName(ctx context.Context, name string) ([]models.Product, error)
	FilterByCategory(ctx context.Context, category string) ([]models.Product, error)
	SortByPrice(ctx context.Context) ([]models.Product, error)
}
