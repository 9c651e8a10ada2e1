package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalogue/internal/models"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// CountByPartNumber returns how many products carry the given part number.
func (r *GORMProductRepository) CountByPartNumber(ctx context.Context, partNumber string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("part_number = ?", partNumber).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products by part number %s: %w", partNumber, err)
	}
	return count, nil
}

// Create inserts a new product. The assigned ID is written back into product.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePartNumber
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetAll retrieves all products ordered by ID.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// SearchByPartName returns products whose part name contains name.
// Wildcard characters in name match literally.
func (r *GORMProductRepository) SearchByPartName(ctx context.Context, name string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + likeEscaper.Replace(strings.ToLower(name)) + "%"
	err := r.db.WithContext(ctx).
		Where(`LOWER(part_name) LIKE ? ESCAPE '\'`, pattern).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products by part name %q: %w", name, err)
	}
	return products, nil
}

// FilterByCategory returns products stored under exactly the given category.
func (r *GORMProductRepository) FilterByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to filter products by category %q: %w", category, err)
	}
	return products, nil
}

// SortByPrice returns all products in ascending price order.
func (r *GORMProductRepository) SortByPrice(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("price asc").Order("id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to sort products by price: %w", err)
	}
	return products, nil
}
