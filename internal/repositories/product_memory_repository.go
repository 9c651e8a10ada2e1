package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"catalogue/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products    map[uint]models.Product
	partNumbers map[string]uint
	nextID      uint
	mu          sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products:    make(map[uint]models.Product),
		partNumbers: make(map[string]uint),
		nextID:      1,
	}
}

// CountByPartNumber returns 1 if the part number is taken, 0 otherwise.
func (r *MemoryProductRepository) CountByPartNumber(_ context.Context, partNumber string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.partNumbers[partNumber]; ok {
		return 1, nil
	}
	return 0, nil
}

// Create adds a new product and assigns its ID.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.partNumbers[product.PartNumber]; ok {
		return ErrDuplicatePartNumber
	}
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	r.partNumbers[product.PartNumber] = product.ID
	return nil
}

// GetAll returns all products ordered by ID.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(models.Product) bool { return true }), nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// SearchByPartName returns products whose part name contains name, ignoring case.
func (r *MemoryProductRepository) SearchByPartName(_ context.Context, name string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(name)
	return r.collect(func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.PartName), needle)
	}), nil
}

// FilterByCategory returns products stored under exactly the given category.
func (r *MemoryProductRepository) FilterByCategory(_ context.Context, category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(p models.Product) bool { return p.Category == category }), nil
}

// SortByPrice returns all products in ascending price order.
func (r *MemoryProductRepository) SortByPrice(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := r.collect(func(models.Product) bool { return true })
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Price < products[j].Price
	})
	return products, nil
}

// collect must be called with r.mu held.
func (r *MemoryProductRepository) collect(keep func(models.Product) bool) []models.Product {
	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if keep(p) {
			productList = append(productList, p)
		}
	}
	sort.Slice(productList, func(i, j int) bool {
		return productList[i].ID < productList[j].ID
	})
	return productList
}
