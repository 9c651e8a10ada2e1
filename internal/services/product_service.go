package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"catalogue/internal/models"
	"catalogue/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ProductService validates incoming products and shapes catalogue queries into response envelopes.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		logger:    logger.With("component", "product_service"),
	}
}

// AddProduct validates and stores a new product.
// Checks run in a fixed order: missing fields, then duplicate part number, then negative values.
func (s *ProductService) AddProduct(ctx context.Context, req *models.ProductRequest) (*models.Response[models.Product], error) {
	if req == nil || s.validate.Struct(req) != nil {
		return nil, NewError(NullInput, "Null value cannot be inserted, please provide a valid Input")
	}

	count, err := s.repo.CountByPartNumber(ctx, *req.PartNumber)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, NewError(DuplicateData, "Part Number already exists: %s", *req.PartNumber)
	}

	if s.validate.Var(*req.Price, "gte=0") != nil || s.validate.Var(*req.Stock, "gte=0") != nil {
		return nil, NewError(NegativeValue, "Products price or stock cannot have a negative value")
	}

	product := models.Product{
		PartNumber: *req.PartNumber,
		PartName:   strings.ToLower(*req.PartName),
		Category:   strings.ToLower(*req.Category),
		Price:      *req.Price,
		Stock:      *req.Stock,
	}
	if err := s.repo.Create(ctx, &product); err != nil {
		if errors.Is(err, repositories.ErrDuplicatePartNumber) {
			return nil, NewError(DuplicateData, "Part Number already exists: %s", product.PartNumber)
		}
		return nil, err
	}
	s.logger.InfoContext(ctx, "Product saved", "id", product.ID, "part_number", product.PartNumber)
	s.publishCreated(ctx, product)

	return ok("Product data successfully saved", product), nil
}

// GetAll returns every stored product.
func (s *ProductService) GetAll(ctx context.Context) (*models.Response[[]models.Product], error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, NewError(NoRecord, "No Data exist in the Database")
	}
	return ok("Product details found successfully", products), nil
}

// SearchByPartName returns products whose part name contains name, ignoring case.
func (s *ProductService) SearchByPartName(ctx context.Context, name string) (*models.Response[[]models.Product], error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewError(InvalidInput, "Invalid Part Name, please provide a valid part name")
	}

	products, err := s.repo.SearchByPartName(ctx, strings.ToLower(name))
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, NewError(NoRecord, "No Product is present with the Part Name: %s", name)
	}
	return ok("Products Info found by Part Name: "+name, products), nil
}

// FilterByCategory returns products stored under the given category, ignoring case.
func (s *ProductService) FilterByCategory(ctx context.Context, category string) (*models.Response[[]models.Product], error) {
	products, err := s.repo.FilterByCategory(ctx, strings.ToLower(category))
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, NewError(NoRecord, "No Product found under the Category: %s", category)
	}
	return ok("Products fetched based on category: "+category, products), nil
}

// SortByPrice returns all products in ascending price order.
func (s *ProductService) SortByPrice(ctx context.Context) (*models.Response[[]models.Product], error) {
	products, err := s.repo.SortByPrice(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, NewError(NoRecord, "No Product data found in the Database")
	}
	return ok("Products are sorted based on price in ascending order", products), nil
}

// TotalInventoryValue sums price * stock over the whole catalogue.
// An empty catalogue is an error, not zero.
func (s *ProductService) TotalInventoryValue(ctx context.Context) (*models.Response[string], error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, NewError(NoRecord, "No Product data found in the Database")
	}

	var total float64
	for _, p := range products {
		total += p.Price * float64(p.Stock)
	}
	return ok("Inventory value computed successfully", "Total Inventory value : "+formatDecimal(total)), nil
}

// GetByID looks a product up by its primary key.
func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Response[models.Product], error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, NewError(IDNotFound, "Invalid Id, no Product information found")
		}
		return nil, err
	}
	return ok(fmt.Sprintf("Product Info found based on Id:%d", id), *product), nil
}

func (s *ProductService) publishCreated(ctx context.Context, product models.Product) {
	if s.publisher == nil {
		return
	}
	event := newProductCreatedEvent(product)
	body, err := event.marshal()
	if err != nil {
		s.logger.WarnContext(ctx, "Skipping product event", "id", product.ID, "error", err)
		return
	}
	if err := s.publisher.Publish(ProductCreatedRoutingKey, body); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish product event", "id", product.ID, "event_id", event.EventID, "error", err)
		return
	}
	s.logger.DebugContext(ctx, "Published product event", "id", product.ID, "event_id", event.EventID)
}

func ok[T any](message string, data T) *models.Response[T] {
	return &models.Response[T]{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
	}
}

// formatDecimal renders v with at least one fractional digit: 35 -> "35.0", 12.5 -> "12.5".
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}
