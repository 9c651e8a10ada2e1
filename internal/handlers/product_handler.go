package handlers

import (
	"errors"
	"strconv"

	"catalogue/internal/models"
	"catalogue/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler exposes the catalogue operations over HTTP.
// Failures are returned to Fiber and rendered by ErrorHandler.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes. writeGuards run before the add handler.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, writeGuards ...fiber.Handler) {
	productRoutes := router.Group("/products")
	// Static segments first so they win over /:name.
	productRoutes.Get("/sort", h.HandleSortByPrice)
	productRoutes.Get("/inventory/value", h.HandleTotalInventoryValue)
	productRoutes.Get("/filter/:category", h.HandleFilterByCategory)
	productRoutes.Get("/id/:id", h.HandleGetByID)
	productRoutes.Get("/:name", h.HandleSearchByPartName)
	productRoutes.Get("/", h.HandleGetAll)
	productRoutes.Post("/", append(writeGuards, h.HandleAddProduct)...)
}

// HandleAddProduct validates and stores a new product.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var req models.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return services.NewError(services.InvalidInput, "Invalid request body")
	}
	resp, err := h.service.AddProduct(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(resp.StatusCode).JSON(resp)
}

// HandleGetAll lists every product.
func (h *ProductHandler) HandleGetAll(c *fiber.Ctx) error {
	resp, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(resp.StatusCode).JSON(resp)
}

// HandleSearchByPartName lists products whose part name contains the path parameter.
func (h *ProductHandler) HandleSearchByPartName(c *fiber.Ctx) error {
	resp, err := h.service.SearchByPartName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.Status(resp.StatusCode).JSON(resp)
}

// HandleFilterByCategory lists products in a category.
func (h *ProductHandler) HandleFilterByCategory(c *fiber.Ctx) error {
	resp, err := h.service.FilterByCategory(c.UserContext(), c.Params("category"))
	if err != nil {
		return err
	}
	return c.Status(resp.StatusCode).JSON(resp)
}

// HandleSortByPrice lists products by ascending price.
func (h *ProductHandler) HandleSortByPrice(c *fiber.Ctx) error {
	resp, err := h.service.SortByPrice(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(resp.StatusCode).JSON(resp)
}

// HandleTotalInventoryValue reports the summed value of all stock.
func (h *ProductHandler) HandleTotalInventoryValue(c *fiber.Ctx) error {
	resp, err := h.service.TotalInventoryValue(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(resp.StatusCode).JSON(resp)
}

// HandleGetByID returns a single product.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return services.NewError(services.InvalidInput, "Invalid Id, please provide a numeric Id")
	}
	// Well-formed ids that can never be assigned are unknown, not malformed.
	if err != nil || id <= 0 || uint64(id) > uint64(^uint(0)) {
		return services.NewError(services.IDNotFound, "Invalid Id, no Product information found")
	}
	resp, err := h.service.GetByID(c.UserContext(), uint(id))
	if err != nil {
		return err
	}
	return c.Status(resp.StatusCode).JSON(resp)
}
