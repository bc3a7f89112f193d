package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-product-service/internal/api/dto"
	"github.com/spec-kit/insurance-product-service/internal/auth"
	"github.com/spec-kit/insurance-product-service/internal/service"
	apperrors "github.com/spec-kit/insurance-product-service/pkg/util"
)

// ProductsHandler manages product endpoints.
type ProductsHandler struct {
	service *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{service: productService}
}

// GetProduct GET /product?productCode=&location=.
func (h *ProductsHandler) GetProduct(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Query("productCode"))
	location := strings.TrimSpace(c.Query("location"))
	if code == "" || location == "" {
		return apperrors.NewValidationError("productCode and location query params required", nil)
	}

	product, err := h.service.FindProduct(c.Context(), code, location)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// CreateProduct POST /product.
func (h *ProductsHandler) CreateProduct(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.ProductCode) == "" || strings.TrimSpace(req.Location) == "" {
		return apperrors.NewValidationError("productCode and location required", nil)
	}
	if req.Price <= 0 {
		return apperrors.NewValidationError("price must be positive", nil)
	}

	product, err := h.service.CreateProduct(c.Context(), identity, service.ProductCreateInput{
		ProductCode: strings.TrimSpace(req.ProductCode),
		Location:    strings.TrimSpace(req.Location),
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// UpdateProduct PUT /product?productCode=.
func (h *ProductsHandler) UpdateProduct(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	code := strings.TrimSpace(c.Query("productCode"))
	if code == "" {
		return apperrors.NewValidationError("productCode query param required", nil)
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Location) == "" {
		return apperrors.NewValidationError("location required", nil)
	}
	if req.Price <= 0 {
		return apperrors.NewValidationError("price must be positive", nil)
	}

	product, err := h.service.UpdateProduct(c.Context(), identity, code, service.ProductUpdateInput{
		Location: strings.TrimSpace(req.Location),
		Price:    req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// DeleteProduct DELETE /product?productCode=.
func (h *ProductsHandler) DeleteProduct(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	code := strings.TrimSpace(c.Query("productCode"))
	if code == "" {
		return apperrors.NewValidationError("productCode query param required", nil)
	}

	if err := h.service.DeleteProduct(c.Context(), identity, code); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
