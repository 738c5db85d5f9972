package handlers

import (
	"errors"
	"io"

	"h4g-voucherhub/internal/core/domain"
	"h4g-voucherhub/internal/core/services"
	"h4g-voucherhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	productService *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// CreateProductRequest represents create product request body
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl"`
}

// CreateProduct handles adding a product (Admin only)
// @Summary Create product
// @Description Add a product to the catalog (Admin only)
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateProductRequest true "Product data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.Create(c.Context(), &services.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Name is required; price and stock must be non-negative")
		}
		return response.InternalServerError(c, "Failed to create product")
	}

	return response.Created(c, "Product created successfully", fiber.Map{
		"product": product,
	})
}

// ListProducts handles listing the catalog
// @Summary List products
// @Description Get the full product catalog
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.productService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list products")
	}

	return response.Success(c, "Products retrieved successfully", fiber.Map{
		"products": products,
	})
}

// GetProduct handles getting a product by id
// @Summary Get product
// @Description Get a product by id
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.productService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return response.NotFound(c, "Product not found")
		}
		return response.InternalServerError(c, "Failed to get product")
	}

	return response.Success(c, "Product retrieved successfully", fiber.Map{
		"product": product,
	})
}

// UpdateProductRequest represents update product request body.
// Stock is parsed here only so the handler can reject attempts to change
// it through the details route.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Stock       *int     `json:"stock"`
}

// UpdateProduct handles updating product details (Admin only)
// @Summary Update product details
// @Description Update a product's name, description, price, or image URL (Admin only). Stock changes must go through the stock routes.
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param body body UpdateProductRequest true "Update data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Stock != nil {
		return response.BadRequest(c, "Stock cannot be updated through this route")
	}

	product, err := h.productService.UpdateDetails(c.Context(), c.Params("id"), &services.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "No valid fields to update")
		default:
			return response.InternalServerError(c, "Failed to update product")
		}
	}

	return response.Success(c, "Product updated successfully", fiber.Map{
		"product": product,
	})
}

// UpdateStockRequest represents stock update request body.
// The detail fields are parsed only so the handler can reject mixed
// requests; this route changes stock and nothing else.
type UpdateStockRequest struct {
	Stock       *int     `json:"stock"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
}

// UpdateStock handles setting a product's stock (Admin only)
// @Summary Set product stock
// @Description Set a product's stock to an absolute level (Admin only)
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param body body UpdateStockRequest true "Stock data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id}/stock [put]
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	var req UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name != nil || req.Description != nil || req.Price != nil || req.ImageURL != nil {
		return response.BadRequest(c, "Only stock can be updated through this route")
	}
	if req.Stock == nil {
		return response.BadRequest(c, "Stock is required")
	}

	product, err := h.productService.UpdateStock(c.Context(), c.Params("id"), *req.Stock)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Stock must be non-negative")
		default:
			return response.InternalServerError(c, "Failed to update stock")
		}
	}

	return response.Success(c, "Stock updated successfully", fiber.Map{
		"product": product,
	})
}

// AddStockRequest represents restock request body
type AddStockRequest struct {
	Quantity int `json:"quantity"`
}

// AddStock handles restocking a product (Admin only).
// Restocking immediately fulfills waiting pre-orders oldest-first.
// @Summary Restock product
// @Description Increment a product's stock and fulfill pending pre-orders (Admin only)
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param body body AddStockRequest true "Restock quantity"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id}/stock/add [post]
func (h *ProductHandler) AddStock(c *fiber.Ctx) error {
	var req AddStockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.productService.AddStock(c.Context(), c.Params("id"), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Quantity must be a positive integer")
		default:
			return response.InternalServerError(c, "Failed to restock product")
		}
	}

	return response.Success(c, "Product restocked successfully", result)
}

// DeleteProduct handles removing a product (Admin only)
// @Summary Delete product
// @Description Remove a product from the catalog (Admin only)
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	err := h.productService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return response.NotFound(c, "Product not found")
		}
		return response.InternalServerError(c, "Failed to delete product")
	}

	return response.Success(c, "Product deleted successfully", nil)
}

// UploadProductImage handles uploading a product image (Admin only)
// @Summary Upload product image
// @Description Upload a product image as multipart form data (Admin only)
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param image formData file true "Image file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id}/image [post]
func (h *ProductHandler) UploadProductImage(c *fiber.Ctx) error {
	data, contentType, err := readFormImage(c)
	if err != nil {
		return response.BadRequest(c, "Image file is required")
	}

	url, err := h.productService.UploadImage(c.Context(), c.Params("id"), data, contentType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Image file is empty")
		default:
			return response.InternalServerError(c, "Failed to upload image")
		}
	}

	return response.Success(c, "Image uploaded successfully", fiber.Map{
		"imageUrl": url,
	})
}

// GetProductImage handles issuing a signed image link
// @Summary Get product image URL
// @Description Get a time-limited signed URL for a product's image
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id}/image [get]
func (h *ProductHandler) GetProductImage(c *fiber.Ctx) error {
	url, err := h.productService.GetImageURL(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return response.NotFound(c, "Product not found")
		}
		return response.InternalServerError(c, "Failed to get image URL")
	}

	return response.Success(c, "Image URL retrieved successfully", fiber.Map{
		"imageUrl": url,
	})
}

// readFormImage extracts the "image" file from a multipart form
func readFormImage(c *fiber.Ctx) ([]byte, string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}
