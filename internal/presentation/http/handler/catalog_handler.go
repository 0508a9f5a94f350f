package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/application/service"
	"github.com/prospecta/prospecta-api/internal/presentation/http/dto/request"
	"github.com/prospecta/prospecta-api/internal/presentation/http/dto/response"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
// @Summary List Products
// @Description List the product catalog
// @Tags products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", gin.H{"products": products})
}

// Create handles product creation
// @Summary Create Product
// @Description Create a catalog product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ProductRequest true "Product data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", gin.H{"product": product})
}

// Update handles product updates
// @Summary Update Product
// @Description Update a catalog product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body request.ProductRequest true "Product data"
// @Success 200 {object} response.APIResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", gin.H{"product": product})
}

// Delete handles product deletion
// @Summary Delete Product
// @Description Delete a product not referenced by any lead
// @Tags products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// ProviderHandler handles referral provider HTTP requests
type ProviderHandler struct {
	providerService *service.ProviderService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(providerService *service.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

// List handles listing referral providers
// @Summary List Providers
// @Description List the referral providers
// @Tags providers
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /providers [get]
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.providerService.ListProviders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Providers retrieved successfully", gin.H{"providers": providers})
}

// Create handles provider creation
// @Summary Create Provider
// @Description Create a referral provider
// @Tags providers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ProviderRequest true "Provider data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /providers [post]
func (h *ProviderHandler) Create(c *gin.Context) {
	var req request.ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	provider, err := h.providerService.CreateProvider(c.Request.Context(), &service.ProviderInput{
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Provider created successfully", gin.H{"provider": provider})
}

// Update handles provider updates
// @Summary Update Provider
// @Description Update a referral provider
// @Tags providers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Provider ID"
// @Param request body request.ProviderRequest true "Provider data"
// @Success 200 {object} response.APIResponse
// @Router /providers/{id} [put]
func (h *ProviderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid provider ID")
		return
	}

	var req request.ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	provider, err := h.providerService.UpdateProvider(c.Request.Context(), id, &service.ProviderInput{
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Provider updated successfully", gin.H{"provider": provider})
}

// Delete handles provider deletion
// @Summary Delete Provider
// @Description Delete a provider not referenced by any lead
// @Tags providers
// @Security BearerAuth
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /providers/{id} [delete]
func (h *ProviderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid provider ID")
		return
	}

	if err := h.providerService.DeleteProvider(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Provider deleted successfully", nil)
}
