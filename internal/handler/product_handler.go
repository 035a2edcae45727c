package handler

import (
	"net/http"

	"labquote/internal/middleware"
	"labquote/internal/model"
	"labquote/internal/service"
	"labquote/pkg/pagination"
	"labquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
// Reads are public with optional auth so trade prices appear only for
// sessions holding the capability; writes need catalog management.
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", middleware.OptionalAuth(), h.ListProducts)
		products.GET("/:id", middleware.OptionalAuth(), h.GetProduct)
		products.POST("", middleware.RequireCapability(model.CapManageCatalog), h.CreateProduct)
		products.PUT("/:id", middleware.RequireCapability(model.CapManageCatalog), h.UpdateProduct)
		products.DELETE("/:id", middleware.RequireCapability(model.CapManageCatalog), h.DeleteProduct)
	}
}

// ListProducts handles GET /products with search and pagination
// @Summary      List products
// @Description  Retrieves a paginated product catalog; search matches names and alternative names
// @Tags         products
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        search  query     string  false  "Search term"
// @Success      200     {object}  response.Response{data=response.Paginated}
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := pagination.Parse(c)
	search := c.Query("search")
	session := middleware.CurrentSession(c)

	products, total, err := h.productService.ListProducts(
		c.Request.Context(), params.Page, params.Limit, search, session.Can(model.CapTradePrices))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch products"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated{
		Items: products,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}))
}

// GetProduct handles GET /products/:id
// @Summary      Get product by ID
// @Description  Fetch a single product; dealer and purchase prices require the trade-price capability
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=service.ProductResponse}
// @Failure      404  {object}  response.Response
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	session := middleware.CurrentSession(c)

	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"), session.Can(model.CapTradePrices))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// CreateProduct handles POST /products
// @Summary      Create product
// @Description  Creates a catalog product; details accept ordered key/value pairs in any legacy shape
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ProductRequest  true  "Product Payload"
// @Success      201      {object}  response.Response{data=service.ProductResponse}
// @Failure      400      {object}  response.Response
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	session := middleware.CurrentSession(c)
	product, err := h.productService.CreateProduct(c.Request.Context(), req, session.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// UpdateProduct handles PUT /products/:id
// @Summary      Update product
// @Description  Updates a catalog product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Product ID"
// @Param        payload  body      service.ProductRequest  true  "Product Payload"
// @Success      200      {object}  response.Response{data=service.ProductResponse}
// @Failure      400      {object}  response.Response
// @Router       /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	session := middleware.CurrentSession(c)
	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req, session.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// DeleteProduct handles DELETE /products/:id
// @Summary      Delete product
// @Description  Soft deletes a product by ID
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	session := middleware.CurrentSession(c)

	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id"), session.UserID); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Product deleted successfully"))
}
