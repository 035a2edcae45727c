package handler

import (
	"net/http"

	"labquote/internal/service"
	"labquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes binds the endpoints. Carts are anonymous, keyed by the
// client-generated session header, so no auth middleware here.
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:itemId", h.UpdateItem)
		cart.DELETE("/items/:itemId", h.RemoveItem)
		cart.DELETE("", h.ClearCart)
	}
}

func sessionID(c *gin.Context) string {
	return c.GetHeader("X-Cart-Session")
}

// GetCart handles GET /cart
// @Summary      Get cart
// @Description  Returns the complete server-side cart for the session
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session  header    string  true  "Cart session ID"
// @Success      200             {object}  response.Response{data=service.CartResponse}
// @Failure      400             {object}  response.Response
// @Router       /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), sessionID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, cart))
}

// AddItem handles POST /cart/items
// @Summary      Add cart item
// @Description  Adds a product to the cart, merging into an existing line; responds with the full reconciled cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session  header    string                   true  "Cart session ID"
// @Param        payload         body      service.CartLineRequest  true  "Cart Line Payload"
// @Success      200             {object}  response.Response{data=service.CartResponse}
// @Failure      400             {object}  response.Response
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req service.CartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), sessionID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, cart))
}

// UpdateItem handles PUT /cart/items/:itemId
// @Summary      Update cart item quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session  header    string                   true  "Cart session ID"
// @Param        itemId          path      string                   true  "Cart item ID"
// @Param        payload         body      object{quantity=int}     true  "New Quantity"
// @Success      200             {object}  response.Response{data=service.CartResponse}
// @Failure      400             {object}  response.Response
// @Router       /cart/items/{itemId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), sessionID(c), c.Param("itemId"), req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, cart))
}

// RemoveItem handles DELETE /cart/items/:itemId
// @Summary      Remove cart item
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session  header    string  true  "Cart session ID"
// @Param        itemId          path      string  true  "Cart item ID"
// @Success      200             {object}  response.Response{data=service.CartResponse}
// @Failure      400             {object}  response.Response
// @Router       /cart/items/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.cartService.RemoveItem(c.Request.Context(), sessionID(c), c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, cart))
}

// ClearCart handles DELETE /cart
// @Summary      Clear cart
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session  header    string  true  "Cart session ID"
// @Success      200             {object}  response.Response{data=service.CartResponse}
// @Failure      400             {object}  response.Response
// @Router       /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	cart, err := h.cartService.ClearCart(c.Request.Context(), sessionID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, cart))
}
