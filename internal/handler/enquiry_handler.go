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

type EnquiryHandler struct {
	enquiryService service.EnquiryService
}

func NewEnquiryHandler(enquiryService service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiryService: enquiryService}
}

// RegisterRoutes binds the endpoints. Creation is public (the storefront
// submits enquiries anonymously); everything else is back-office.
func (h *EnquiryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/enquiries", h.CreateEnquiry)

	admin := router.Group("/enquiries", middleware.RequireCapability(model.CapManageQuotations))
	{
		admin.GET("", h.ListEnquiries)
		admin.GET("/:id", h.GetEnquiry)
		admin.PATCH("/:id/seen", h.MarkSeen)
		admin.PATCH("/:id/status", h.UpdateStatus)
	}
}

// CreateEnquiry handles POST /enquiries
// @Summary      Submit enquiry
// @Description  Creates a customer enquiry from explicit product lines or from a session cart, which is cleared atomically
// @Tags         enquiries
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateEnquiryRequest  true  "Enquiry Payload"
// @Success      201      {object}  response.Response{data=service.EnquiryResponse}
// @Failure      400      {object}  response.Response
// @Router       /enquiries [post]
func (h *EnquiryHandler) CreateEnquiry(c *gin.Context) {
	var req service.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	enquiry, err := h.enquiryService.CreateEnquiry(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, enquiry))
}

// ListEnquiries handles GET /enquiries
// @Summary      List enquiries
// @Description  Retrieves the paginated enquiry inbox, optionally filtered by status
// @Tags         enquiries
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        status  query     string  false  "Pending, Processed or Rejected"
// @Success      200     {object}  response.Response{data=response.Paginated}
// @Router       /enquiries [get]
func (h *EnquiryHandler) ListEnquiries(c *gin.Context) {
	params := pagination.Parse(c)

	enquiries, total, err := h.enquiryService.ListEnquiries(c.Request.Context(), params.Page, params.Limit, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch enquiries"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated{
		Items: enquiries,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}))
}

// GetEnquiry handles GET /enquiries/:id
// @Summary      Get enquiry by ID
// @Tags         enquiries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Enquiry ID"
// @Success      200  {object}  response.Response{data=service.EnquiryResponse}
// @Failure      404  {object}  response.Response
// @Router       /enquiries/{id} [get]
func (h *EnquiryHandler) GetEnquiry(c *gin.Context) {
	enquiry, err := h.enquiryService.GetEnquiry(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, enquiry))
}

// MarkSeen handles PATCH /enquiries/:id/seen
// @Summary      Mark enquiry as seen
// @Tags         enquiries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Enquiry ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /enquiries/{id}/seen [patch]
func (h *EnquiryHandler) MarkSeen(c *gin.Context) {
	if err := h.enquiryService.MarkSeen(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Enquiry marked as seen"))
}

// UpdateStatus handles PATCH /enquiries/:id/status
// @Summary      Update enquiry status
// @Tags         enquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Enquiry ID"
// @Param        payload  body      object{status=string}  true  "Target Status"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /enquiries/{id}/status [patch]
func (h *EnquiryHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	if err := h.enquiryService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Enquiry status updated"))
}
