package handler

import (
	"errors"
	"net/http"

	"labquote/internal/middleware"
	"labquote/internal/model"
	"labquote/internal/quotation"
	"labquote/internal/repository"
	"labquote/internal/service"
	"labquote/pkg/pagination"
	"labquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type QuotationHandler struct {
	quotationService service.QuotationService
}

func NewQuotationHandler(quotationService service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// RegisterRoutes binds the endpoints. The whole group is back-office.
func (h *QuotationHandler) RegisterRoutes(router *gin.RouterGroup) {
	quotations := router.Group("/quotations", middleware.RequireCapability(model.CapManageQuotations))
	{
		quotations.GET("/worksheet/:enquiryId", h.BuildWorksheet)
		quotations.POST("", h.CreateQuotation)
		quotations.GET("", h.ListQuotations)
		quotations.GET("/:id", h.GetQuotation)
		quotations.GET("/:id/html", h.GetQuotationHTML)
		quotations.PUT("/:id/html", h.UpdateQuotationHTML)
		quotations.PATCH("/:id/status", h.UpdateStatus)
		quotations.GET("/:id/tally", h.ExportTallyXML)
	}
}

// BuildWorksheet handles GET /quotations/worksheet/:enquiryId
// @Summary      Build pricing worksheet
// @Description  Turns an enquiry into an editable worksheet with default prices and GST rates pre-filled
// @Tags         quotations
// @Produce      json
// @Security     BearerAuth
// @Param        enquiryId  path      string  true  "Enquiry ID"
// @Success      200        {object}  response.Response{data=service.WorksheetResponse}
// @Failure      404        {object}  response.Response
// @Router       /quotations/worksheet/{enquiryId} [get]
func (h *QuotationHandler) BuildWorksheet(c *gin.Context) {
	session := middleware.CurrentSession(c)

	worksheet, err := h.quotationService.BuildWorksheet(c.Request.Context(), c.Param("enquiryId"), session)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, worksheet))
}

// CreateQuotation handles POST /quotations
// @Summary      Create quotation
// @Description  Validates the worksheet, assigns the reference number and renders the final document in one transaction
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateQuotationRequest  true  "Quotation Payload"
// @Success      201      {object}  response.Response{data=service.QuotationResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /quotations [post]
func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	var req service.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	session := middleware.CurrentSession(c)
	created, err := h.quotationService.CreateQuotation(c.Request.Context(), req, session)
	if err != nil {
		var fieldErr quotation.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusUnprocessableEntity, response.Error(http.StatusUnprocessableEntity, fieldErr.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// ListQuotations handles GET /quotations
// @Summary      List quotations
// @Tags         quotations
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        status  query     string  false  "Sent, Done or Reject"
// @Success      200     {object}  response.Response{data=response.Paginated}
// @Router       /quotations [get]
func (h *QuotationHandler) ListQuotations(c *gin.Context) {
	params := pagination.Parse(c)

	quotations, total, err := h.quotationService.ListQuotations(c.Request.Context(), repository.QuotationListFilter{
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch quotations"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated{
		Items: quotations,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}))
}

// GetQuotation handles GET /quotations/:id
// @Summary      Get quotation by ID
// @Tags         quotations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quotation ID"
// @Success      200  {object}  response.Response{data=service.QuotationResponse}
// @Failure      404  {object}  response.Response
// @Router       /quotations/{id} [get]
func (h *QuotationHandler) GetQuotation(c *gin.Context) {
	found, err := h.quotationService.GetQuotation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, found))
}

// GetQuotationHTML handles GET /quotations/:id/html, serving the stored
// printable document as-is.
// @Summary      Get quotation document
// @Description  Serves the rendered printable HTML document
// @Tags         quotations
// @Produce      html
// @Security     BearerAuth
// @Param        id   path      string  true  "Quotation ID"
// @Success      200  {string}  string  "HTML document"
// @Failure      404  {object}  response.Response
// @Router       /quotations/{id}/html [get]
func (h *QuotationHandler) GetQuotationHTML(c *gin.Context) {
	htmlContent, err := h.quotationService.GetQuotationHTML(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(htmlContent))
}

// UpdateQuotationHTML handles PUT /quotations/:id/html
// @Summary      Replace quotation document
// @Description  Replaces the stored HTML document; kept for clients using the old submit-then-patch flow
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                               true  "Quotation ID"
// @Param        payload  body      service.UpdateQuotationHTMLRequest  true  "Document Payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /quotations/{id}/html [put]
func (h *QuotationHandler) UpdateQuotationHTML(c *gin.Context) {
	var req service.UpdateQuotationHTMLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	if err := h.quotationService.UpdateQuotationHTML(c.Request.Context(), c.Param("id"), req.HTMLContent); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Quotation document updated"))
}

// UpdateStatus handles PATCH /quotations/:id/status
// @Summary      Close quotation
// @Description  Moves a Sent quotation to Done or Reject; both are terminal
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                                true  "Quotation ID"
// @Param        payload  body      service.UpdateQuotationStatusRequest  true  "Target Status"
// @Success      200      {object}  response.Response{data=service.QuotationResponse}
// @Failure      400      {object}  response.Response
// @Router       /quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateQuotationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	session := middleware.CurrentSession(c)
	updated, err := h.quotationService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, session.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}

// ExportTallyXML handles GET /quotations/:id/tally, streaming the voucher as
// a file download.
// @Summary      Export Tally voucher
// @Description  Renders a completed quotation as a Tally import XML file
// @Tags         quotations
// @Produce      application/xml
// @Security     BearerAuth
// @Param        id   path      string  true  "Quotation ID"
// @Success      200  {string}  string  "Tally XML"
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /quotations/{id}/tally [get]
func (h *QuotationHandler) ExportTallyXML(c *gin.Context) {
	export, err := h.quotationService.ExportTallyXML(c.Request.Context(), c.Param("id"), middleware.CurrentSession(c).UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, "application/xml", []byte(export.XML))
}
