package handler

import (
	"net/http"

	"labquote/internal/middleware"
	"labquote/internal/model"
	"labquote/internal/repository"
	"labquote/internal/service"
	"labquote/pkg/pagination"
	"labquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs", middleware.RequireCapability(model.CapViewAudit), h.ListAuditLogs)
}

// ListAuditLogs handles GET /audit-logs
// @Summary      List audit logs
// @Description  Retrieves the audit trail, newest first, optionally filtered by action or actor
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        action  query     string  false  "Action filter"
// @Param        userId  query     string  false  "Actor filter"
// @Success      200     {object}  response.Response{data=response.Paginated}
// @Failure      500     {object}  response.Response
// @Router       /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)

	logs, total, err := h.auditService.List(c.Request.Context(), repository.AuditLogFilter{
		Action: c.Query("action"),
		UserID: c.Query("userId"),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch audit logs"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated{
		Items: logs,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}))
}
