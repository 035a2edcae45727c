package handler

import (
	"net/http"

	"labquote/internal/middleware"
	"labquote/internal/model"
	"labquote/internal/service"
	"labquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", middleware.RequireCapability(model.CapManageQuotations), h.GetDashboard)
}

// GetDashboard handles GET /dashboard
// @Summary      Dashboard summary
// @Description  Returns catalog, enquiry and quotation counts plus total quoted value
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.DashboardResponse}
// @Failure      500  {object}  response.Response
// @Router       /dashboard [get]
func (h *StatisticsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.statisticsService.GetDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}
