package handler

import (
	"net/http"

	"labquote/internal/middleware"
	"labquote/internal/model"
	"labquote/internal/service"
	"labquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type PolicyHandler struct {
	policyService service.PolicyService
}

func NewPolicyHandler(policyService service.PolicyService) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

// RegisterRoutes binds the endpoints. Policies belong to the calling admin.
func (h *PolicyHandler) RegisterRoutes(router *gin.RouterGroup) {
	policies := router.Group("/policies", middleware.RequireCapability(model.CapManageQuotations))
	{
		policies.GET("", h.ListPolicies)
		policies.POST("", h.CreatePolicy)
		policies.PUT("/:id", h.UpdatePolicy)
		policies.DELETE("/:id", h.DeletePolicy)
	}
}

// ListPolicies handles GET /policies
// @Summary      List policies
// @Description  Returns the caller's terms-and-conditions lines, seeding the built-in defaults on first read
// @Tags         policies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.PolicyResponse}
// @Failure      500  {object}  response.Response
// @Router       /policies [get]
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	session := middleware.CurrentSession(c)

	policies, err := h.policyService.ListPolicies(c.Request.Context(), session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, policies))
}

// CreatePolicy handles POST /policies
// @Summary      Create custom policy
// @Tags         policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreatePolicyRequest  true  "Policy Payload"
// @Success      201      {object}  response.Response{data=service.PolicyResponse}
// @Failure      400      {object}  response.Response
// @Router       /policies [post]
func (h *PolicyHandler) CreatePolicy(c *gin.Context) {
	var req service.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	session := middleware.CurrentSession(c)
	policy, err := h.policyService.CreatePolicy(c.Request.Context(), session.UserID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, policy))
}

// UpdatePolicy handles PUT /policies/:id
// @Summary      Update policy
// @Description  Updates the text, label or enabled flag of a policy line
// @Tags         policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Policy ID"
// @Param        payload  body      service.UpdatePolicyRequest  true  "Policy Payload"
// @Success      200      {object}  response.Response{data=service.PolicyResponse}
// @Failure      400      {object}  response.Response
// @Router       /policies/{id} [put]
func (h *PolicyHandler) UpdatePolicy(c *gin.Context) {
	var req service.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	session := middleware.CurrentSession(c)
	policy, err := h.policyService.UpdatePolicy(c.Request.Context(), session.UserID, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, policy))
}

// DeletePolicy handles DELETE /policies/:id
// @Summary      Delete custom policy
// @Description  Deletes a custom policy line; built-in lines can only be disabled
// @Tags         policies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Policy ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /policies/{id} [delete]
func (h *PolicyHandler) DeletePolicy(c *gin.Context) {
	session := middleware.CurrentSession(c)

	if err := h.policyService.DeletePolicy(c.Request.Context(), session.UserID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Policy deleted successfully"))
}
