package handlers

import (
	"net/http"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/middleware"
	"psyhub_backend/internal/services"
	"psyhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ServiceHandler - прайс-лист владельца
type ServiceHandler struct {
	*BaseHandler
	serviceItems services.ServiceItemService
}

func NewServiceHandler(base *BaseHandler, serviceItems services.ServiceItemService) *ServiceHandler {
	return &ServiceHandler{BaseHandler: base, serviceItems: serviceItems}
}

// Create - POST /api/v1/services
func (h *ServiceHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	userRole, _ := middleware.GetUserRole(c)

	item, err := h.serviceItems.Create(h.GetDB(c), userID, userRole, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update - PUT /api/v1/services/:id
func (h *ServiceHandler) Update(c *gin.Context) {
	var req dto.UpdateServiceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	userRole, _ := middleware.GetUserRole(c)

	item, err := h.serviceItems.Update(h.GetDB(c), userID, userRole, c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete - DELETE /api/v1/services/:id
func (h *ServiceHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	userRole, _ := middleware.GetUserRole(c)

	if err := h.serviceItems.Delete(h.GetDB(c), userID, userRole, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Get - GET /api/v1/services/:id
func (h *ServiceHandler) Get(c *gin.Context) {
	item, err := h.serviceItems.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListByOwner - GET /api/v1/services?owner_id=...
func (h *ServiceHandler) ListByOwner(c *gin.Context) {
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("owner_id is required"))
		return
	}

	items, err := h.serviceItems.ListByOwner(h.GetDB(c), ownerID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}
