package handlers

import (
	"net/http"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/middleware"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/services"
	"psyhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler - административные маршруты /api/v1/admin/users
type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

// Create - POST /api/v1/admin/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(h.GetDB(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// List - GET /api/v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	var query dto.UserListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	resp, err := h.userService.ListUsers(h.GetDB(c), &query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get - GET /api/v1/admin/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetUser(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SetStatus - PATCH /api/v1/admin/users/:id/status
func (h *UserHandler) SetStatus(c *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	adminID, _ := middleware.GetUserID(c)
	if err := h.userService.SetUserStatus(h.GetDB(c), adminID, c.Param("id"), *req.IsActive); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetVisible - GET /api/v1/users/:id.
// Пользователь видит себя, админ - кого угодно.
func (h *UserHandler) GetVisible(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)
	actorRole, _ := middleware.GetUserRole(c)

	targetID := c.Param("id")
	if targetID != actorID && actorRole != models.UserRoleAdmin {
		apperrors.HandleError(c, apperrors.ErrForbidden)
		return
	}

	user, err := h.userService.GetUser(h.GetDB(c), targetID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete - DELETE /api/v1/admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	adminID, _ := middleware.GetUserID(c)
	if err := h.userService.DeleteUser(h.GetDB(c), adminID, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
