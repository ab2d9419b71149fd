package handlers

import (
	"net/http"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/middleware"
	"psyhub_backend/internal/services"
	"psyhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	*BaseHandler
	articles services.ArticleService
}

func NewArticleHandler(base *BaseHandler, articles services.ArticleService) *ArticleHandler {
	return &ArticleHandler{BaseHandler: base, articles: articles}
}

// Create - POST /api/v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req dto.CreateArticleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	userRole, _ := middleware.GetUserRole(c)

	article, err := h.articles.Create(h.GetDB(c), userID, userRole, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Update - PUT /api/v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var req dto.UpdateArticleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	userRole, _ := middleware.GetUserRole(c)

	article, err := h.articles.Update(h.GetDB(c), userID, userRole, c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete - DELETE /api/v1/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	userRole, _ := middleware.GetUserRole(c)

	if err := h.articles.Delete(h.GetDB(c), userID, userRole, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Get - GET /api/v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.articles.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// List - GET /api/v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	var query dto.ArticleListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	articles, total, err := h.articles.ListPublished(h.GetDB(c), &query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": articles, "total": total})
}
