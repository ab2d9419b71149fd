package handlers

import (
	"net/http"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/middleware"
	"psyhub_backend/internal/services"
	"psyhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ProfileHandler - свой профиль и публичный каталог
type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{BaseHandler: base, profileService: profileService}
}

// UpdatePsychologist - PUT /api/v1/profiles/psychologist
func (h *ProfileHandler) UpdatePsychologist(c *gin.Context) {
	var req dto.UpdatePsychologistProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	profile, err := h.profileService.UpdatePsychologist(h.GetDB(c), userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateInstitute - PUT /api/v1/profiles/institute
func (h *ProfileHandler) UpdateInstitute(c *gin.Context) {
	var req dto.UpdateInstituteProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	profile, err := h.profileService.UpdateInstitute(h.GetDB(c), userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateClient - PUT /api/v1/profiles/client
func (h *ProfileHandler) UpdateClient(c *gin.Context) {
	var req dto.UpdateClientProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	profile, err := h.profileService.UpdateClient(h.GetDB(c), userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetPsychologist - GET /api/v1/catalog/psychologists/:id
func (h *ProfileHandler) GetPsychologist(c *gin.Context) {
	profile, err := h.profileService.GetPsychologist(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetInstitute - GET /api/v1/catalog/institutes/:id
func (h *ProfileHandler) GetInstitute(c *gin.Context) {
	profile, err := h.profileService.GetInstitute(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListPsychologists - GET /api/v1/catalog/psychologists
func (h *ProfileHandler) ListPsychologists(c *gin.Context) {
	var query dto.CatalogQuery
	if !h.BindQuery(c, &query) {
		return
	}

	profiles, total, err := h.profileService.ListPsychologists(h.GetDB(c), &query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profiles, "total": total})
}

// ListInstitutes - GET /api/v1/catalog/institutes
func (h *ProfileHandler) ListInstitutes(c *gin.Context) {
	var query dto.CatalogQuery
	if !h.BindQuery(c, &query) {
		return
	}

	profiles, total, err := h.profileService.ListInstitutes(h.GetDB(c), &query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profiles, "total": total})
}
