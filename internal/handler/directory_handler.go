package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/middleware"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/services"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/transport/httpdto"
)

type DirectoryHandler struct {
	service *services.DirectoryService
}

func NewDirectoryHandler(service *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// GetProfile returns the display profile for a single company.
func (h *DirectoryHandler) GetProfile(c *gin.Context) {
	if _, ok := services.CompanyIDFromContext(c.Request.Context()); !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid company id", "INVALID_REQUEST"))
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), id)
	if err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(profile))
}
