package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/services"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/storage"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/transport/httpdto"
)

type UploadHandler struct {
	s3 *storage.Client
}

func NewUploadHandler(s3 *storage.Client) *UploadHandler {
	return &UploadHandler{s3: s3}
}

func (h *UploadHandler) PresignUpload(c *gin.Context) {
	companyID, ok := services.CompanyIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	key := storage.NewAttachmentKey(companyID, req.FileName)
	url, headers, err := h.s3.PresignPut(c.Request.Context(), key, req.ContentType, req.SizeBytes)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse("storage unavailable", "TRY_AGAIN"))
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.PresignUploadResponse{
		UploadURL: url,
		ObjectKey: key,
		FileURL:   h.s3.FileURL(key),
		Headers:   headers,
	}))
}

func (h *UploadHandler) PresignDownload(c *gin.Context) {
	if _, ok := services.CompanyIDFromContext(c.Request.Context()); !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("missing key", "INVALID_REQUEST"))
		return
	}
	url, err := h.s3.PresignGet(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse("storage unavailable", "TRY_AGAIN"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.PresignDownloadResponse{DownloadURL: url}))
}
