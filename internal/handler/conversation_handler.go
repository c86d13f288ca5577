package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/middleware"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/services"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/transport/httpdto"
)

type ConversationHandler struct {
	service *services.ConversationService
}

func NewConversationHandler(service *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// List returns the requester's inbox. The optional ?partner= query pins a
// counterparty to the top, synthesizing a placeholder when no thread exists.
func (h *ConversationHandler) List(c *gin.Context) {
	requesterID, ok := services.CompanyIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var currentParty *uuid.UUID
	if partner := c.Query("partner"); partner != "" {
		id, err := uuid.Parse(partner)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid partner id", "INVALID_REQUEST"))
			return
		}
		currentParty = &id
	}

	conversations, err := h.service.ResolveInbox(c.Request.Context(), requesterID, currentParty)
	if err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListConversationsResponse{
		Conversations: httpdto.FromConversationSlice(conversations),
	}))
}

func (h *ConversationHandler) MarkRead(c *gin.Context) {
	requesterID, ok := services.CompanyIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.MarkConversationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	threadID, err := uuid.Parse(req.ThreadID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid thread id", "INVALID_REQUEST"))
		return
	}

	ref := message.ThreadRef{Kind: req.ThreadKind, ID: threadID}
	if err := h.service.MarkConversationRead(c.Request.Context(), requesterID, ref); err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"thread_id": threadID.String()}))
}
