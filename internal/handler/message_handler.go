package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/middleware"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/services"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/transport/httpdto"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) Post(c *gin.Context) {
	senderID, ok := services.CompanyIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	threadID, err := uuid.Parse(req.ThreadID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid thread id", "INVALID_REQUEST"))
		return
	}
	recipientID, err := uuid.Parse(req.RecipientCompanyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid recipient id", "INVALID_REQUEST"))
		return
	}

	input := services.PostMessageInput{
		Thread:             message.ThreadRef{Kind: req.ThreadKind, ID: threadID},
		SenderCompanyID:    senderID,
		RecipientCompanyID: recipientID,
		Body:               req.Body,
	}
	for _, a := range req.Attachments {
		input.Attachments = append(input.Attachments, services.AttachmentInput{
			ObjectKey:   a.ObjectKey,
			FileName:    a.FileName,
			ContentType: a.ContentType,
			SizeBytes:   a.SizeBytes,
		})
	}

	posted, err := h.service.Post(c.Request.Context(), input)
	if err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromMessage(posted)))
}

func (h *MessageHandler) ListThread(c *gin.Context) {
	if _, ok := services.CompanyIDFromContext(c.Request.Context()); !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	threadID, err := uuid.Parse(c.Param("threadId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid thread id", "INVALID_REQUEST"))
		return
	}
	ref := message.ThreadRef{Kind: c.Param("threadKind"), ID: threadID}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	messages, total, err := h.service.ThreadMessages(c.Request.Context(), ref, page, limit)
	if err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListMessagesResponse{
		Messages: httpdto.FromMessageSlice(messages),
		Total:    total,
	}))
}

func (h *MessageHandler) MarkDelivered(c *gin.Context) {
	if _, ok := services.CompanyIDFromContext(c.Request.Context()); !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}
	if err := h.service.MarkDelivered(c.Request.Context(), messageID); err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message_id": messageID.String()}))
}
