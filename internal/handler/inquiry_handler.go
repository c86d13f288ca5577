package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/inquiry"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/middleware"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/services"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/transport/httpdto"
)

type InquiryHandler struct {
	service *services.InquiryService
	bridge  *services.OrderBridge
}

func NewInquiryHandler(service *services.InquiryService, bridge *services.OrderBridge) *InquiryHandler {
	return &InquiryHandler{service: service, bridge: bridge}
}

func (h *InquiryHandler) Create(c *gin.Context) {
	var req httpdto.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	buyerID, ok := services.CompanyIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	supplierID, err := uuid.Parse(req.SupplierCompanyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid supplier id", "INVALID_REQUEST"))
		return
	}

	input := services.CreateInquiryInput{
		BuyerCompanyID:    buyerID,
		SupplierCompanyID: supplierID,
		Type:              req.Type,
		Subject:           req.Subject,
		Message:           req.Message,
		Unit:              req.Unit,
		Specification:     req.Specification,
		BudgetCurrency:    req.BudgetCurrency,
		ShippingTerms:     req.ShippingTerms,
		DestinationPort:   req.DestinationPort,
	}
	if req.ProductID != "" {
		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid product id", "INVALID_REQUEST"))
			return
		}
		input.ProductID = uuid.NullUUID{UUID: productID, Valid: true}
	}
	if req.Quantity > 0 {
		input.Quantity = sql.NullInt64{Int64: req.Quantity, Valid: true}
	}
	if req.BudgetMin != "" {
		d, err := decimal.NewFromString(req.BudgetMin)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid budget_min", "INVALID_REQUEST"))
			return
		}
		input.BudgetMin = decimal.NullDecimal{Decimal: d, Valid: true}
	}
	if req.BudgetMax != "" {
		d, err := decimal.NewFromString(req.BudgetMax)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid budget_max", "INVALID_REQUEST"))
			return
		}
		input.BudgetMax = decimal.NullDecimal{Decimal: d, Valid: true}
	}
	if req.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid expires_at", "INVALID_REQUEST"))
			return
		}
		input.ExpiresAt = t
	}

	inq, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromInquiry(inq)))
}

// List returns the requester's inquiries. The optional ?number= query looks
// up a single inquiry by its business number instead.
func (h *InquiryHandler) List(c *gin.Context) {
	companyID, ok := services.CompanyIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	if number := c.Query("number"); number != "" {
		inq, err := h.service.GetByNumber(c.Request.Context(), number)
		if err != nil {
			status, code := middleware.StatusFor(err)
			c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
			return
		}
		if inq.CounterpartyOf(companyID) == uuid.Nil {
			c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("not found", "NOT_FOUND"))
			return
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListInquiriesResponse{
			Inquiries: httpdto.FromInquirySlice([]inquiry.Inquiry{inq}),
			Total:     1,
		}))
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, total, err := h.service.ListByParty(c.Request.Context(), companyID, page, limit)
	if err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListInquiriesResponse{
		Inquiries: httpdto.FromInquirySlice(items),
		Total:     total,
	}))
}

func (h *InquiryHandler) GetByID(c *gin.Context) {
	inquiryID, actor, ok := h.inquiryAndActor(c)
	if !ok {
		return
	}
	inq, err := h.service.GetByID(c.Request.Context(), inquiryID)
	if err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	if inq.CounterpartyOf(actor) == uuid.Nil {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("not found", "NOT_FOUND"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromInquiry(inq)))
}

func (h *InquiryHandler) AppendMessage(c *gin.Context) {
	inquiryID, actor, ok := h.inquiryAndActor(c)
	if !ok {
		return
	}

	var req httpdto.AppendInquiryMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	input := services.AppendMessageInput{
		Body:    req.Body,
		IsQuote: req.IsQuote,
	}
	for _, a := range req.Attachments {
		input.Attachments = append(input.Attachments, services.AttachmentInput{
			ObjectKey:   a.ObjectKey,
			FileName:    a.FileName,
			ContentType: a.ContentType,
			SizeBytes:   a.SizeBytes,
		})
	}
	if req.QuoteUnitPrice != "" {
		d, err := decimal.NewFromString(req.QuoteUnitPrice)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid quote_unit_price", "INVALID_REQUEST"))
			return
		}
		input.QuoteUnitPrice = decimal.NullDecimal{Decimal: d, Valid: true}
	}
	if req.QuoteValidUntil != nil {
		t, err := time.Parse(time.RFC3339, *req.QuoteValidUntil)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid quote_valid_until", "INVALID_REQUEST"))
			return
		}
		input.QuoteValidUntil = sql.NullTime{Time: t, Valid: true}
	}

	posted, err := h.service.AppendMessage(c.Request.Context(), inquiryID, actor, input)
	if err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromMessage(posted)))
}

func (h *InquiryHandler) AddQuote(c *gin.Context) {
	inquiryID, actor, ok := h.inquiryAndActor(c)
	if !ok {
		return
	}

	var req httpdto.AddQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	unitPrice, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid unit_price", "INVALID_REQUEST"))
		return
	}
	totalPrice, err := decimal.NewFromString(req.TotalPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid total_price", "INVALID_REQUEST"))
		return
	}

	input := services.AddQuoteInput{
		UnitPrice:     unitPrice,
		TotalPrice:    totalPrice,
		Currency:      req.Currency,
		DeliveryTerms: req.DeliveryTerms,
		Notes:         req.Notes,
	}
	if req.ValidUntil != nil {
		t, err := time.Parse(time.RFC3339, *req.ValidUntil)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid valid_until", "INVALID_REQUEST"))
			return
		}
		input.ValidUntil = sql.NullTime{Time: t, Valid: true}
	}

	quote, err := h.service.AddQuote(c.Request.Context(), inquiryID, actor, input)
	if err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromQuote(quote)))
}

func (h *InquiryHandler) AcceptQuote(c *gin.Context) {
	h.quoteAction(c, h.service.AcceptQuote)
}

func (h *InquiryHandler) RejectQuote(c *gin.Context) {
	h.quoteAction(c, h.service.RejectQuote)
}

func (h *InquiryHandler) Convert(c *gin.Context) {
	inquiryID, actor, ok := h.inquiryAndActor(c)
	if !ok {
		return
	}
	created, err := h.bridge.ConvertAcceptedInquiry(c.Request.Context(), inquiryID, actor)
	if err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(gin.H{
		"order_id":     created.ID.String(),
		"order_number": created.Number,
	}))
}

func (h *InquiryHandler) Reject(c *gin.Context) {
	h.statusAction(c, h.service.Reject)
}

func (h *InquiryHandler) Archive(c *gin.Context) {
	h.statusAction(c, h.service.Archive)
}

func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	inquiryID, actor, ok := h.inquiryAndActor(c)
	if !ok {
		return
	}
	var req httpdto.UpdateInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	if err := h.service.UpdateStatus(c.Request.Context(), inquiryID, actor, req.Status); err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": req.Status}))
}

func (h *InquiryHandler) MarkRead(c *gin.Context) {
	h.statusAction(c, h.service.MarkRead)
}

func (h *InquiryHandler) inquiryAndActor(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	inquiryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid inquiry id", "INVALID_REQUEST"))
		return uuid.Nil, uuid.Nil, false
	}
	actor, ok := services.CompanyIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return uuid.Nil, uuid.Nil, false
	}
	return inquiryID, actor, true
}

func (h *InquiryHandler) quoteAction(c *gin.Context, action func(ctx context.Context, inquiryID, quoteID, actor uuid.UUID) error) {
	inquiryID, actor, ok := h.inquiryAndActor(c)
	if !ok {
		return
	}
	quoteID, err := uuid.Parse(c.Param("quoteId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid quote id", "INVALID_REQUEST"))
		return
	}
	if err := action(c.Request.Context(), inquiryID, quoteID, actor); err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"inquiry_id": inquiryID.String(), "quote_id": quoteID.String()}))
}

func (h *InquiryHandler) statusAction(c *gin.Context, action func(ctx context.Context, inquiryID, actor uuid.UUID) error) {
	inquiryID, actor, ok := h.inquiryAndActor(c)
	if !ok {
		return
	}
	if err := action(c.Request.Context(), inquiryID, actor); err != nil {
		status, code := middleware.StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"inquiry_id": inquiryID.String()}))
}
