package httpdto

import (
	"time"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/inquiry"
)

type CreateInquiryRequest struct {
	SupplierCompanyID string  `json:"supplier_company_id" binding:"required"`
	ProductID         string  `json:"product_id"`
	Type              string  `json:"type" binding:"required"`
	Subject           string  `json:"subject" binding:"required"`
	Message           string  `json:"message" binding:"required"`
	Quantity          int64   `json:"quantity"`
	Unit              string  `json:"unit"`
	Specification     string  `json:"specification"`
	BudgetMin         string  `json:"budget_min"`
	BudgetMax         string  `json:"budget_max"`
	BudgetCurrency    string  `json:"budget_currency"`
	ShippingTerms     string  `json:"shipping_terms"`
	DestinationPort   string  `json:"destination_port"`
	ExpiresAt         *string `json:"expires_at"`
}

type AppendInquiryMessageRequest struct {
	Body            string              `json:"body"`
	Attachments     []AttachmentRequest `json:"attachments"`
	IsQuote         bool                `json:"is_quote"`
	QuoteUnitPrice  string              `json:"quote_unit_price"`
	QuoteValidUntil *string             `json:"quote_valid_until"`
}

type AttachmentRequest struct {
	ObjectKey   string `json:"object_key" binding:"required"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type AddQuoteRequest struct {
	UnitPrice     string  `json:"unit_price" binding:"required"`
	TotalPrice    string  `json:"total_price" binding:"required"`
	Currency      string  `json:"currency" binding:"required"`
	ValidUntil    *string `json:"valid_until"`
	DeliveryTerms string  `json:"delivery_terms"`
	Notes         string  `json:"notes"`
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type QuoteResponse struct {
	ID                string     `json:"id"`
	QuotedByCompanyID string     `json:"quoted_by_company_id"`
	UnitPrice         string     `json:"unit_price"`
	TotalPrice        string     `json:"total_price"`
	Currency          string     `json:"currency"`
	ValidUntil        *time.Time `json:"valid_until,omitempty"`
	DeliveryTerms     string     `json:"delivery_terms,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
}

type InquiryMessageResponse struct {
	ID              string     `json:"id"`
	SenderCompanyID string     `json:"sender_company_id"`
	Body            string     `json:"body"`
	IsQuote         bool       `json:"is_quote"`
	QuoteUnitPrice  string     `json:"quote_unit_price,omitempty"`
	QuoteValidUntil *time.Time `json:"quote_valid_until,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type InquiryResponse struct {
	ID                string                   `json:"id"`
	Number            string                   `json:"number"`
	BuyerCompanyID    string                   `json:"buyer_company_id"`
	SupplierCompanyID string                   `json:"supplier_company_id"`
	ProductID         string                   `json:"product_id,omitempty"`
	Type              string                   `json:"type"`
	Subject           string                   `json:"subject"`
	Message           string                   `json:"message"`
	Quantity          *int64                   `json:"quantity,omitempty"`
	Unit              string                   `json:"unit,omitempty"`
	Specification     string                   `json:"specification,omitempty"`
	BudgetMin         string                   `json:"budget_min,omitempty"`
	BudgetMax         string                   `json:"budget_max,omitempty"`
	BudgetCurrency    string                   `json:"budget_currency,omitempty"`
	ShippingTerms     string                   `json:"shipping_terms,omitempty"`
	DestinationPort   string                   `json:"destination_port,omitempty"`
	Status            string                   `json:"status"`
	ExpiresAt         time.Time                `json:"expires_at"`
	ConvertedOrderID  string                   `json:"converted_order_id,omitempty"`
	Version           int64                    `json:"version"`
	CreatedAt         time.Time                `json:"created_at"`
	Quotes            []QuoteResponse          `json:"quotes,omitempty"`
	Messages          []InquiryMessageResponse `json:"messages,omitempty"`
}

type ListInquiriesResponse struct {
	Inquiries []InquiryResponse `json:"inquiries"`
	Total     int64             `json:"total"`
}

func FromQuote(q inquiry.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:                q.ID.String(),
		QuotedByCompanyID: q.QuotedByCompanyID.String(),
		UnitPrice:         q.UnitPrice.String(),
		TotalPrice:        q.TotalPrice.String(),
		Currency:          q.Currency,
		Status:            q.Status,
		CreatedAt:         q.CreatedAt,
	}
	if q.ValidUntil.Valid {
		t := q.ValidUntil.Time
		resp.ValidUntil = &t
	}
	if q.DeliveryTerms.Valid {
		resp.DeliveryTerms = q.DeliveryTerms.String
	}
	if q.Notes.Valid {
		resp.Notes = q.Notes.String
	}
	return resp
}

func FromInquiryMessage(m inquiry.InquiryMessage) InquiryMessageResponse {
	resp := InquiryMessageResponse{
		ID:              m.ID.String(),
		SenderCompanyID: m.SenderCompanyID.String(),
		Body:            m.Body,
		IsQuote:         m.IsQuote,
		CreatedAt:       m.CreatedAt,
	}
	if m.QuoteUnitPrice.Valid {
		resp.QuoteUnitPrice = m.QuoteUnitPrice.Decimal.String()
	}
	if m.QuoteValidUntil.Valid {
		t := m.QuoteValidUntil.Time
		resp.QuoteValidUntil = &t
	}
	return resp
}

func FromInquiry(inq inquiry.Inquiry) InquiryResponse {
	resp := InquiryResponse{
		ID:                inq.ID.String(),
		Number:            inq.Number,
		BuyerCompanyID:    inq.BuyerCompanyID.String(),
		SupplierCompanyID: inq.SupplierCompanyID.String(),
		Type:              inq.Type,
		Subject:           inq.Subject,
		Message:           inq.Message,
		Status:            inq.Status,
		ExpiresAt:         inq.ExpiresAt,
		Version:           inq.Version,
		CreatedAt:         inq.CreatedAt,
	}
	if inq.ProductID.Valid {
		resp.ProductID = inq.ProductID.UUID.String()
	}
	if inq.Quantity.Valid {
		q := inq.Quantity.Int64
		resp.Quantity = &q
	}
	if inq.Unit.Valid {
		resp.Unit = inq.Unit.String
	}
	if inq.Specification.Valid {
		resp.Specification = inq.Specification.String
	}
	if inq.BudgetMin.Valid {
		resp.BudgetMin = inq.BudgetMin.Decimal.String()
	}
	if inq.BudgetMax.Valid {
		resp.BudgetMax = inq.BudgetMax.Decimal.String()
	}
	if inq.BudgetCurrency.Valid {
		resp.BudgetCurrency = inq.BudgetCurrency.String
	}
	if inq.ShippingTerms.Valid {
		resp.ShippingTerms = inq.ShippingTerms.String
	}
	if inq.DestinationPort.Valid {
		resp.DestinationPort = inq.DestinationPort.String
	}
	if inq.ConvertedOrderID.Valid {
		resp.ConvertedOrderID = inq.ConvertedOrderID.UUID.String()
	}
	for _, q := range inq.Quotes {
		resp.Quotes = append(resp.Quotes, FromQuote(q))
	}
	for _, m := range inq.Messages {
		resp.Messages = append(resp.Messages, FromInquiryMessage(m))
	}
	return resp
}

func FromInquirySlice(inquiries []inquiry.Inquiry) []InquiryResponse {
	out := make([]InquiryResponse, 0, len(inquiries))
	for _, inq := range inquiries {
		out = append(out, FromInquiry(inq))
	}
	return out
}
