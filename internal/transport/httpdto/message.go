package httpdto

import (
	"time"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
)

type PostMessageRequest struct {
	ThreadKind         string              `json:"thread_kind" binding:"required"`
	ThreadID           string              `json:"thread_id" binding:"required"`
	RecipientCompanyID string              `json:"recipient_company_id" binding:"required"`
	Body               string              `json:"body"`
	Attachments        []AttachmentRequest `json:"attachments"`
}

type AttachmentResponse struct {
	ID          string `json:"id"`
	ObjectKey   string `json:"object_key"`
	FileName    string `json:"file_name,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
}

type MessageResponse struct {
	ID                 string               `json:"id"`
	ThreadKind         string               `json:"thread_kind"`
	ThreadID           string               `json:"thread_id"`
	SenderCompanyID    string               `json:"sender_company_id"`
	RecipientCompanyID string               `json:"recipient_company_id"`
	Body               string               `json:"body,omitempty"`
	Type               string               `json:"type"`
	Status             string               `json:"status"`
	CreatedAt          time.Time            `json:"created_at"`
	ReadAt             *time.Time           `json:"read_at,omitempty"`
	Attachments        []AttachmentResponse `json:"attachments,omitempty"`
}

type ListMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int64             `json:"total"`
}

func FromMessage(m message.Message) MessageResponse {
	resp := MessageResponse{
		ID:                 m.ID.String(),
		ThreadKind:         m.ThreadKind,
		ThreadID:           m.ThreadID.String(),
		SenderCompanyID:    m.SenderCompanyID.String(),
		RecipientCompanyID: m.RecipientCompanyID.String(),
		Type:               m.Type,
		Status:             m.Status,
		CreatedAt:          m.CreatedAt,
	}
	if m.Body.Valid {
		resp.Body = m.Body.String
	}
	if m.ReadAt.Valid {
		t := m.ReadAt.Time
		resp.ReadAt = &t
	}
	for _, a := range m.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID:          a.ID.String(),
			ObjectKey:   a.ObjectKey,
			FileName:    a.FileName,
			ContentType: a.ContentType,
			SizeBytes:   a.SizeBytes,
		})
	}
	return resp
}

func FromMessageSlice(messages []message.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, FromMessage(m))
	}
	return out
}
