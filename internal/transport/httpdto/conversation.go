package httpdto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/conversation"
)

type CounterpartyResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LogoURL      string `json:"logo_url,omitempty"`
	Country      string `json:"country,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

type PreviewResponse struct {
	Body            string    `json:"body"`
	SenderCompanyID string    `json:"sender_company_id,omitempty"`
	SentAt          time.Time `json:"sent_at"`
	Type            string    `json:"type"`
}

type ConversationResponse struct {
	Kind         string               `json:"kind"`
	Counterparty CounterpartyResponse `json:"counterparty"`
	ThreadKind   string               `json:"thread_kind,omitempty"`
	ThreadID     string               `json:"thread_id,omitempty"`
	Status       string               `json:"status"`
	LastMessage  PreviewResponse      `json:"last_message"`
	UnreadCount  int64                `json:"unread_count"`
	HasMessages  bool                 `json:"has_messages"`
	LastActivity time.Time            `json:"last_activity"`
}

type ListConversationsResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}

type MarkConversationReadRequest struct {
	ThreadKind string `json:"thread_kind" binding:"required"`
	ThreadID   string `json:"thread_id" binding:"required"`
}

func FromConversation(c conversation.Conversation) ConversationResponse {
	resp := ConversationResponse{
		Kind: c.Kind,
		Counterparty: CounterpartyResponse{
			ID:           c.Counterparty.ID.String(),
			Name:         c.Counterparty.Name,
			LogoURL:      c.Counterparty.LogoURL,
			Country:      c.Counterparty.Country,
			ContactEmail: c.Counterparty.ContactEmail,
		},
		Status: c.Status,
		LastMessage: PreviewResponse{
			Body:   c.LastMessage.Body,
			SentAt: c.LastMessage.SentAt,
			Type:   c.LastMessage.Type,
		},
		UnreadCount:  c.UnreadCount,
		HasMessages:  c.HasMessages,
		LastActivity: c.LastActivity,
	}
	if !c.IsPlaceholder() {
		resp.ThreadKind = c.ThreadKind
		resp.ThreadID = c.ThreadID.String()
	}
	if c.LastMessage.SenderCompanyID != uuid.Nil {
		resp.LastMessage.SenderCompanyID = c.LastMessage.SenderCompanyID.String()
	}
	return resp
}

func FromConversationSlice(conversations []conversation.Conversation) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		out = append(out, FromConversation(c))
	}
	return out
}
