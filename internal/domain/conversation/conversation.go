package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/company"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
)

// Conversation kinds. A placeholder is synthesized for a counterparty with no
// thread history and carries no thread identity.
const (
	KindThread      = "thread"
	KindPlaceholder = "placeholder"
)

// StatusNew is the surfaced status of a placeholder conversation.
const StatusNew = "new"

// PlaceholderGreeting is the system-authored preview shown on a placeholder.
const PlaceholderGreeting = "Start the conversation by sending your first message."

// Preview is the last-message summary surfaced per conversation.
type Preview struct {
	Body            string    `json:"body"`
	SenderCompanyID uuid.UUID `json:"sender_company_id"`
	SentAt          time.Time `json:"sent_at"`
	Type            string    `json:"type"`
}

// Conversation is the derived per-counterparty inbox entry. It is computed
// fresh on every read and never persisted. Thread identity is only set on
// KindThread entries; the constructors keep the two variants apart.
type Conversation struct {
	Kind         string          `json:"kind"`
	Counterparty company.Profile `json:"counterparty"`
	ThreadKind   string          `json:"thread_kind,omitempty"`
	ThreadID     uuid.UUID       `json:"thread_id,omitempty"`
	Status       string          `json:"status"`
	LastMessage  Preview         `json:"last_message"`
	UnreadCount  int64           `json:"unread_count"`
	HasMessages  bool            `json:"has_messages"`
	LastActivity time.Time       `json:"last_activity"`
}

// FromThread builds a thread-backed conversation entry.
func FromThread(counterparty company.Profile, ref message.ThreadRef, status string, preview Preview, unread int64, hasMessages bool, lastActivity time.Time) Conversation {
	return Conversation{
		Kind:         KindThread,
		Counterparty: counterparty,
		ThreadKind:   ref.Kind,
		ThreadID:     ref.ID,
		Status:       status,
		LastMessage:  preview,
		UnreadCount:  unread,
		HasMessages:  hasMessages,
		LastActivity: lastActivity,
	}
}

// Placeholder builds the synthesized entry for a counterparty without any
// thread: zero unread, a system-authored invitation preview, status new.
func Placeholder(counterparty company.Profile, now time.Time) Conversation {
	return Conversation{
		Kind:         KindPlaceholder,
		Counterparty: counterparty,
		Status:       StatusNew,
		LastMessage: Preview{
			Body:   PlaceholderGreeting,
			SentAt: now,
			Type:   message.TypeSystem,
		},
		UnreadCount:  0,
		HasMessages:  false,
		LastActivity: now,
	}
}

// IsPlaceholder reports whether the entry has no backing thread.
func (c Conversation) IsPlaceholder() bool {
	return c.Kind == KindPlaceholder
}
