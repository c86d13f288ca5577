package message

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Thread kinds: every message belongs to exactly one order- or
// inquiry-anchored thread.
const (
	ThreadOrder   = "order"
	ThreadInquiry = "inquiry"
)

// Message types
const (
	TypeText   = "text"
	TypeFile   = "file"
	TypeSystem = "system"
)

// Delivery statuses; transitions are monotonic sent -> delivered -> read.
const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusRead      = "read"
)

// ThreadRef identifies the parent thread of a message.
type ThreadRef struct {
	Kind string
	ID   uuid.UUID
}

// Valid reports whether the ref names a known thread kind with a real id.
func (r ThreadRef) Valid() bool {
	return (r.Kind == ThreadOrder || r.Kind == ThreadInquiry) && r.ID != uuid.Nil
}

// Message represents the messages table: one ledger entry per posted message.
type Message struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ThreadKind         string    `gorm:"not null;index:idx_messages_thread"`
	ThreadID           uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_thread"`
	SenderCompanyID    uuid.UUID `gorm:"type:uuid;not null"`
	RecipientCompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Body               sql.NullString
	Type               string `gorm:"not null"`
	Status             string `gorm:"not null"`
	CreatedAt          time.Time
	ReadAt             sql.NullTime

	Attachments []Attachment `gorm:"foreignKey:MessageID"`
}

// Attachment represents the message_attachments table.
type Attachment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MessageID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ObjectKey   string    `gorm:"not null"`
	FileName    string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}

func (Message) TableName() string {
	return "messages"
}

func (Attachment) TableName() string {
	return "message_attachments"
}

// Thread returns the message's parent thread ref.
func (m *Message) Thread() ThreadRef {
	return ThreadRef{Kind: m.ThreadKind, ID: m.ThreadID}
}

// statusRank orders delivery statuses for the monotonic guard.
var statusRank = map[string]int{
	StatusSent:      0,
	StatusDelivered: 1,
	StatusRead:      2,
}

// CanAdvance reports whether a status move goes strictly forward.
func CanAdvance(from, to string) bool {
	fr, ok := statusRank[from]
	if !ok {
		return false
	}
	tr, ok := statusRank[to]
	if !ok {
		return false
	}
	return tr > fr
}

// Classify picks the message type: file when any attachment is present,
// regardless of accompanying text.
func Classify(body string, attachments int) string {
	if attachments > 0 {
		return TypeFile
	}
	return TypeText
}
