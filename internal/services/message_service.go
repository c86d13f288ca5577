package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/repository"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
)

// MessageService is the message ledger: append-only posting plus delivery
// status mutation. It owns no negotiation logic.
type MessageService struct {
	messageRepo repository.MessageRepository
}

func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

type AttachmentInput struct {
	ObjectKey   string
	FileName    string
	ContentType string
	SizeBytes   int64
}

type PostMessageInput struct {
	Thread             message.ThreadRef
	SenderCompanyID    uuid.UUID
	RecipientCompanyID uuid.UUID
	Body               string
	Attachments        []AttachmentInput
	System             bool
}

// Post appends one ledger entry. The message type is auto-classified: file
// when any attachment is present, else text; System overrides both.
func (s *MessageService) Post(ctx context.Context, input PostMessageInput) (message.Message, error) {
	if !input.Thread.Valid() {
		return message.Message{}, sle_errors.Invalid("message requires a valid thread reference")
	}
	if input.SenderCompanyID == uuid.Nil || input.RecipientCompanyID == uuid.Nil {
		return message.Message{}, sle_errors.Invalid("message requires sender and recipient")
	}
	if input.SenderCompanyID == input.RecipientCompanyID {
		return message.Message{}, sle_errors.Invalid("sender and recipient must differ")
	}
	body := strings.TrimSpace(input.Body)
	if body == "" && len(input.Attachments) == 0 {
		return message.Message{}, sle_errors.Invalid("message requires a body or at least one attachment")
	}

	msgType := message.Classify(body, len(input.Attachments))
	if input.System {
		msgType = message.TypeSystem
	}

	m := message.Message{
		ID:                 uuid.New(),
		ThreadKind:         input.Thread.Kind,
		ThreadID:           input.Thread.ID,
		SenderCompanyID:    input.SenderCompanyID,
		RecipientCompanyID: input.RecipientCompanyID,
		Type:               msgType,
		Status:             message.StatusSent,
		CreatedAt:          time.Now(),
	}
	if body != "" {
		m.Body = sql.NullString{String: body, Valid: true}
	}
	for _, a := range input.Attachments {
		if a.ObjectKey == "" {
			return message.Message{}, sle_errors.Invalid("attachment requires an object key")
		}
		m.Attachments = append(m.Attachments, message.Attachment{
			ID:          uuid.New(),
			MessageID:   m.ID,
			ObjectKey:   a.ObjectKey,
			FileName:    a.FileName,
			ContentType: a.ContentType,
			SizeBytes:   a.SizeBytes,
			CreatedAt:   m.CreatedAt,
		})
	}

	if err := s.messageRepo.Create(ctx, &m); err != nil {
		return message.Message{}, err
	}
	return m, nil
}

// MarkThreadRead bulk-transitions the recipient's unread messages on the
// thread to read with a single timestamp. Idempotent.
func (s *MessageService) MarkThreadRead(ctx context.Context, ref message.ThreadRef, recipientID uuid.UUID) error {
	if !ref.Valid() {
		return sle_errors.Invalid("invalid thread reference")
	}
	if recipientID == uuid.Nil {
		return sle_errors.Invalid("recipient is required")
	}
	_, err := s.messageRepo.MarkThreadRead(ctx, ref, recipientID, time.Now())
	return err
}

func (s *MessageService) CountUnread(ctx context.Context, ref message.ThreadRef, recipientID uuid.UUID) (int64, error) {
	if !ref.Valid() {
		return 0, sle_errors.Invalid("invalid thread reference")
	}
	return s.messageRepo.CountUnread(ctx, ref, recipientID)
}

// LatestMessage returns the newest entry on the thread, or ErrNotFound when
// the thread has no messages yet.
func (s *MessageService) LatestMessage(ctx context.Context, ref message.ThreadRef) (message.Message, error) {
	if !ref.Valid() {
		return message.Message{}, sle_errors.Invalid("invalid thread reference")
	}
	return s.messageRepo.LatestInThread(ctx, ref)
}

func (s *MessageService) ThreadMessages(ctx context.Context, ref message.ThreadRef, page, limit int) ([]message.Message, int64, error) {
	if !ref.Valid() {
		return nil, 0, sle_errors.Invalid("invalid thread reference")
	}
	return s.messageRepo.ListThread(ctx, ref, page, limit)
}

// MarkDelivered advances one message sent -> delivered. Already-read
// messages are left alone; the transition never moves backward.
func (s *MessageService) MarkDelivered(ctx context.Context, messageID uuid.UUID) error {
	m, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if m.Status != message.StatusSent {
		return nil
	}
	return s.messageRepo.AdvanceStatus(ctx, messageID, message.StatusSent, message.StatusDelivered)
}
