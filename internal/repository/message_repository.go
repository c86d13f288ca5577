package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	res := r.db.WithContext(ctx).Create(m)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return sle_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	var m message.Message
	err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message.Message{}, sle_errors.ErrNotFound
		}
		return message.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageRepository) ListThread(ctx context.Context, ref message.ThreadRef, page, limit int) ([]message.Message, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}

	q := r.db.WithContext(ctx).Model(&message.Message{}).
		Where("thread_kind = ? AND thread_id = ?", ref.Kind, ref.ID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []message.Message
	err := q.Preload("Attachments").
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *PostgresMessageRepository) LatestInThread(ctx context.Context, ref message.ThreadRef) (message.Message, error) {
	var m message.Message
	err := r.db.WithContext(ctx).
		Where("thread_kind = ? AND thread_id = ?", ref.Kind, ref.ID).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message.Message{}, sle_errors.ErrNotFound
		}
		return message.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageRepository) CountUnread(ctx context.Context, ref message.ThreadRef, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&message.Message{}).
		Where("thread_kind = ? AND thread_id = ? AND recipient_company_id = ? AND status <> ?",
			ref.Kind, ref.ID, recipientID, message.StatusRead).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresMessageRepository) ThreadHasMessages(ctx context.Context, ref message.ThreadRef) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&message.Message{}).
		Where("thread_kind = ? AND thread_id = ?", ref.Kind, ref.ID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresMessageRepository) MarkThreadRead(ctx context.Context, ref message.ThreadRef, recipientID uuid.UUID, readAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&message.Message{}).
		Where("thread_kind = ? AND thread_id = ? AND recipient_company_id = ? AND status IN ?",
			ref.Kind, ref.ID, recipientID, []string{message.StatusSent, message.StatusDelivered}).
		Updates(map[string]interface{}{
			"status":  message.StatusRead,
			"read_at": readAt,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// AdvanceStatus moves a single message forward. The from-status condition
// keeps the transition monotonic even under concurrent updates.
func (r *PostgresMessageRepository) AdvanceStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	if !message.CanAdvance(from, to) {
		return sle_errors.Transition(from, to)
	}
	updates := map[string]interface{}{"status": to}
	if to == message.StatusRead {
		updates["read_at"] = time.Now()
	}
	res := r.db.WithContext(ctx).Model(&message.Message{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return sle_errors.ErrNotFound
	}
	return nil
}
