package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/inquiry"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
)

type PostgresInquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &PostgresInquiryRepository{db: db}
}

// Create allocates the next year-scoped sequence value under a row lock and
// inserts the inquiry with its formatted number, all in one transaction.
func (r *PostgresInquiryRepository) Create(ctx context.Context, inq *inquiry.Inquiry) error {
	year := inq.CreatedAt.Year()
	if year == 1 {
		year = time.Now().Year()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq inquiry.Sequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("year = ?", year).
			First(&seq).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			seq = inquiry.Sequence{Year: year, LastValue: 0}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		seq.LastValue++
		seq.UpdatedAt = time.Now()
		if err := tx.Save(&seq).Error; err != nil {
			return err
		}

		inq.Number = inquiry.FormatNumber(year, seq.LastValue)
		if err := tx.Create(inq).Error; err != nil {
			if isUniqueViolation(err) {
				return sle_errors.ErrAlreadyExists
			}
			return err
		}
		return nil
	})
}

func (r *PostgresInquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (inquiry.Inquiry, error) {
	var inq inquiry.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Quotes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ?", id).
		First(&inq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return inquiry.Inquiry{}, sle_errors.ErrNotFound
		}
		return inquiry.Inquiry{}, err
	}
	return inq, nil
}

func (r *PostgresInquiryRepository) GetByNumber(ctx context.Context, number string) (inquiry.Inquiry, error) {
	var inq inquiry.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Quotes").
		Preload("Messages").
		Where("number = ?", number).
		First(&inq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return inquiry.Inquiry{}, sle_errors.ErrNotFound
		}
		return inquiry.Inquiry{}, err
	}
	return inq, nil
}

func (r *PostgresInquiryRepository) ListByParty(ctx context.Context, companyID uuid.UUID, page, limit int) ([]inquiry.Inquiry, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}

	q := r.db.WithContext(ctx).Model(&inquiry.Inquiry{}).
		Where("buyer_company_id = ? OR supplier_company_id = ?", companyID, companyID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var inquiries []inquiry.Inquiry
	err := q.Preload("Quotes").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		return nil, 0, err
	}
	return inquiries, total, nil
}

// UpdateStatus bumps the status and version only when the version still
// matches; a vanished row or a concurrent writer both surface as ErrConflict
// unless the row is truly gone.
func (r *PostgresInquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, fromVersion int64, status string) error {
	res := r.db.WithContext(ctx).
		Model(&inquiry.Inquiry{}).
		Where("id = ? AND version = ?", id, fromVersion).
		Updates(map[string]interface{}{
			"status":     status,
			"version":    fromVersion + 1,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.conflictOrNotFound(ctx, id)
	}
	return nil
}

func (r *PostgresInquiryRepository) SetConverted(ctx context.Context, id uuid.UUID, fromVersion int64, orderID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&inquiry.Inquiry{}).
		Where("id = ? AND version = ?", id, fromVersion).
		Updates(map[string]interface{}{
			"status":             inquiry.StatusConverted,
			"converted_order_id": orderID,
			"version":            fromVersion + 1,
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.conflictOrNotFound(ctx, id)
	}
	return nil
}

// SetReadFlag flips the per-party read flag. Not version-conditioned: read
// flags race harmlessly and must not fail a concurrent quote action.
func (r *PostgresInquiryRepository) SetReadFlag(ctx context.Context, id uuid.UUID, buyerSide bool, read bool) error {
	column := "supplier_read"
	if buyerSide {
		column = "buyer_read"
	}
	res := r.db.WithContext(ctx).
		Model(&inquiry.Inquiry{}).
		Where("id = ?", id).
		Update(column, read)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return sle_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresInquiryRepository) AddQuote(ctx context.Context, q *inquiry.Quote) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *PostgresInquiryRepository) UpdateQuoteStatus(ctx context.Context, quoteID uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&inquiry.Quote{}).
		Where("id = ?", quoteID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return sle_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresInquiryRepository) AddMessage(ctx context.Context, m *inquiry.InquiryMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresInquiryRepository) ListExpiredCandidates(ctx context.Context, now time.Time, limit int) ([]inquiry.Inquiry, error) {
	if limit <= 0 {
		limit = 100
	}
	var inquiries []inquiry.Inquiry
	err := r.db.WithContext(ctx).
		Where("expires_at < ? AND status NOT IN ?", now, []string{
			inquiry.StatusConverted,
			inquiry.StatusRejected,
			inquiry.StatusExpired,
			inquiry.StatusArchived,
		}).
		Order("expires_at ASC").
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *PostgresInquiryRepository) conflictOrNotFound(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inquiry.Inquiry{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return sle_errors.ErrNotFound
	}
	return sle_errors.ErrConflict
}
