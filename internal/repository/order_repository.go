package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/order"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
)

type PostgresOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) Create(ctx context.Context, o *order.Order) error {
	res := r.db.WithContext(ctx).Create(o)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return sle_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.Order{}, sle_errors.ErrNotFound
		}
		return order.Order{}, err
	}
	return o, nil
}

func (r *PostgresOrderRepository) ListByParty(ctx context.Context, companyID uuid.UUID) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).
		Where("buyer_company_id = ? OR supplier_company_id = ?", companyID, companyID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
