package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/company"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
)

type PostgresCompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	res := r.db.WithContext(ctx).Create(c)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(res.Error) {
			return sle_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	var c company.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return company.Company{}, sle_errors.ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func (r *PostgresCompanyRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]company.Company, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var companies []company.Company
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}
