package company

import (
	"time"

	"github.com/google/uuid"
)

// User is an account belonging to a company. Authentication itself is
// handled by the identity service; this table backs actor lookups and
// development seeding.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	DisplayName  string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:'MEMBER'"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
