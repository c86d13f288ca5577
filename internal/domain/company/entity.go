package company

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Company types
const (
	TypeBuyer    = "buyer"
	TypeSupplier = "supplier"
	TypeBoth     = "both"
)

// Company represents the companies table. The communication core only reads
// identity and display data; account lifecycle is owned elsewhere.
type Company struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Type         string    `gorm:"not null"`
	LogoURL      sql.NullString
	Country      sql.NullString
	ContactEmail sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Company) TableName() string {
	return "companies"
}

// CanSupply reports whether the company may act as the responding side of an
// inquiry.
func (c Company) CanSupply() bool {
	return c.Type == TypeSupplier || c.Type == TypeBoth
}

// Profile is the directory projection handed to callers: display data only.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	LogoURL      string    `json:"logo_url,omitempty"`
	Country      string    `json:"country,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
}

// ProfileOf flattens a Company row into its directory projection.
func ProfileOf(c Company) Profile {
	p := Profile{ID: c.ID, Name: c.Name}
	if c.LogoURL.Valid {
		p.LogoURL = c.LogoURL.String
	}
	if c.Country.Valid {
		p.Country = c.Country.String
	}
	if c.ContactEmail.Valid {
		p.ContactEmail = c.ContactEmail.String
	}
	return p
}
