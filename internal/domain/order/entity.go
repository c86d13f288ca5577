package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses surfaced on order-anchored threads. Order lifecycle itself
// is owned by the order subsystem; the communication core only reads these.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Order represents the orders table.
type Order struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number            string    `gorm:"uniqueIndex;not null"`
	BuyerCompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SupplierCompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID         uuid.NullUUID
	Quantity          int64
	UnitPrice         decimal.Decimal `gorm:"type:numeric"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric"`
	Currency          string
	Status            string `gorm:"not null"`
	SourceInquiryID   uuid.NullUUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Order) TableName() string {
	return "orders"
}

// CounterpartyOf returns the opposing company from the perspective of actor,
// or uuid.Nil when actor is not a party to the order.
func (o *Order) CounterpartyOf(actor uuid.UUID) uuid.UUID {
	switch actor {
	case o.BuyerCompanyID:
		return o.SupplierCompanyID
	case o.SupplierCompanyID:
		return o.BuyerCompanyID
	}
	return uuid.Nil
}
