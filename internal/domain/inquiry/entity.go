package inquiry

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Inquiry statuses
const (
	StatusOpen        = "open"
	StatusResponded   = "responded"
	StatusNegotiating = "negotiating"
	StatusQuoted      = "quoted"
	StatusAccepted    = "accepted"
	StatusRejected    = "rejected"
	StatusExpired     = "expired"
	StatusConverted   = "converted"
	StatusArchived    = "archived"
)

// Inquiry types
const (
	TypeProductInquiry = "product_inquiry"
	TypeQuoteRequest   = "quote_request"
	TypeBulkOrder      = "bulk_order"
	TypeCustomOrder    = "custom_order"
	TypePartnership    = "partnership"
)

// DefaultExpiry is applied when the creator does not supply an expiry.
const DefaultExpiry = 30 * 24 * time.Hour

// Inquiry represents the inquiries table. Buyer and supplier are immutable
// after creation; Version is the optimistic concurrency token checked on
// every mutation.
type Inquiry struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number            string    `gorm:"uniqueIndex;not null"`
	BuyerCompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SupplierCompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID         uuid.NullUUID
	Type              string `gorm:"not null"`
	Subject           string `gorm:"not null"`
	Message           string `gorm:"not null"`
	Quantity          sql.NullInt64
	Unit              sql.NullString
	Specification     sql.NullString
	BudgetMin         decimal.NullDecimal `gorm:"type:numeric"`
	BudgetMax         decimal.NullDecimal `gorm:"type:numeric"`
	BudgetCurrency    sql.NullString
	ShippingTerms     sql.NullString
	DestinationPort   sql.NullString
	Status            string `gorm:"not null;index"`
	ExpiresAt         time.Time
	BuyerRead         bool `gorm:"default:false"`
	SupplierRead      bool `gorm:"default:false"`
	ConvertedOrderID  uuid.NullUUID
	Version           int64 `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Quotes   []Quote          `gorm:"foreignKey:InquiryID"`
	Messages []InquiryMessage `gorm:"foreignKey:InquiryID"`
}

// Quote statuses
const (
	QuoteStatusPending  = "pending"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
	QuoteStatusExpired  = "expired"
)

// Quote represents the inquiry_quotes table. A quote has no identity outside
// its inquiry.
type Quote struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	InquiryID         uuid.UUID `gorm:"type:uuid;not null;index"`
	QuotedByCompanyID uuid.UUID `gorm:"type:uuid;not null"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric;not null"`
	TotalPrice        decimal.Decimal `gorm:"type:numeric;not null"`
	Currency          string          `gorm:"not null"`
	ValidUntil        sql.NullTime
	DeliveryTerms     sql.NullString
	Notes             sql.NullString
	Status            string `gorm:"not null"`
	CreatedAt         time.Time
}

// InquiryMessage represents the inquiry_messages table: the lightweight
// inline transcript shown on the inquiry page. The message ledger remains
// authoritative for read/unread tracking.
type InquiryMessage struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	InquiryID       uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderCompanyID uuid.UUID `gorm:"type:uuid;not null"`
	Body            string
	IsQuote         bool                `gorm:"default:false"`
	QuoteUnitPrice  decimal.NullDecimal `gorm:"type:numeric"`
	QuoteValidUntil sql.NullTime
	CreatedAt       time.Time
}

// Sequence represents the inquiry_sequences table: one row per year, bumped
// inside the creation transaction to allocate inquiry numbers.
type Sequence struct {
	Year      int   `gorm:"primaryKey"`
	LastValue int64 `gorm:"not null"`
	UpdatedAt time.Time
}

func (Inquiry) TableName() string {
	return "inquiries"
}

func (Quote) TableName() string {
	return "inquiry_quotes"
}

func (InquiryMessage) TableName() string {
	return "inquiry_messages"
}

func (Sequence) TableName() string {
	return "inquiry_sequences"
}

// FormatNumber renders the human-readable inquiry number, e.g. INQ-2025-000005.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("INQ-%d-%06d", year, seq)
}

// ValidType reports whether t is a known inquiry type.
func ValidType(t string) bool {
	switch t {
	case TypeProductInquiry, TypeQuoteRequest, TypeBulkOrder, TypeCustomOrder, TypePartnership:
		return true
	}
	return false
}

// Terminal reports whether status admits no further transitions or quotes.
func Terminal(status string) bool {
	switch status {
	case StatusConverted, StatusRejected, StatusExpired, StatusArchived:
		return true
	}
	return false
}

// transitions holds the allowed status moves. Archive is allowed from any
// non-terminal status and handled separately in CanTransition.
var transitions = map[string][]string{
	StatusOpen:        {StatusResponded, StatusNegotiating, StatusQuoted, StatusRejected, StatusExpired},
	StatusResponded:   {StatusNegotiating, StatusQuoted, StatusRejected, StatusExpired},
	StatusNegotiating: {StatusQuoted, StatusRejected, StatusExpired},
	StatusQuoted:      {StatusNegotiating, StatusAccepted, StatusRejected, StatusExpired},
	StatusAccepted:    {StatusConverted, StatusRejected, StatusExpired},
}

// CanTransition reports whether a move from one status to another is legal.
// converted is reachable only from accepted. Archival is the one move allowed
// out of an otherwise terminal status: old converted or rejected inquiries
// may still be filed away.
func CanTransition(from, to string) bool {
	if to == StatusArchived {
		return from != StatusArchived
	}
	if Terminal(from) {
		return false
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AcceptedQuote returns the accepted quote, if any.
func (i *Inquiry) AcceptedQuote() *Quote {
	for idx := range i.Quotes {
		if i.Quotes[idx].Status == QuoteStatusAccepted {
			return &i.Quotes[idx]
		}
	}
	return nil
}

// QuoteByID returns the quote with the given id, if present.
func (i *Inquiry) QuoteByID(id uuid.UUID) *Quote {
	for idx := range i.Quotes {
		if i.Quotes[idx].ID == id {
			return &i.Quotes[idx]
		}
	}
	return nil
}

// CounterpartyOf returns the opposing company from the perspective of actor,
// or uuid.Nil when actor is not a party to the inquiry.
func (i *Inquiry) CounterpartyOf(actor uuid.UUID) uuid.UUID {
	switch actor {
	case i.BuyerCompanyID:
		return i.SupplierCompanyID
	case i.SupplierCompanyID:
		return i.BuyerCompanyID
	}
	return uuid.Nil
}

// Expired reports whether the inquiry is past its expiry and still sweepable.
func (i *Inquiry) Expired(now time.Time) bool {
	return !Terminal(i.Status) && now.After(i.ExpiresAt)
}
