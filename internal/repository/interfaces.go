package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/company"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/inquiry"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/order"
)

type CompanyRepository interface {
	Create(ctx context.Context, c *company.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (company.Company, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]company.Company, error)
}

type InquiryRepository interface {
	// Create allocates the year-scoped inquiry number and inserts the row in
	// one transaction. The allocated number is written back to inq.
	Create(ctx context.Context, inq *inquiry.Inquiry) error
	GetByID(ctx context.Context, id uuid.UUID) (inquiry.Inquiry, error)
	GetByNumber(ctx context.Context, number string) (inquiry.Inquiry, error)
	ListByParty(ctx context.Context, companyID uuid.UUID, page, limit int) ([]inquiry.Inquiry, int64, error)

	// UpdateStatus is version-conditioned: it fails with ErrConflict when the
	// row's version no longer matches fromVersion.
	UpdateStatus(ctx context.Context, id uuid.UUID, fromVersion int64, status string) error
	SetConverted(ctx context.Context, id uuid.UUID, fromVersion int64, orderID uuid.UUID) error
	SetReadFlag(ctx context.Context, id uuid.UUID, buyerSide bool, read bool) error

	AddQuote(ctx context.Context, q *inquiry.Quote) error
	UpdateQuoteStatus(ctx context.Context, quoteID uuid.UUID, status string) error
	AddMessage(ctx context.Context, m *inquiry.InquiryMessage) error

	ListExpiredCandidates(ctx context.Context, now time.Time, limit int) ([]inquiry.Inquiry, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (message.Message, error)
	ListThread(ctx context.Context, ref message.ThreadRef, page, limit int) ([]message.Message, int64, error)
	LatestInThread(ctx context.Context, ref message.ThreadRef) (message.Message, error)
	CountUnread(ctx context.Context, ref message.ThreadRef, recipientID uuid.UUID) (int64, error)
	ThreadHasMessages(ctx context.Context, ref message.ThreadRef) (bool, error)

	// MarkThreadRead transitions every unread message addressed to the
	// recipient on the thread to read, stamping one shared timestamp.
	// Returns the number of rows touched; zero on an already-read thread.
	MarkThreadRead(ctx context.Context, ref message.ThreadRef, recipientID uuid.UUID, readAt time.Time) (int64, error)
	AdvanceStatus(ctx context.Context, id uuid.UUID, from, to string) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (order.Order, error)
	ListByParty(ctx context.Context, companyID uuid.UUID) ([]order.Order, error)
}
