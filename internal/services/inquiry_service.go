package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/inquiry"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/repository"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/logger"
)

// InquiryService owns the inquiry aggregate and its negotiation lifecycle.
// Every mutating operation takes the acting company explicitly and checks
// the aggregate version it read, failing with ErrConflict on a lost race.
type InquiryService struct {
	inquiryRepo repository.InquiryRepository
	companyRepo repository.CompanyRepository
	messages    *MessageService
	logger      *logger.Logger
}

func NewInquiryService(inquiryRepo repository.InquiryRepository, companyRepo repository.CompanyRepository, messages *MessageService, l *logger.Logger) *InquiryService {
	return &InquiryService{
		inquiryRepo: inquiryRepo,
		companyRepo: companyRepo,
		messages:    messages,
		logger:      l,
	}
}

type CreateInquiryInput struct {
	BuyerCompanyID    uuid.UUID
	SupplierCompanyID uuid.UUID
	ProductID         uuid.NullUUID
	Type              string
	Subject           string
	Message           string
	Quantity          sql.NullInt64
	Unit              string
	Specification     string
	BudgetMin         decimal.NullDecimal
	BudgetMax         decimal.NullDecimal
	BudgetCurrency    string
	ShippingTerms     string
	DestinationPort   string
	ExpiresAt         time.Time
}

// Create opens a new inquiry: validates the parties and required content,
// allocates the year-scoped number, and posts the initial message to both
// the inline transcript and the ledger. Status always starts at open.
func (s *InquiryService) Create(ctx context.Context, input CreateInquiryInput) (inquiry.Inquiry, error) {
	if input.BuyerCompanyID == uuid.Nil || input.SupplierCompanyID == uuid.Nil {
		return inquiry.Inquiry{}, sle_errors.Invalid("inquiry requires buyer and supplier")
	}
	if input.BuyerCompanyID == input.SupplierCompanyID {
		return inquiry.Inquiry{}, sle_errors.Invalid("buyer and supplier must differ")
	}
	if strings.TrimSpace(input.Subject) == "" {
		return inquiry.Inquiry{}, sle_errors.Invalid("subject is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return inquiry.Inquiry{}, sle_errors.Invalid("message is required")
	}
	if !inquiry.ValidType(input.Type) {
		return inquiry.Inquiry{}, sle_errors.Invalid("unknown inquiry type %q", input.Type)
	}

	supplier, err := s.companyRepo.GetByID(ctx, input.SupplierCompanyID)
	if err != nil {
		return inquiry.Inquiry{}, err
	}
	if !supplier.CanSupply() {
		return inquiry.Inquiry{}, sle_errors.Invalid("company %s cannot act as a supplier", supplier.Name)
	}

	now := time.Now()
	expiresAt := input.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(inquiry.DefaultExpiry)
	}

	inq := inquiry.Inquiry{
		ID:                uuid.New(),
		BuyerCompanyID:    input.BuyerCompanyID,
		SupplierCompanyID: input.SupplierCompanyID,
		ProductID:         input.ProductID,
		Type:              input.Type,
		Subject:           strings.TrimSpace(input.Subject),
		Message:           strings.TrimSpace(input.Message),
		Quantity:          input.Quantity,
		BudgetMin:         input.BudgetMin,
		BudgetMax:         input.BudgetMax,
		Status:            inquiry.StatusOpen,
		ExpiresAt:         expiresAt,
		BuyerRead:         true,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if input.Unit != "" {
		inq.Unit = sql.NullString{String: input.Unit, Valid: true}
	}
	if input.Specification != "" {
		inq.Specification = sql.NullString{String: input.Specification, Valid: true}
	}
	if input.BudgetCurrency != "" {
		inq.BudgetCurrency = sql.NullString{String: input.BudgetCurrency, Valid: true}
	}
	if input.ShippingTerms != "" {
		inq.ShippingTerms = sql.NullString{String: input.ShippingTerms, Valid: true}
	}
	if input.DestinationPort != "" {
		inq.DestinationPort = sql.NullString{String: input.DestinationPort, Valid: true}
	}

	if err := s.inquiryRepo.Create(ctx, &inq); err != nil {
		return inquiry.Inquiry{}, err
	}

	// The opening message is part of the transcript from day one; the ledger
	// copy is what makes the thread surface in the supplier's inbox.
	_ = s.inquiryRepo.AddMessage(ctx, &inquiry.InquiryMessage{
		ID:              uuid.New(),
		InquiryID:       inq.ID,
		SenderCompanyID: inq.BuyerCompanyID,
		Body:            inq.Message,
		CreatedAt:       now,
	})
	if _, err := s.messages.Post(ctx, PostMessageInput{
		Thread:             message.ThreadRef{Kind: message.ThreadInquiry, ID: inq.ID},
		SenderCompanyID:    inq.BuyerCompanyID,
		RecipientCompanyID: inq.SupplierCompanyID,
		Body:               inq.Message,
	}); err != nil && s.logger != nil {
		s.logger.Warnf("inquiry %s created but opening ledger entry failed: %v", inq.Number, err)
	}

	return inq, nil
}

func (s *InquiryService) GetByID(ctx context.Context, id uuid.UUID) (inquiry.Inquiry, error) {
	return s.inquiryRepo.GetByID(ctx, id)
}

func (s *InquiryService) GetByNumber(ctx context.Context, number string) (inquiry.Inquiry, error) {
	return s.inquiryRepo.GetByNumber(ctx, number)
}

func (s *InquiryService) ListByParty(ctx context.Context, companyID uuid.UUID, page, limit int) ([]inquiry.Inquiry, int64, error) {
	if companyID == uuid.Nil {
		return nil, 0, sle_errors.Invalid("company is required")
	}
	return s.inquiryRepo.ListByParty(ctx, companyID, page, limit)
}

type AppendMessageInput struct {
	Body            string
	Attachments     []AttachmentInput
	IsQuote         bool
	QuoteUnitPrice  decimal.NullDecimal
	QuoteValidUntil sql.NullTime
}

// AppendMessage records a message on the inquiry thread, in both the inline
// transcript and the ledger. The first message after creation advances an
// open inquiry to responded. A quote-flagged message folds the quote
// metadata inline for display; it does not replace AddQuote.
func (s *InquiryService) AppendMessage(ctx context.Context, inquiryID, actor uuid.UUID, input AppendMessageInput) (message.Message, error) {
	inq, err := s.inquiryRepo.GetByID(ctx, inquiryID)
	if err != nil {
		return message.Message{}, err
	}
	recipient := inq.CounterpartyOf(actor)
	if recipient == uuid.Nil {
		return message.Message{}, sle_errors.ErrForbidden
	}
	if inq.Status == inquiry.StatusArchived {
		return message.Message{}, sle_errors.Transition(inq.Status, inq.Status)
	}
	if input.IsQuote {
		if inquiry.Terminal(inq.Status) {
			return message.Message{}, sle_errors.Transition(inq.Status, inquiry.StatusQuoted)
		}
		if !input.QuoteUnitPrice.Valid {
			return message.Message{}, sle_errors.Invalid("quote message requires quote details")
		}
	}

	posted, err := s.messages.Post(ctx, PostMessageInput{
		Thread:             message.ThreadRef{Kind: message.ThreadInquiry, ID: inq.ID},
		SenderCompanyID:    actor,
		RecipientCompanyID: recipient,
		Body:               input.Body,
		Attachments:        input.Attachments,
	})
	if err != nil {
		return message.Message{}, err
	}

	im := inquiry.InquiryMessage{
		ID:              uuid.New(),
		InquiryID:       inq.ID,
		SenderCompanyID: actor,
		Body:            strings.TrimSpace(input.Body),
		IsQuote:         input.IsQuote,
		QuoteUnitPrice:  input.QuoteUnitPrice,
		QuoteValidUntil: input.QuoteValidUntil,
		CreatedAt:       posted.CreatedAt,
	}
	if err := s.inquiryRepo.AddMessage(ctx, &im); err != nil {
		return message.Message{}, err
	}

	if inq.Status == inquiry.StatusOpen {
		if err := s.inquiryRepo.UpdateStatus(ctx, inq.ID, inq.Version, inquiry.StatusResponded); err != nil {
			return message.Message{}, err
		}
	}

	// New activity makes the counterparty's copy unread again.
	_ = s.inquiryRepo.SetReadFlag(ctx, inq.ID, recipient == inq.BuyerCompanyID, false)

	return posted, nil
}

type AddQuoteInput struct {
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	Currency      string
	ValidUntil    sql.NullTime
	DeliveryTerms string
	Notes         string
}

// AddQuote appends a pending quote and moves the inquiry to quoted. Multiple
// quotes may coexist; the newest is not automatically canonical.
func (s *InquiryService) AddQuote(ctx context.Context, inquiryID, actor uuid.UUID, input AddQuoteInput) (inquiry.Quote, error) {
	inq, err := s.inquiryRepo.GetByID(ctx, inquiryID)
	if err != nil {
		return inquiry.Quote{}, err
	}
	if actor != inq.SupplierCompanyID {
		return inquiry.Quote{}, sle_errors.ErrForbidden
	}
	if inquiry.Terminal(inq.Status) {
		return inquiry.Quote{}, sle_errors.Transition(inq.Status, inquiry.StatusQuoted)
	}
	if inq.Status != inquiry.StatusQuoted && !inquiry.CanTransition(inq.Status, inquiry.StatusQuoted) {
		return inquiry.Quote{}, sle_errors.Transition(inq.Status, inquiry.StatusQuoted)
	}
	if input.UnitPrice.Sign() <= 0 || input.TotalPrice.Sign() <= 0 {
		return inquiry.Quote{}, sle_errors.Invalid("quote prices must be positive")
	}
	if input.Currency == "" {
		return inquiry.Quote{}, sle_errors.Invalid("quote currency is required")
	}

	q := inquiry.Quote{
		ID:                uuid.New(),
		InquiryID:         inq.ID,
		QuotedByCompanyID: actor,
		UnitPrice:         input.UnitPrice,
		TotalPrice:        input.TotalPrice,
		Currency:          input.Currency,
		ValidUntil:        input.ValidUntil,
		Status:            inquiry.QuoteStatusPending,
		CreatedAt:         time.Now(),
	}
	if input.DeliveryTerms != "" {
		q.DeliveryTerms = sql.NullString{String: input.DeliveryTerms, Valid: true}
	}
	if input.Notes != "" {
		q.Notes = sql.NullString{String: input.Notes, Valid: true}
	}

	if err := s.inquiryRepo.AddQuote(ctx, &q); err != nil {
		return inquiry.Quote{}, err
	}
	if inq.Status != inquiry.StatusQuoted {
		if err := s.inquiryRepo.UpdateStatus(ctx, inq.ID, inq.Version, inquiry.StatusQuoted); err != nil {
			return inquiry.Quote{}, err
		}
	}
	_ = s.inquiryRepo.SetReadFlag(ctx, inq.ID, true, false)

	return q, nil
}

// AcceptQuote marks the quote and the inquiry accepted. Accepting the same
// quote twice is a no-op; sibling pending quotes are left untouched.
// TODO: decide whether accepting should auto-reject sibling pending quotes;
// today they stay pending and must be rejected explicitly.
func (s *InquiryService) AcceptQuote(ctx context.Context, inquiryID, quoteID, actor uuid.UUID) error {
	inq, err := s.inquiryRepo.GetByID(ctx, inquiryID)
	if err != nil {
		return err
	}
	q := inq.QuoteByID(quoteID)
	if q == nil {
		return sle_errors.ErrNotFound
	}
	if inq.CounterpartyOf(actor) == uuid.Nil || actor == q.QuotedByCompanyID {
		return sle_errors.ErrForbidden
	}

	// Idempotency guard: re-accepting the accepted quote must not re-apply
	// any side effect.
	if q.Status == inquiry.QuoteStatusAccepted && inq.Status == inquiry.StatusAccepted {
		return nil
	}
	if q.Status != inquiry.QuoteStatusPending {
		return sle_errors.Transition(q.Status, inquiry.QuoteStatusAccepted)
	}
	if accepted := inq.AcceptedQuote(); accepted != nil {
		return sle_errors.Transition(inq.Status, inquiry.StatusAccepted)
	}
	if !inquiry.CanTransition(inq.Status, inquiry.StatusAccepted) {
		return sle_errors.Transition(inq.Status, inquiry.StatusAccepted)
	}

	if err := s.inquiryRepo.UpdateStatus(ctx, inq.ID, inq.Version, inquiry.StatusAccepted); err != nil {
		return err
	}
	return s.inquiryRepo.UpdateQuoteStatus(ctx, q.ID, inquiry.QuoteStatusAccepted)
}

// RejectQuote rejects only the targeted quote. The inquiry-level status is
// deliberately untouched: other quotes may still be pending.
func (s *InquiryService) RejectQuote(ctx context.Context, inquiryID, quoteID, actor uuid.UUID) error {
	inq, err := s.inquiryRepo.GetByID(ctx, inquiryID)
	if err != nil {
		return err
	}
	q := inq.QuoteByID(quoteID)
	if q == nil {
		return sle_errors.ErrNotFound
	}
	if inq.CounterpartyOf(actor) == uuid.Nil {
		return sle_errors.ErrForbidden
	}
	if q.Status == inquiry.QuoteStatusRejected {
		return nil
	}
	if q.Status == inquiry.QuoteStatusAccepted {
		return sle_errors.Transition(q.Status, inquiry.QuoteStatusRejected)
	}
	return s.inquiryRepo.UpdateQuoteStatus(ctx, q.ID, inquiry.QuoteStatusRejected)
}

// ConvertToOrder is the terminal transition out of accepted. It records the
// order back-reference; it never creates the order itself.
func (s *InquiryService) ConvertToOrder(ctx context.Context, inquiryID, orderID, actor uuid.UUID) error {
	inq, err := s.inquiryRepo.GetByID(ctx, inquiryID)
	if err != nil {
		return err
	}
	if inq.CounterpartyOf(actor) == uuid.Nil {
		return sle_errors.ErrForbidden
	}
	if inq.Status != inquiry.StatusAccepted {
		return sle_errors.Transition(inq.Status, inquiry.StatusConverted)
	}
	if orderID == uuid.Nil {
		return sle_errors.Invalid("order reference is required")
	}
	return s.inquiryRepo.SetConverted(ctx, inq.ID, inq.Version, orderID)
}

// Reject is the explicit inquiry-level reject action, terminal from any
// non-terminal status.
func (s *InquiryService) Reject(ctx context.Context, inquiryID, actor uuid.UUID) error {
	return s.UpdateStatus(ctx, inquiryID, actor, inquiry.StatusRejected)
}

// Archive files the inquiry away. Terminal.
func (s *InquiryService) Archive(ctx context.Context, inquiryID, actor uuid.UUID) error {
	return s.UpdateStatus(ctx, inquiryID, actor, inquiry.StatusArchived)
}

// UpdateStatus applies a manual transition, validated against the transition
// table. This is the only path into negotiating.
func (s *InquiryService) UpdateStatus(ctx context.Context, inquiryID, actor uuid.UUID, to string) error {
	inq, err := s.inquiryRepo.GetByID(ctx, inquiryID)
	if err != nil {
		return err
	}
	if inq.CounterpartyOf(actor) == uuid.Nil {
		return sle_errors.ErrForbidden
	}
	if !inquiry.CanTransition(inq.Status, to) {
		return sle_errors.Transition(inq.Status, to)
	}
	return s.inquiryRepo.UpdateStatus(ctx, inq.ID, inq.Version, to)
}

// MarkRead sets the acting party's read flag and settles the ledger's unread
// messages on the inquiry thread.
func (s *InquiryService) MarkRead(ctx context.Context, inquiryID, actor uuid.UUID) error {
	inq, err := s.inquiryRepo.GetByID(ctx, inquiryID)
	if err != nil {
		return err
	}
	if inq.CounterpartyOf(actor) == uuid.Nil {
		return sle_errors.ErrForbidden
	}
	if err := s.inquiryRepo.SetReadFlag(ctx, inq.ID, actor == inq.BuyerCompanyID, true); err != nil {
		return err
	}
	return s.messages.MarkThreadRead(ctx, message.ThreadRef{Kind: message.ThreadInquiry, ID: inq.ID}, actor)
}

// SweepExpired returns inquiries past their expiry whose status is still
// sweepable. It never mutates: the caller is the explicit actor that applies
// the expired transition per candidate.
func (s *InquiryService) SweepExpired(ctx context.Context, limit int) ([]inquiry.Inquiry, error) {
	return s.inquiryRepo.ListExpiredCandidates(ctx, time.Now(), limit)
}

// ApplyExpiry moves one sweep candidate to expired, version-checked so a
// concurrent negotiation action wins over the sweep.
func (s *InquiryService) ApplyExpiry(ctx context.Context, inq inquiry.Inquiry) error {
	if !inquiry.CanTransition(inq.Status, inquiry.StatusExpired) {
		return sle_errors.Transition(inq.Status, inquiry.StatusExpired)
	}
	return s.inquiryRepo.UpdateStatus(ctx, inq.ID, inq.Version, inquiry.StatusExpired)
}
