package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/company"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/inquiry"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/order"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
)

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[uuid.UUID]company.Company
}

func newFakeCompanyRepo(companies ...company.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: make(map[uuid.UUID]company.Company)}
	for _, c := range companies {
		r.companies[c.ID] = c
	}
	return r
}

func (r *fakeCompanyRepo) Create(_ context.Context, c *company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies[c.ID] = *c
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return company.Company{}, sle_errors.ErrNotFound
	}
	return c, nil
}

func (r *fakeCompanyRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]company.Company, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.companies[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeInquiryRepo struct {
	mu        sync.Mutex
	inquiries map[uuid.UUID]*inquiry.Inquiry
	sequences map[int]int64

	failUpdateStatus error
	failSetConverted error
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{
		inquiries: make(map[uuid.UUID]*inquiry.Inquiry),
		sequences: make(map[int]int64),
	}
}

func (r *fakeInquiryRepo) Create(_ context.Context, inq *inquiry.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	year := inq.CreatedAt.Year()
	r.sequences[year]++
	inq.Number = inquiry.FormatNumber(year, r.sequences[year])
	stored := *inq
	r.inquiries[inq.ID] = &stored
	return nil
}

func (r *fakeInquiryRepo) GetByID(_ context.Context, id uuid.UUID) (inquiry.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inq, ok := r.inquiries[id]
	if !ok {
		return inquiry.Inquiry{}, sle_errors.ErrNotFound
	}
	out := *inq
	out.Quotes = append([]inquiry.Quote(nil), inq.Quotes...)
	out.Messages = append([]inquiry.InquiryMessage(nil), inq.Messages...)
	return out, nil
}

func (r *fakeInquiryRepo) GetByNumber(_ context.Context, number string) (inquiry.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inq := range r.inquiries {
		if inq.Number == number {
			return *inq, nil
		}
	}
	return inquiry.Inquiry{}, sle_errors.ErrNotFound
}

func (r *fakeInquiryRepo) ListByParty(_ context.Context, companyID uuid.UUID, page, limit int) ([]inquiry.Inquiry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inquiry.Inquiry
	for _, inq := range r.inquiries {
		if inq.BuyerCompanyID == companyID || inq.SupplierCompanyID == companyID {
			out = append(out, *inq)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeInquiryRepo) UpdateStatus(_ context.Context, id uuid.UUID, fromVersion int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdateStatus != nil {
		return r.failUpdateStatus
	}
	inq, ok := r.inquiries[id]
	if !ok {
		return sle_errors.ErrNotFound
	}
	if inq.Version != fromVersion {
		return sle_errors.ErrConflict
	}
	inq.Status = status
	inq.Version++
	inq.UpdatedAt = time.Now()
	return nil
}

func (r *fakeInquiryRepo) SetConverted(_ context.Context, id uuid.UUID, fromVersion int64, orderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSetConverted != nil {
		return r.failSetConverted
	}
	inq, ok := r.inquiries[id]
	if !ok {
		return sle_errors.ErrNotFound
	}
	if inq.Version != fromVersion {
		return sle_errors.ErrConflict
	}
	inq.Status = inquiry.StatusConverted
	inq.ConvertedOrderID = uuid.NullUUID{UUID: orderID, Valid: true}
	inq.Version++
	return nil
}

func (r *fakeInquiryRepo) SetReadFlag(_ context.Context, id uuid.UUID, buyerSide bool, read bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inq, ok := r.inquiries[id]
	if !ok {
		return sle_errors.ErrNotFound
	}
	if buyerSide {
		inq.BuyerRead = read
	} else {
		inq.SupplierRead = read
	}
	return nil
}

func (r *fakeInquiryRepo) AddQuote(_ context.Context, q *inquiry.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inq, ok := r.inquiries[q.InquiryID]
	if !ok {
		return sle_errors.ErrNotFound
	}
	inq.Quotes = append(inq.Quotes, *q)
	return nil
}

func (r *fakeInquiryRepo) UpdateQuoteStatus(_ context.Context, quoteID uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inq := range r.inquiries {
		for i := range inq.Quotes {
			if inq.Quotes[i].ID == quoteID {
				inq.Quotes[i].Status = status
				return nil
			}
		}
	}
	return sle_errors.ErrNotFound
}

func (r *fakeInquiryRepo) AddMessage(_ context.Context, m *inquiry.InquiryMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inq, ok := r.inquiries[m.InquiryID]
	if !ok {
		return sle_errors.ErrNotFound
	}
	inq.Messages = append(inq.Messages, *m)
	return nil
}

func (r *fakeInquiryRepo) ListExpiredCandidates(_ context.Context, now time.Time, limit int) ([]inquiry.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inquiry.Inquiry
	for _, inq := range r.inquiries {
		if inq.Expired(now) {
			out = append(out, *inq)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []message.Message

	failCreate error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(_ context.Context, m *message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	r.messages = append(r.messages, *m)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id uuid.UUID) (message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return message.Message{}, sle_errors.ErrNotFound
}

func (r *fakeMessageRepo) ListThread(_ context.Context, ref message.ThreadRef, page, limit int) ([]message.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []message.Message
	for _, m := range r.messages {
		if m.Thread() == ref {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeMessageRepo) LatestInThread(_ context.Context, ref message.ThreadRef) (message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *message.Message
	for i := range r.messages {
		m := &r.messages[i]
		if m.Thread() != ref {
			continue
		}
		if latest == nil || m.CreatedAt.After(latest.CreatedAt) {
			latest = m
		}
	}
	if latest == nil {
		return message.Message{}, sle_errors.ErrNotFound
	}
	return *latest, nil
}

func (r *fakeMessageRepo) CountUnread(_ context.Context, ref message.ThreadRef, recipientID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, m := range r.messages {
		if m.Thread() == ref && m.RecipientCompanyID == recipientID && m.Status != message.StatusRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) ThreadHasMessages(_ context.Context, ref message.ThreadRef) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.Thread() == ref {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMessageRepo) MarkThreadRead(_ context.Context, ref message.ThreadRef, recipientID uuid.UUID, readAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var touched int64
	for i := range r.messages {
		m := &r.messages[i]
		if m.Thread() == ref && m.RecipientCompanyID == recipientID && m.Status != message.StatusRead {
			m.Status = message.StatusRead
			m.ReadAt.Time = readAt
			m.ReadAt.Valid = true
			touched++
		}
	}
	return touched, nil
}

func (r *fakeMessageRepo) AdvanceStatus(_ context.Context, id uuid.UUID, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !message.CanAdvance(from, to) {
		return sle_errors.Invalid("status cannot move from %s to %s", from, to)
	}
	for i := range r.messages {
		if r.messages[i].ID == id && r.messages[i].Status == from {
			r.messages[i].Status = to
			return nil
		}
	}
	return sle_errors.ErrNotFound
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]order.Order

	failCreate error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]order.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, sle_errors.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) ListByParty(_ context.Context, companyID uuid.UUID) ([]order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []order.Order
	for _, o := range r.orders {
		if o.BuyerCompanyID == companyID || o.SupplierCompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}
