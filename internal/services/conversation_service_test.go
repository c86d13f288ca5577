package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/company"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/conversation"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/order"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
)

type inboxFixture struct {
	*inquiryFixture
	orderRepo    *fakeOrderRepo
	companyRepo  *fakeCompanyRepo
	conversation *ConversationService
}

func newInboxFixture() *inboxFixture {
	f := newInquiryFixture()
	orderRepo := newFakeOrderRepo()

	companyRepo := newFakeCompanyRepo(f.buyer, f.supplier)
	directory := NewDirectoryService(companyRepo, nil, nil)
	conv := NewConversationService(f.inquiryRepo, orderRepo, f.messageRepo, directory, f.service.messages, nil)

	return &inboxFixture{
		inquiryFixture: f,
		orderRepo:      orderRepo,
		companyRepo:    companyRepo,
		conversation:   conv,
	}
}

func (f *inboxFixture) addOrder(t *testing.T) order.Order {
	t.Helper()
	o := order.Order{
		ID:                uuid.New(),
		Number:            "ORD-20250101-TEST0001",
		BuyerCompanyID:    f.buyer.ID,
		SupplierCompanyID: f.supplier.ID,
		Quantity:          10,
		Currency:          "USD",
		Status:            order.StatusConfirmed,
		CreatedAt:         time.Now().Add(-time.Hour),
		UpdatedAt:         time.Now().Add(-time.Hour),
	}
	require.NoError(t, f.orderRepo.Create(context.Background(), &o))
	return o
}

func TestResolveInboxMergesOrderAndInquiryThreads(t *testing.T) {
	f := newInboxFixture()
	ctx := context.Background()

	// Inquiry creation posts the opening ledger message; the order thread
	// stays silent, so the inquiry thread wins the merge.
	inq := f.create(t, "Merge me")
	f.addOrder(t)

	inbox, err := f.conversation.ResolveInbox(ctx, f.buyer.ID, nil)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, f.supplier.ID, inbox[0].Counterparty.ID)
	assert.Equal(t, message.ThreadInquiry, inbox[0].ThreadKind)
	assert.Equal(t, inq.ID, inbox[0].ThreadID)
}

func TestResolveInboxCountsUnreadForRequester(t *testing.T) {
	f := newInboxFixture()
	ctx := context.Background()

	inq := f.create(t, "Unread counting")

	// The opening message is addressed to the supplier.
	inbox, err := f.conversation.ResolveInbox(ctx, f.supplier.ID, nil)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, int64(1), inbox[0].UnreadCount)
	assert.Equal(t, f.buyer.ID, inbox[0].Counterparty.ID)

	// The buyer sent it, so their own inbox shows zero unread.
	inbox, err = f.conversation.ResolveInbox(ctx, f.buyer.ID, nil)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Zero(t, inbox[0].UnreadCount)

	ref := message.ThreadRef{Kind: message.ThreadInquiry, ID: inq.ID}
	require.NoError(t, f.conversation.MarkConversationRead(ctx, f.supplier.ID, ref))

	inbox, err = f.conversation.ResolveInbox(ctx, f.supplier.ID, nil)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Zero(t, inbox[0].UnreadCount)
}

func TestResolveInboxPinnedPlaceholder(t *testing.T) {
	f := newInboxFixture()
	ctx := context.Background()

	newcomer := company.Company{ID: uuid.New(), Name: "Fresh Supplier", Type: company.TypeSupplier}
	require.NoError(t, f.companyRepo.Create(ctx, &newcomer))

	f.create(t, "Existing thread")

	inbox, err := f.conversation.ResolveInbox(ctx, f.buyer.ID, &newcomer.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.True(t, inbox[0].IsPlaceholder())
	assert.Equal(t, newcomer.ID, inbox[0].Counterparty.ID)
	assert.Equal(t, conversation.StatusNew, inbox[0].Status)
	assert.Equal(t, f.supplier.ID, inbox[1].Counterparty.ID)
}

func TestResolveInboxValidation(t *testing.T) {
	f := newInboxFixture()
	ctx := context.Background()

	_, err := f.conversation.ResolveInbox(ctx, uuid.Nil, nil)
	assert.ErrorIs(t, err, sle_errors.ErrInvalidInput)

	self := f.buyer.ID
	_, err = f.conversation.ResolveInbox(ctx, f.buyer.ID, &self)
	assert.ErrorIs(t, err, sle_errors.ErrInvalidInput)

	ghost := uuid.New()
	_, err = f.conversation.ResolveInbox(ctx, f.buyer.ID, &ghost)
	assert.ErrorIs(t, err, sle_errors.ErrNotFound)
}

func TestResolveInboxEmpty(t *testing.T) {
	f := newInboxFixture()

	inbox, err := f.conversation.ResolveInbox(context.Background(), f.buyer.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, inbox)
}

func TestMarkConversationReadAuthorization(t *testing.T) {
	f := newInboxFixture()
	ctx := context.Background()
	inq := f.create(t, "Private thread")

	ref := message.ThreadRef{Kind: message.ThreadInquiry, ID: inq.ID}
	err := f.conversation.MarkConversationRead(ctx, uuid.New(), ref)
	assert.ErrorIs(t, err, sle_errors.ErrForbidden)

	require.NoError(t, f.conversation.MarkConversationRead(ctx, f.supplier.ID, ref))
	stored, err := f.service.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.True(t, stored.SupplierRead)
}
