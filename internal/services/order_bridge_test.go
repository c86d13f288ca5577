package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/inquiry"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/order"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
)

func acceptedInquiryFixture(t *testing.T) (*inquiryFixture, *fakeOrderRepo, *OrderBridge, inquiry.Inquiry) {
	t.Helper()
	f := newInquiryFixture()
	ctx := context.Background()

	inq, err := f.service.Create(ctx, CreateInquiryInput{
		BuyerCompanyID:    f.buyer.ID,
		SupplierCompanyID: f.supplier.ID,
		Type:              inquiry.TypeBulkOrder,
		Subject:           "Bulk silk",
		Message:           "500 meters, natural white.",
		Quantity:          sql.NullInt64{Int64: 500, Valid: true},
	})
	require.NoError(t, err)

	q := f.quote(t, inq.ID)
	require.NoError(t, f.service.AcceptQuote(ctx, inq.ID, q.ID, f.buyer.ID))

	orderRepo := newFakeOrderRepo()
	bridge := NewOrderBridge(f.service, orderRepo, nil)
	return f, orderRepo, bridge, inq
}

func TestConvertAcceptedInquiryCreatesOrder(t *testing.T) {
	f, orderRepo, bridge, inq := acceptedInquiryFixture(t)
	ctx := context.Background()

	created, err := bridge.ConvertAcceptedInquiry(ctx, inq.ID, f.buyer.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.Number, "ORD-"+time.Now().Format("20060102")))
	assert.Equal(t, f.buyer.ID, created.BuyerCompanyID)
	assert.Equal(t, f.supplier.ID, created.SupplierCompanyID)
	assert.Equal(t, int64(500), created.Quantity)
	assert.Equal(t, "9.5", created.UnitPrice.String())
	assert.Equal(t, "950", created.TotalAmount.String())
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, order.StatusPending, created.Status)
	require.True(t, created.SourceInquiryID.Valid)
	assert.Equal(t, inq.ID, created.SourceInquiryID.UUID)

	stored, err := f.service.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusConverted, stored.Status)
	require.True(t, stored.ConvertedOrderID.Valid)
	assert.Equal(t, created.ID, stored.ConvertedOrderID.UUID)

	persisted, err := orderRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Number, persisted.Number)
}

func TestConvertRequiresAcceptedQuote(t *testing.T) {
	f := newInquiryFixture()
	ctx := context.Background()
	inq := f.create(t, "No quote yet")

	bridge := NewOrderBridge(f.service, newFakeOrderRepo(), nil)
	_, err := bridge.ConvertAcceptedInquiry(ctx, inq.ID, f.buyer.ID)
	assert.ErrorIs(t, err, sle_errors.ErrInvalidTransition)

	_, err = bridge.ConvertAcceptedInquiry(ctx, inq.ID, uuid.New())
	assert.ErrorIs(t, err, sle_errors.ErrForbidden)
}

func TestConvertFailedOrderCreateLeavesInquiryAccepted(t *testing.T) {
	f, orderRepo, bridge, inq := acceptedInquiryFixture(t)
	ctx := context.Background()

	orderRepo.failCreate = errors.New("storage down")
	_, err := bridge.ConvertAcceptedInquiry(ctx, inq.ID, f.buyer.ID)
	require.Error(t, err)

	stored, err := f.service.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusAccepted, stored.Status)
	assert.False(t, stored.ConvertedOrderID.Valid)
}

// Partial failure: the order exists, the inquiry stamp fails. The bridge must
// surface both the order and the error, and never delete the order.
func TestConvertPartialFailureKeepsOrder(t *testing.T) {
	f, orderRepo, bridge, inq := acceptedInquiryFixture(t)
	ctx := context.Background()

	f.inquiryRepo.failSetConverted = sle_errors.ErrConflict
	created, err := bridge.ConvertAcceptedInquiry(ctx, inq.ID, f.buyer.ID)
	f.inquiryRepo.failSetConverted = nil

	assert.ErrorIs(t, err, sle_errors.ErrConflict)
	require.NotEqual(t, uuid.Nil, created.ID)

	persisted, err := orderRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, persisted.ID)

	stored, err := f.service.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusAccepted, stored.Status)
}
