package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/inquiry"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/order"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/repository"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/logger"
)

// OrderBridge materializes a purchase order from an accepted quote. The
// conversion is one-shot and non-retryable: once the order exists the bridge
// never rolls it back, even if stamping the inquiry fails afterwards.
type OrderBridge struct {
	inquiries *InquiryService
	orderRepo repository.OrderRepository
	logger    *logger.Logger
}

func NewOrderBridge(inquiries *InquiryService, orderRepo repository.OrderRepository, l *logger.Logger) *OrderBridge {
	return &OrderBridge{inquiries: inquiries, orderRepo: orderRepo, logger: l}
}

// ConvertAcceptedInquiry creates the order from the inquiry's accepted quote
// and then converts the inquiry. On a partial failure (order created, status
// update failed) it raises a reconciliation alert and returns the error;
// blind retry would mint duplicate orders.
func (b *OrderBridge) ConvertAcceptedInquiry(ctx context.Context, inquiryID, actor uuid.UUID) (order.Order, error) {
	inq, err := b.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		return order.Order{}, err
	}
	if inq.CounterpartyOf(actor) == uuid.Nil {
		return order.Order{}, sle_errors.ErrForbidden
	}
	if inq.Status != inquiry.StatusAccepted {
		return order.Order{}, sle_errors.Transition(inq.Status, inquiry.StatusConverted)
	}
	quote := inq.AcceptedQuote()
	if quote == nil {
		return order.Order{}, sle_errors.Transition(inq.Status, inquiry.StatusConverted)
	}

	quantity := int64(1)
	if inq.Quantity.Valid && inq.Quantity.Int64 > 0 {
		quantity = inq.Quantity.Int64
	}
	total := quote.TotalPrice
	if total.IsZero() {
		total = quote.UnitPrice.Mul(decimal.NewFromInt(quantity))
	}

	now := time.Now()
	o := order.Order{
		ID:                uuid.New(),
		Number:            newOrderNumber(now),
		BuyerCompanyID:    inq.BuyerCompanyID,
		SupplierCompanyID: inq.SupplierCompanyID,
		ProductID:         inq.ProductID,
		Quantity:          quantity,
		UnitPrice:         quote.UnitPrice,
		TotalAmount:       total,
		Currency:          quote.Currency,
		Status:            order.StatusPending,
		SourceInquiryID:   uuid.NullUUID{UUID: inq.ID, Valid: true},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := b.orderRepo.Create(ctx, &o); err != nil {
		return order.Order{}, err
	}

	if err := b.inquiries.ConvertToOrder(ctx, inq.ID, o.ID, actor); err != nil {
		if b.logger != nil {
			b.logger.Errorf("RECONCILE: order %s created but inquiry %s not converted: %v", o.ID, inq.ID, err)
		}
		return o, err
	}
	if b.logger != nil {
		b.logger.InfofCtx(ctx, "inquiry %s converted to order %s (%s)", inq.Number, o.Number, o.ID)
	}
	return o, nil
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
