package services

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey    ctxKey = "user_id"
	companyIDKey ctxKey = "company_id"
)

// WithActorContext stores the authenticated caller's identity. Service
// operations still take the acting company explicitly; the context carries
// identity only from middleware to handlers.
func WithActorContext(ctx context.Context, userID, companyID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, companyIDKey, companyID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

func CompanyIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(companyIDKey).(uuid.UUID)
	return id, ok
}
