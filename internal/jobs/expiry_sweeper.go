package jobs

import (
	"context"
	"errors"
	"time"

	sleredis "github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/redis"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/services"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/logger"
)

const sweepLockKey = "jobs:inquiry-expiry-sweep"

// ExpirySweeper is the explicit actor behind inquiry expiry: the lifecycle
// manager only identifies candidates, the sweeper applies the transition.
// A redis lock keeps concurrent instances from double-sweeping.
type ExpirySweeper struct {
	inquiries *services.InquiryService
	locker    *sleredis.Locker
	interval  time.Duration
	batchSize int
	logger    *logger.Logger
}

func NewExpirySweeper(inquiries *services.InquiryService, locker *sleredis.Locker, interval time.Duration, batchSize int, l *logger.Logger) *ExpirySweeper {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &ExpirySweeper{
		inquiries: inquiries,
		locker:    locker,
		interval:  interval,
		batchSize: batchSize,
		logger:    l,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *ExpirySweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *ExpirySweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce performs a single locked sweep pass and returns the number of
// inquiries expired.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) int {
	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, sweepLockKey, s.interval)
		if err != nil {
			if !sleredis.IsNotObtained(err) && s.logger != nil {
				s.logger.Warnf("expiry sweep lock error: %v", err)
			}
			return 0
		}
		defer func() { _ = lock.Release(ctx) }()
	}

	candidates, err := s.inquiries.SweepExpired(ctx, s.batchSize)
	if err != nil {
		if s.logger != nil {
			s.logger.Errorf("expiry sweep: listing candidates failed: %v", err)
		}
		return 0
	}

	expired := 0
	for _, inq := range candidates {
		if err := s.inquiries.ApplyExpiry(ctx, inq); err != nil {
			// A lost version race means someone negotiated meanwhile; the
			// next pass re-evaluates the inquiry.
			if errors.Is(err, sle_errors.ErrConflict) || errors.Is(err, sle_errors.ErrInvalidTransition) {
				continue
			}
			if s.logger != nil {
				s.logger.Errorf("expiry sweep: inquiry %s: %v", inq.Number, err)
			}
			continue
		}
		expired++
	}

	if expired > 0 && s.logger != nil {
		s.logger.Infof("expiry sweep: expired %d inquiries", expired)
	}
	return expired
}
