package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/conversation"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/repository"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/logger"
)

// threadScanLimit bounds how many of a company's newest inquiries are
// considered per resolution pass.
const threadScanLimit = 500

// ConversationService is the read path: it gathers a company's order- and
// inquiry-threads, snapshots each against the ledger, and hands the pile to
// the pure resolver for merging and ranking. Nothing here persists anything.
type ConversationService struct {
	inquiryRepo repository.InquiryRepository
	orderRepo   repository.OrderRepository
	messageRepo repository.MessageRepository
	directory   *DirectoryService
	messages    *MessageService
	logger      *logger.Logger
}

func NewConversationService(inquiryRepo repository.InquiryRepository, orderRepo repository.OrderRepository, messageRepo repository.MessageRepository, directory *DirectoryService, messages *MessageService, l *logger.Logger) *ConversationService {
	return &ConversationService{
		inquiryRepo: inquiryRepo,
		orderRepo:   orderRepo,
		messageRepo: messageRepo,
		directory:   directory,
		messages:    messages,
		logger:      l,
	}
}

// ResolveInbox produces the ranked, deduplicated conversation list for the
// requesting company. When currentParty is set, that counterparty is pinned
// first and synthesized as a placeholder if no thread exists yet. A storage
// failure fails the whole resolution; callers must be able to tell an empty
// inbox from a broken one.
func (s *ConversationService) ResolveInbox(ctx context.Context, requesterID uuid.UUID, currentParty *uuid.UUID) ([]conversation.Conversation, error) {
	if requesterID == uuid.Nil {
		return nil, sle_errors.Invalid("requester company is required")
	}
	if currentParty != nil && *currentParty == requesterID {
		return nil, sle_errors.Invalid("cannot resolve a conversation with yourself")
	}

	snapshots, err := s.gatherSnapshots(ctx, requesterID, currentParty)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(snapshots)+1)
	for _, snap := range snapshots {
		ids = append(ids, snap.CounterpartyID)
	}
	if currentParty != nil {
		ids = append(ids, *currentParty)
	}
	profiles, err := s.directory.Profiles(ctx, ids)
	if err != nil {
		return nil, sle_errors.Unavailable(err)
	}
	for _, snap := range snapshots {
		if _, ok := profiles[snap.CounterpartyID]; !ok && s.logger != nil {
			s.logger.WarnfCtx(ctx, "dropping %s thread %s: counterparty %s unresolvable",
				snap.Ref.Kind, snap.Ref.ID, snap.CounterpartyID)
		}
	}
	if currentParty != nil {
		if _, ok := profiles[*currentParty]; !ok {
			return nil, sle_errors.ErrNotFound
		}
	}

	return ResolveConversations(ResolveInput{
		Snapshots:    snapshots,
		Profiles:     profiles,
		CurrentParty: currentParty,
		Now:          time.Now(),
	}), nil
}

// MarkConversationRead settles the requester's unread messages on the
// conversation's underlying thread.
func (s *ConversationService) MarkConversationRead(ctx context.Context, requesterID uuid.UUID, ref message.ThreadRef) error {
	if requesterID == uuid.Nil {
		return sle_errors.Invalid("requester company is required")
	}
	if ref.Kind == message.ThreadInquiry {
		inq, err := s.inquiryRepo.GetByID(ctx, ref.ID)
		if err != nil {
			return err
		}
		if inq.CounterpartyOf(requesterID) == uuid.Nil {
			return sle_errors.ErrForbidden
		}
		_ = s.inquiryRepo.SetReadFlag(ctx, inq.ID, requesterID == inq.BuyerCompanyID, true)
	}
	return s.messages.MarkThreadRead(ctx, ref, requesterID)
}

func (s *ConversationService) gatherSnapshots(ctx context.Context, requesterID uuid.UUID, currentParty *uuid.UUID) ([]ThreadSnapshot, error) {
	orders, err := s.orderRepo.ListByParty(ctx, requesterID)
	if err != nil {
		return nil, sle_errors.Unavailable(err)
	}
	inquiries, _, err := s.inquiryRepo.ListByParty(ctx, requesterID, 1, threadScanLimit)
	if err != nil {
		return nil, sle_errors.Unavailable(err)
	}

	pinned := uuid.Nil
	if currentParty != nil {
		pinned = *currentParty
	}

	snapshots := make([]ThreadSnapshot, 0, len(orders)+len(inquiries))
	for _, o := range orders {
		counterparty := o.CounterpartyOf(requesterID)
		if counterparty == uuid.Nil {
			if s.logger != nil {
				s.logger.WarnfCtx(ctx, "dropping order thread %s: requester %s is not a party", o.ID, requesterID)
			}
			continue
		}
		snap, err := s.snapshotThread(ctx, message.ThreadRef{Kind: message.ThreadOrder, ID: o.ID}, counterparty, o.Status, o.CreatedAt, requesterID, pinned)
		if err != nil {
			return nil, err
		}
		if snap != nil {
			snapshots = append(snapshots, *snap)
		}
	}
	for _, inq := range inquiries {
		counterparty := inq.CounterpartyOf(requesterID)
		if counterparty == uuid.Nil {
			if s.logger != nil {
				s.logger.WarnfCtx(ctx, "dropping inquiry thread %s: requester %s is not a party", inq.ID, requesterID)
			}
			continue
		}
		snap, err := s.snapshotThread(ctx, message.ThreadRef{Kind: message.ThreadInquiry, ID: inq.ID}, counterparty, inq.Status, inq.CreatedAt, requesterID, pinned)
		if err != nil {
			return nil, err
		}
		if snap != nil {
			snapshots = append(snapshots, *snap)
		}
	}
	return snapshots, nil
}

// snapshotThread reads the thread's ledger state. Silent threads are skipped
// unless they belong to the pinned counterparty, which must surface even
// without history.
func (s *ConversationService) snapshotThread(ctx context.Context, ref message.ThreadRef, counterpartyID uuid.UUID, status string, createdAt time.Time, requesterID, pinned uuid.UUID) (*ThreadSnapshot, error) {
	hasMessages, err := s.messageRepo.ThreadHasMessages(ctx, ref)
	if err != nil {
		return nil, sle_errors.Unavailable(err)
	}
	if !hasMessages && counterpartyID != pinned {
		return nil, nil
	}

	snap := ThreadSnapshot{
		Ref:            ref,
		CounterpartyID: counterpartyID,
		Status:         status,
		HasMessages:    hasMessages,
		CreatedAt:      createdAt,
	}
	if hasMessages {
		unread, err := s.messageRepo.CountUnread(ctx, ref, requesterID)
		if err != nil {
			return nil, sle_errors.Unavailable(err)
		}
		snap.UnreadCount = unread

		latest, err := s.messageRepo.LatestInThread(ctx, ref)
		switch {
		case err == nil:
			snap.LastMessage = &latest
		case errors.Is(err, sle_errors.ErrNotFound):
			// Raced with nothing to preview; keep the creation time.
		default:
			return nil, sle_errors.Unavailable(err)
		}
	}
	return &snap, nil
}
