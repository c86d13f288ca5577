package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/company"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/conversation"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
)

// ThreadSnapshot is one thread's state as gathered by the read path: enough
// to merge, rank and preview without touching storage again.
type ThreadSnapshot struct {
	Ref            message.ThreadRef
	CounterpartyID uuid.UUID
	Status         string
	HasMessages    bool
	UnreadCount    int64
	LastMessage    *message.Message
	CreatedAt      time.Time
}

// LastActivity is the thread's own last message time, falling back to its
// creation time when the thread is silent.
func (t ThreadSnapshot) LastActivity() time.Time {
	if t.LastMessage != nil {
		return t.LastMessage.CreatedAt
	}
	return t.CreatedAt
}

// ResolveInput feeds one resolution pass. Profiles maps counterparty id to
// display data; snapshots whose counterparty is absent from the map are
// dropped as data-integrity noise.
type ResolveInput struct {
	Snapshots    []ThreadSnapshot
	Profiles     map[uuid.UUID]company.Profile
	CurrentParty *uuid.UUID
	Now          time.Time
}

// ResolveConversations collapses order- and inquiry-threads into one ranked
// conversation per counterparty. Pure function: all storage reads happen
// before it, which keeps the merge comparator unit-testable in isolation.
func ResolveConversations(input ResolveInput) []conversation.Conversation {
	best := make(map[uuid.UUID]ThreadSnapshot)
	for _, snap := range input.Snapshots {
		if snap.CounterpartyID == uuid.Nil {
			continue
		}
		if _, ok := input.Profiles[snap.CounterpartyID]; !ok {
			continue
		}
		prev, seen := best[snap.CounterpartyID]
		if !seen || betterThread(snap, prev) {
			best[snap.CounterpartyID] = snap
		}
	}

	pinned := uuid.Nil
	if input.CurrentParty != nil {
		pinned = *input.CurrentParty
	}

	out := make([]conversation.Conversation, 0, len(best)+1)
	for counterpartyID, snap := range best {
		// Without a pinned counterparty the inbox is pure history: silent
		// threads are omitted. The pinned counterparty always surfaces.
		if !snap.HasMessages && counterpartyID != pinned {
			continue
		}
		out = append(out, snapshotConversation(input.Profiles[counterpartyID], snap))
	}

	if pinned != uuid.Nil {
		if _, ok := best[pinned]; !ok {
			if profile, ok := input.Profiles[pinned]; ok {
				out = append(out, conversation.Placeholder(profile, input.Now))
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rankLess(out[i], out[j], pinned)
	})
	return out
}

// betterThread is the pairwise comparator for two threads sharing a
// counterparty: message presence wins, then the more recent activity.
func betterThread(a, b ThreadSnapshot) bool {
	if a.HasMessages != b.HasMessages {
		return a.HasMessages
	}
	return a.LastActivity().After(b.LastActivity())
}

// rankLess orders the final list: the pinned counterparty first regardless,
// then unread conversations, then those with any history, newest activity
// breaking the remaining ties.
func rankLess(a, b conversation.Conversation, pinned uuid.UUID) bool {
	if pinned != uuid.Nil {
		aPinned := a.Counterparty.ID == pinned
		bPinned := b.Counterparty.ID == pinned
		if aPinned != bPinned {
			return aPinned
		}
	}
	aUnread := a.UnreadCount > 0
	bUnread := b.UnreadCount > 0
	if aUnread != bUnread {
		return aUnread
	}
	if a.HasMessages != b.HasMessages {
		return a.HasMessages
	}
	return a.LastActivity.After(b.LastActivity)
}

func snapshotConversation(profile company.Profile, snap ThreadSnapshot) conversation.Conversation {
	var preview conversation.Preview
	if snap.LastMessage != nil {
		preview = conversation.Preview{
			SenderCompanyID: snap.LastMessage.SenderCompanyID,
			SentAt:          snap.LastMessage.CreatedAt,
			Type:            snap.LastMessage.Type,
		}
		if snap.LastMessage.Body.Valid {
			preview.Body = snap.LastMessage.Body.String
		}
	}
	return conversation.FromThread(profile, snap.Ref, snap.Status, preview, snap.UnreadCount, snap.HasMessages, snap.LastActivity())
}
