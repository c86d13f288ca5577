package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/company"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/conversation"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
)

func profileMap(profiles ...company.Profile) map[uuid.UUID]company.Profile {
	out := make(map[uuid.UUID]company.Profile, len(profiles))
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out
}

func orderSnapshot(counterparty uuid.UUID, lastMsg *message.Message, unread int64, createdAt time.Time) ThreadSnapshot {
	return ThreadSnapshot{
		Ref:            message.ThreadRef{Kind: message.ThreadOrder, ID: uuid.New()},
		CounterpartyID: counterparty,
		Status:         "pending",
		HasMessages:    lastMsg != nil,
		UnreadCount:    unread,
		LastMessage:    lastMsg,
		CreatedAt:      createdAt,
	}
}

func inquirySnapshot(counterparty uuid.UUID, lastMsg *message.Message, unread int64, createdAt time.Time) ThreadSnapshot {
	return ThreadSnapshot{
		Ref:            message.ThreadRef{Kind: message.ThreadInquiry, ID: uuid.New()},
		CounterpartyID: counterparty,
		Status:         "responded",
		HasMessages:    lastMsg != nil,
		UnreadCount:    unread,
		LastMessage:    lastMsg,
		CreatedAt:      createdAt,
	}
}

func ledgerEntry(sender uuid.UUID, body string, at time.Time) *message.Message {
	return &message.Message{
		ID:              uuid.New(),
		SenderCompanyID: sender,
		Body:            sql.NullString{String: body, Valid: true},
		Type:            message.TypeText,
		Status:          message.StatusSent,
		CreatedAt:       at,
	}
}

// Without a pinned counterparty, only counterparties with message history
// surface: an order-thread with messages appears, a silent one does not.
func TestResolveOmitsSilentCounterparties(t *testing.T) {
	now := time.Now()
	active := company.Profile{ID: uuid.New(), Name: "Company A"}
	silent := company.Profile{ID: uuid.New(), Name: "Company B"}

	out := ResolveConversations(ResolveInput{
		Snapshots: []ThreadSnapshot{
			orderSnapshot(active.ID, ledgerEntry(active.ID, "invoice attached", now.Add(-time.Hour)), 1, now.Add(-48*time.Hour)),
			orderSnapshot(silent.ID, nil, 0, now.Add(-24*time.Hour)),
		},
		Profiles: profileMap(active, silent),
		Now:      now,
	})

	require.Len(t, out, 1)
	assert.Equal(t, active.ID, out[0].Counterparty.ID)
	assert.Equal(t, conversation.KindThread, out[0].Kind)
	assert.Equal(t, "invoice attached", out[0].LastMessage.Body)
	assert.Equal(t, int64(1), out[0].UnreadCount)
}

// Pinning a counterparty with no thread at all synthesizes a placeholder and
// puts it first, ahead of an unread conversation.
func TestResolvePinnedPlaceholderRanksFirst(t *testing.T) {
	now := time.Now()
	unreadParty := company.Profile{ID: uuid.New(), Name: "Busy Partner"}
	pinnedParty := company.Profile{ID: uuid.New(), Name: "New Partner"}

	out := ResolveConversations(ResolveInput{
		Snapshots: []ThreadSnapshot{
			orderSnapshot(unreadParty.ID, ledgerEntry(unreadParty.ID, "ping", now.Add(-time.Minute)), 3, now.Add(-time.Hour)),
		},
		Profiles:     profileMap(unreadParty, pinnedParty),
		CurrentParty: &pinnedParty.ID,
		Now:          now,
	})

	require.Len(t, out, 2)
	first := out[0]
	assert.Equal(t, pinnedParty.ID, first.Counterparty.ID)
	assert.True(t, first.IsPlaceholder())
	assert.Equal(t, conversation.StatusNew, first.Status)
	assert.Equal(t, conversation.PlaceholderGreeting, first.LastMessage.Body)
	assert.Equal(t, message.TypeSystem, first.LastMessage.Type)
	assert.Zero(t, first.UnreadCount)

	assert.Equal(t, unreadParty.ID, out[1].Counterparty.ID)
}

// A pinned counterparty whose only thread is silent still surfaces, as the
// real thread rather than a placeholder.
func TestResolvePinnedSilentThreadSurfaces(t *testing.T) {
	now := time.Now()
	pinned := company.Profile{ID: uuid.New(), Name: "Quiet Partner"}
	snap := orderSnapshot(pinned.ID, nil, 0, now.Add(-time.Hour))

	out := ResolveConversations(ResolveInput{
		Snapshots:    []ThreadSnapshot{snap},
		Profiles:     profileMap(pinned),
		CurrentParty: &pinned.ID,
		Now:          now,
	})

	require.Len(t, out, 1)
	assert.Equal(t, conversation.KindThread, out[0].Kind)
	assert.Equal(t, snap.Ref.ID, out[0].ThreadID)
	assert.False(t, out[0].HasMessages)
}

// One counterparty with both an order-thread and an inquiry-thread collapses
// to a single conversation; a thread with messages beats a silent one even
// when the silent thread is newer.
func TestResolveMergesThreadsPerCounterparty(t *testing.T) {
	now := time.Now()
	partner := company.Profile{ID: uuid.New(), Name: "Dual Partner"}

	spoken := inquirySnapshot(partner.ID, ledgerEntry(partner.ID, "our best price", now.Add(-2*time.Hour)), 1, now.Add(-72*time.Hour))
	silentButNewer := orderSnapshot(partner.ID, nil, 0, now.Add(-time.Minute))

	out := ResolveConversations(ResolveInput{
		Snapshots: []ThreadSnapshot{silentButNewer, spoken},
		Profiles:  profileMap(partner),
		Now:       now,
	})

	require.Len(t, out, 1)
	assert.Equal(t, message.ThreadInquiry, out[0].ThreadKind)
	assert.Equal(t, spoken.Ref.ID, out[0].ThreadID)
	assert.Equal(t, "our best price", out[0].LastMessage.Body)
}

// Among spoken threads for the same counterparty, the more recent activity wins.
func TestResolvePrefersRecentActivity(t *testing.T) {
	now := time.Now()
	partner := company.Profile{ID: uuid.New(), Name: "Partner"}

	older := orderSnapshot(partner.ID, ledgerEntry(partner.ID, "old order chat", now.Add(-48*time.Hour)), 0, now.Add(-96*time.Hour))
	newer := inquirySnapshot(partner.ID, ledgerEntry(partner.ID, "fresh inquiry chat", now.Add(-time.Hour)), 0, now.Add(-24*time.Hour))

	out := ResolveConversations(ResolveInput{
		Snapshots: []ThreadSnapshot{older, newer},
		Profiles:  profileMap(partner),
		Now:       now,
	})

	require.Len(t, out, 1)
	assert.Equal(t, newer.Ref.ID, out[0].ThreadID)
}

func TestResolveRanking(t *testing.T) {
	now := time.Now()
	unread := company.Profile{ID: uuid.New(), Name: "Unread"}
	readRecent := company.Profile{ID: uuid.New(), Name: "Read Recent"}
	readOld := company.Profile{ID: uuid.New(), Name: "Read Old"}

	out := ResolveConversations(ResolveInput{
		Snapshots: []ThreadSnapshot{
			orderSnapshot(readOld.ID, ledgerEntry(readOld.ID, "ancient", now.Add(-90*time.Hour)), 0, now.Add(-100*time.Hour)),
			orderSnapshot(unread.ID, ledgerEntry(unread.ID, "unread", now.Add(-50*time.Hour)), 2, now.Add(-60*time.Hour)),
			orderSnapshot(readRecent.ID, ledgerEntry(readRecent.ID, "recent", now.Add(-time.Hour)), 0, now.Add(-5*time.Hour)),
		},
		Profiles: profileMap(unread, readRecent, readOld),
		Now:      now,
	})

	require.Len(t, out, 3)
	assert.Equal(t, unread.ID, out[0].Counterparty.ID)
	assert.Equal(t, readRecent.ID, out[1].Counterparty.ID)
	assert.Equal(t, readOld.ID, out[2].Counterparty.ID)
}

// Snapshots whose counterparty has no profile are dropped rather than
// surfacing a half-populated row.
func TestResolveDropsUnresolvableCounterparties(t *testing.T) {
	now := time.Now()
	known := company.Profile{ID: uuid.New(), Name: "Known"}
	ghost := uuid.New()

	out := ResolveConversations(ResolveInput{
		Snapshots: []ThreadSnapshot{
			orderSnapshot(known.ID, ledgerEntry(known.ID, "hello", now.Add(-time.Hour)), 0, now.Add(-2*time.Hour)),
			orderSnapshot(ghost, ledgerEntry(ghost, "orphan", now.Add(-time.Minute)), 5, now.Add(-time.Hour)),
		},
		Profiles: profileMap(known),
		Now:      now,
	})

	require.Len(t, out, 1)
	assert.Equal(t, known.ID, out[0].Counterparty.ID)
}

func TestResolveEmptyInput(t *testing.T) {
	out := ResolveConversations(ResolveInput{Now: time.Now()})
	assert.Empty(t, out)
}
