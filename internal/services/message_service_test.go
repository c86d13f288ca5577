package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
)

func newMessageFixture() (*MessageService, *fakeMessageRepo, message.ThreadRef, uuid.UUID, uuid.UUID) {
	repo := newFakeMessageRepo()
	service := NewMessageService(repo)
	ref := message.ThreadRef{Kind: message.ThreadOrder, ID: uuid.New()}
	return service, repo, ref, uuid.New(), uuid.New()
}

func TestPostMessageValidation(t *testing.T) {
	service, _, ref, sender, recipient := newMessageFixture()
	ctx := context.Background()

	_, err := service.Post(ctx, PostMessageInput{
		Thread:             message.ThreadRef{Kind: "group", ID: uuid.New()},
		SenderCompanyID:    sender,
		RecipientCompanyID: recipient,
		Body:               "hello",
	})
	assert.ErrorIs(t, err, sle_errors.ErrInvalidInput)

	_, err = service.Post(ctx, PostMessageInput{
		Thread:             ref,
		SenderCompanyID:    sender,
		RecipientCompanyID: sender,
		Body:               "hello",
	})
	assert.ErrorIs(t, err, sle_errors.ErrInvalidInput)

	_, err = service.Post(ctx, PostMessageInput{
		Thread:             ref,
		SenderCompanyID:    sender,
		RecipientCompanyID: recipient,
		Body:               "   ",
	})
	assert.ErrorIs(t, err, sle_errors.ErrInvalidInput)
}

func TestPostMessageClassification(t *testing.T) {
	service, _, ref, sender, recipient := newMessageFixture()
	ctx := context.Background()

	text, err := service.Post(ctx, PostMessageInput{
		Thread:             ref,
		SenderCompanyID:    sender,
		RecipientCompanyID: recipient,
		Body:               "plain text",
	})
	require.NoError(t, err)
	assert.Equal(t, message.TypeText, text.Type)
	assert.Equal(t, message.StatusSent, text.Status)

	// Any attachment makes the message a file message, caption or not.
	file, err := service.Post(ctx, PostMessageInput{
		Thread:             ref,
		SenderCompanyID:    sender,
		RecipientCompanyID: recipient,
		Body:               "see attached",
		Attachments: []AttachmentInput{
			{ObjectKey: "attachments/a/spec.pdf", FileName: "spec.pdf", ContentType: "application/pdf", SizeBytes: 1024},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, message.TypeFile, file.Type)
	require.Len(t, file.Attachments, 1)
	assert.Equal(t, file.ID, file.Attachments[0].MessageID)

	attachmentOnly, err := service.Post(ctx, PostMessageInput{
		Thread:             ref,
		SenderCompanyID:    sender,
		RecipientCompanyID: recipient,
		Attachments: []AttachmentInput{
			{ObjectKey: "attachments/a/photo.jpg"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, message.TypeFile, attachmentOnly.Type)
	assert.False(t, attachmentOnly.Body.Valid)

	system, err := service.Post(ctx, PostMessageInput{
		Thread:             ref,
		SenderCompanyID:    sender,
		RecipientCompanyID: recipient,
		Body:               "Inquiry converted to order",
		System:             true,
	})
	require.NoError(t, err)
	assert.Equal(t, message.TypeSystem, system.Type)
}

func TestMarkThreadReadIsIdempotent(t *testing.T) {
	service, _, ref, sender, recipient := newMessageFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := service.Post(ctx, PostMessageInput{
			Thread:             ref,
			SenderCompanyID:    sender,
			RecipientCompanyID: recipient,
			Body:               "msg",
		})
		require.NoError(t, err)
	}

	unread, err := service.CountUnread(ctx, ref, recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	require.NoError(t, service.MarkThreadRead(ctx, ref, recipient))
	require.NoError(t, service.MarkThreadRead(ctx, ref, recipient))

	unread, err = service.CountUnread(ctx, ref, recipient)
	require.NoError(t, err)
	assert.Zero(t, unread)

	latest, err := service.LatestMessage(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, message.StatusRead, latest.Status)
	assert.True(t, latest.ReadAt.Valid)
}

func TestMarkDeliveredNeverMovesBackward(t *testing.T) {
	service, _, ref, sender, recipient := newMessageFixture()
	ctx := context.Background()

	posted, err := service.Post(ctx, PostMessageInput{
		Thread:             ref,
		SenderCompanyID:    sender,
		RecipientCompanyID: recipient,
		Body:               "deliver me",
	})
	require.NoError(t, err)

	require.NoError(t, service.MarkDelivered(ctx, posted.ID))
	got, err := service.messageRepo.GetByID(ctx, posted.ID)
	require.NoError(t, err)
	assert.Equal(t, message.StatusDelivered, got.Status)

	// Read then delivered again: the read status sticks.
	require.NoError(t, service.MarkThreadRead(ctx, ref, recipient))
	require.NoError(t, service.MarkDelivered(ctx, posted.ID))
	got, err = service.messageRepo.GetByID(ctx, posted.ID)
	require.NoError(t, err)
	assert.Equal(t, message.StatusRead, got.Status)
}

func TestLatestMessageOnEmptyThread(t *testing.T) {
	service, _, ref, _, _ := newMessageFixture()

	_, err := service.LatestMessage(context.Background(), ref)
	assert.ErrorIs(t, err, sle_errors.ErrNotFound)
}
