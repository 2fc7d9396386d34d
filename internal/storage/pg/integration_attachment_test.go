package pg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaiwachat/kaiwa/internal/service"
)

func truncateAttachments(t *testing.T) {
	t.Helper()
	_, err := storage.db.Exec("TRUNCATE attachments")
	require.NoError(t, err)
}

func record(conversation, id, name string) service.AttachmentRecord {
	return service.AttachmentRecord{
		Conversation: conversation,
		Id:           id,
		RemoteKey:    conversation + "/" + id + ".png",
		Name:         name,
		MimeType:     "image/png",
		SizeBytes:    42,
	}
}

func TestSaveAttachment(t *testing.T) {
	ctx := context.Background()
	truncateAttachments(t)

	t.Run("save then list round-trips the record", func(t *testing.T) {
		rec := record("c1", "a1", "photo.png")
		require.NoError(t, storage.SaveAttachment(ctx, rec))

		got, err := storage.ListByConversation(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, rec, got[0])
	})

	t.Run("saving the same id again updates in place", func(t *testing.T) {
		rec := record("c1", "a2", "old.png")
		require.NoError(t, storage.SaveAttachment(ctx, rec))

		rec.Name = "new.png"
		rec.SizeBytes = 99
		require.NoError(t, storage.SaveAttachment(ctx, rec))

		got, err := storage.ListByConversation(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "new.png", got[1].Name)
		assert.Equal(t, int64(99), got[1].SizeBytes)
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		truncateAttachments(t)
		for _, id := range []string{"first", "second", "third"} {
			require.NoError(t, storage.SaveAttachment(ctx, record("c2", id, id+".png")))
		}

		got, err := storage.ListByConversation(ctx, "c2")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "first", got[0].Id)
		assert.Equal(t, "second", got[1].Id)
		assert.Equal(t, "third", got[2].Id)
	})
}

func TestDeleteAttachmentRecord(t *testing.T) {
	ctx := context.Background()
	truncateAttachments(t)

	require.NoError(t, storage.SaveAttachment(ctx, record("c1", "a1", "a.png")))
	require.NoError(t, storage.SaveAttachment(ctx, record("c1", "a2", "b.png")))

	t.Run("delete removes only the targeted record", func(t *testing.T) {
		require.NoError(t, storage.DeleteAttachment(ctx, "c1", "a1"))

		got, err := storage.ListByConversation(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "a2", got[0].Id)
	})

	t.Run("deleting a missing record is not an error", func(t *testing.T) {
		assert.NoError(t, storage.DeleteAttachment(ctx, "c1", "never-existed"))
	})

	t.Run("delete is scoped to the conversation", func(t *testing.T) {
		require.NoError(t, storage.SaveAttachment(ctx, record("other", "a2", "b.png")))

		require.NoError(t, storage.DeleteAttachment(ctx, "other", "a2"))

		got, err := storage.ListByConversation(ctx, "c1")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestDeleteConversationRecords(t *testing.T) {
	ctx := context.Background()
	truncateAttachments(t)

	require.NoError(t, storage.SaveAttachment(ctx, record("c1", "a1", "a.png")))
	require.NoError(t, storage.SaveAttachment(ctx, record("c1", "a2", "b.png")))
	require.NoError(t, storage.SaveAttachment(ctx, record("c2", "a3", "c.png")))

	require.NoError(t, storage.DeleteConversation(ctx, "c1"))

	got, err := storage.ListByConversation(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = storage.ListByConversation(ctx, "c2")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPing(t *testing.T) {
	assert.NoError(t, storage.Ping())
}
