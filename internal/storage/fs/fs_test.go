package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("put then read round-trips content under the conversation", func(t *testing.T) {
		s, err := New(t.TempDir())
		require.NoError(t, err)

		key, err := s.PutObject(ctx, "c1", "photo.png", strings.NewReader("payload"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, "c1"+string(filepath.Separator)))
		assert.True(t, strings.HasSuffix(key, ".png"))

		rc, err := s.Read(key)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("keys are unique per put", func(t *testing.T) {
		s, err := New(t.TempDir())
		require.NoError(t, err)

		k1, err := s.PutObject(ctx, "c1", "a.png", strings.NewReader("x"))
		require.NoError(t, err)
		k2, err := s.PutObject(ctx, "c1", "a.png", strings.NewReader("y"))
		require.NoError(t, err)

		assert.NotEqual(t, k1, k2)
	})

	t.Run("delete removes the object and tolerates a missing one", func(t *testing.T) {
		s, err := New(t.TempDir())
		require.NoError(t, err)

		key, err := s.PutObject(ctx, "c1", "a.png", strings.NewReader("x"))
		require.NoError(t, err)

		require.NoError(t, s.DeleteObject(ctx, key))
		_, err = s.Read(key)
		assert.Error(t, err)

		assert.NoError(t, s.DeleteObject(ctx, key))
	})

	t.Run("delete conversation removes its whole directory", func(t *testing.T) {
		root := t.TempDir()
		s, err := New(root)
		require.NoError(t, err)

		_, err = s.PutObject(ctx, "c1", "a.png", strings.NewReader("x"))
		require.NoError(t, err)
		_, err = s.PutObject(ctx, "c1", "b.png", strings.NewReader("y"))
		require.NoError(t, err)

		require.NoError(t, s.DeleteConversation("c1"))

		_, err = os.Stat(filepath.Join(root, "c1"))
		assert.True(t, os.IsNotExist(err))
	})
}
