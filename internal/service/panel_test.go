package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaiwachat/kaiwa/internal/domain"
)

func settledPanel(t *testing.T, files ...*domain.PendingFile) (*Panel, *Store, *Selection) {
	t.Helper()
	store := NewStore("c1", &MockBlobStore{}, nil)
	sel := NewSelection()
	store.Upload(context.Background(), files, imageLimit(5, 100))
	store.Wait()
	return NewPanel(store, sel), store, sel
}

func TestPanelSendGate(t *testing.T) {
	t.Run("send allowed with text and settled healthy files", func(t *testing.T) {
		panel, _, _ := settledPanel(t, imageFile("a.png", 8))

		view := panel.View("hello", false)

		assert.True(t, view.CanSend)
		assert.False(t, view.Uploading)
		assert.Empty(t, view.ErrorMessages)
	})

	t.Run("send blocked while uploading", func(t *testing.T) {
		blob := &MockBlobStore{blockPut: make(chan struct{})}
		store := NewStore("c1", blob, nil)
		panel := NewPanel(store, NewSelection())
		store.Upload(context.Background(), []*domain.PendingFile{imageFile("a.png", 8)}, imageLimit(5, 100))

		view := panel.View("hello", false)
		assert.False(t, view.CanSend)
		assert.True(t, view.Uploading)

		close(blob.blockPut)
		store.Wait()
	})

	t.Run("send blocked while errors are outstanding", func(t *testing.T) {
		panel, _, _ := settledPanel(t, imageFile("big.png", 500))

		view := panel.View("hello", false)

		assert.False(t, view.CanSend)
		assert.NotEmpty(t, view.ErrorMessages)
	})

	t.Run("empty text blocks send unless loading overrides", func(t *testing.T) {
		panel, _, _ := settledPanel(t)

		assert.False(t, panel.View("   ", false).CanSend)
		assert.True(t, panel.View("", true).CanSend)
	})
}

func TestPanelCards(t *testing.T) {
	t.Run("cards dispatch on file kind", func(t *testing.T) {
		store := NewStore("c1", &MockBlobStore{}, nil)
		panel := NewPanel(store, NewSelection())
		limit := domain.LimitSpec{MaxFileCount: 5, MaxFileSizeBytes: 100, AcceptedKinds: []string{"image/*", "video/*", ".pdf"}}
		store.Upload(context.Background(), []*domain.PendingFile{
			{Name: "a.png", MimeType: "image/png", Data: make([]byte, 8)},
			{Name: "b.mp4", MimeType: "video/mp4", Data: make([]byte, 8)},
			{Name: "c.pdf", MimeType: "application/pdf", Data: make([]byte, 8)},
		}, limit)
		store.Wait()

		view := panel.View("hi", false)

		require.Len(t, view.Cards, 3)
		assert.Equal(t, CardImage, view.Cards[0].Kind)
		assert.Equal(t, CardVideo, view.Cards[1].Kind)
		assert.Equal(t, CardDocument, view.Cards[2].Kind)
	})

	t.Run("selection mode swaps delete affordance for checkboxes", func(t *testing.T) {
		panel, store, sel := settledPanel(t, imageFile("a.png", 8))
		id := store.Ids()[0]

		view := panel.View("hi", false)
		require.Len(t, view.Cards, 1)
		assert.True(t, view.Cards[0].ShowDelete)
		assert.False(t, view.Cards[0].ShowCheckbox)

		sel.ToggleMode()
		sel.Toggle(id)
		view = panel.View("hi", false)
		assert.False(t, view.Cards[0].ShowDelete)
		assert.True(t, view.Cards[0].ShowCheckbox)
		assert.True(t, view.Cards[0].Selected)
	})

	t.Run("batch delete disabled while nothing is selected", func(t *testing.T) {
		panel, _, sel := settledPanel(t, imageFile("a.png", 8))

		sel.ToggleMode()
		assert.False(t, panel.View("hi", false).BatchDeleteEnabled)

		sel.SelectAll([]string{"x"})
		assert.True(t, panel.View("hi", false).BatchDeleteEnabled)
	})
}

func TestPanelDeleteSelected(t *testing.T) {
	t.Run("select all then batch delete empties store and leaves selection mode", func(t *testing.T) {
		panel, store, sel := settledPanel(t,
			imageFile("1.png", 8), imageFile("2.png", 8), imageFile("3.png", 8))

		sel.ToggleMode()
		sel.SelectAll(store.Ids())
		panel.DeleteSelected(context.Background(), imageLimit(5, 100))

		assert.Equal(t, 0, store.Len())
		assert.Equal(t, 0, sel.Count())
		assert.False(t, sel.Active())
	})

	t.Run("stale selected ids are skipped silently", func(t *testing.T) {
		panel, store, sel := settledPanel(t, imageFile("1.png", 8))
		id := store.Ids()[0]

		sel.ToggleMode()
		sel.SelectAll([]string{id, "already-gone"})
		panel.DeleteSelected(context.Background(), imageLimit(5, 100))

		assert.Equal(t, 0, store.Len())
	})
}
