package service

import (
	"context"
	"log/slog"
	"sync"
)

// Conversation bundles the attachment state owned by one conversation
// context: the store, its selection state and the panel over both.
type Conversation struct {
	Store     *Store
	Selection *Selection
	Panel     *Panel
}

// Registry owns the per-conversation stores. Construction and teardown of a
// store are tied to the conversation's lifecycle; nothing is shared
// ambiently between conversations.
type Registry struct {
	blob  BlobStore
	index MetadataIndex

	mu    sync.Mutex
	convs map[string]*Conversation
}

func NewRegistry(blob BlobStore, index MetadataIndex) *Registry {
	return &Registry{blob: blob, index: index, convs: make(map[string]*Conversation)}
}

// Get returns the conversation's attachment state, creating it on first use.
func (r *Registry) Get(conversation string) *Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[conversation]
	if !ok {
		store := NewStore(conversation, r.blob, r.index)
		sel := NewSelection()
		c = &Conversation{Store: store, Selection: sel, Panel: NewPanel(store, sel)}
		r.convs[conversation] = c
	}
	return c
}

// Reset tears a conversation context down: waits for in-flight operations,
// drops the local entries and purges the metadata index. Remote blobs are
// left to the blob store's own retention.
func (r *Registry) Reset(ctx context.Context, conversation string) {
	r.mu.Lock()
	c, ok := r.convs[conversation]
	delete(r.convs, conversation)
	r.mu.Unlock()

	if !ok {
		return
	}

	c.Store.Wait()
	c.Store.clear()
	c.Selection.Deactivate()

	if r.index != nil {
		if err := r.index.DeleteConversation(ctx, conversation); err != nil {
			slog.Warn("failed to purge conversation metadata", "conversation", conversation, "err", err)
		}
	}
}
