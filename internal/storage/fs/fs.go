package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kaiwachat/kaiwa/internal/service"
)

// Storage is a local-filesystem blob store. Objects are keyed by
// "<conversation>/<uuid><ext>" relative to the root path.
type Storage struct {
	rootPath string
}

// Ensure Storage implements the interface at compile time.
var _ service.BlobStore = (*Storage)(nil)

func New(rootPath string) (*Storage, error) {
	// filepath.Clean prevents path traversal like "media/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// PutObject writes a file under the conversation's directory and returns
// the generated key. The original name only contributes its extension;
// the stored name is a fresh uuid to keep keys collision-free and safe.
func (s *Storage) PutObject(ctx context.Context, conversation, filename string, data io.Reader) (string, error) {
	ext := filepath.Clean(filepath.Ext(filename))
	key := filepath.Join(conversation, uuid.NewString()+ext)
	fullPath := filepath.Join(s.rootPath, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create conversation directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		os.Remove(fullPath) // Best effort, ignore error here.
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	return key, nil
}

// Read opens a stored object for reading.
func (s *Storage) Read(key string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.rootPath, key)

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("attachment not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// DeleteObject removes a stored object. A missing object is not an error.
func (s *Storage) DeleteObject(ctx context.Context, key string) error {
	fullPath := filepath.Join(s.rootPath, key)

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// DeleteConversation removes every object stored for a conversation.
func (s *Storage) DeleteConversation(conversation string) error {
	p := filepath.Join(s.rootPath, filepath.Clean(conversation))
	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("failed to delete conversation directory: %w", err)
	}
	return nil
}
