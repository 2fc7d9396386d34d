package pg

import (
	"context"
	"fmt"

	"github.com/kaiwachat/kaiwa/internal/service"
)

// Ensure Storage implements the index interface at compile time.
var _ service.MetadataIndex = (*Storage)(nil)

func (s *Storage) SaveAttachment(ctx context.Context, rec service.AttachmentRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attachments (conversation_id, attachment_id, remote_key, filename, mime_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (attachment_id) DO UPDATE
		SET remote_key = EXCLUDED.remote_key,
		    filename = EXCLUDED.filename,
		    mime_type = EXCLUDED.mime_type,
		    size_bytes = EXCLUDED.size_bytes`,
		rec.Conversation, rec.Id, rec.RemoteKey, rec.Name, rec.MimeType, rec.SizeBytes)
	if err != nil {
		return fmt.Errorf("failed to save attachment record: %w", err)
	}
	return nil
}

func (s *Storage) DeleteAttachment(ctx context.Context, conversation, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM attachments WHERE conversation_id = $1 AND attachment_id = $2`,
		conversation, id)
	if err != nil {
		return fmt.Errorf("failed to delete attachment record: %w", err)
	}
	return nil
}

func (s *Storage) DeleteConversation(ctx context.Context, conversation string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM attachments WHERE conversation_id = $1`, conversation)
	if err != nil {
		return fmt.Errorf("failed to purge conversation records: %w", err)
	}
	return nil
}

// ListByConversation returns the indexed records for one conversation in
// insertion order.
func (s *Storage) ListByConversation(ctx context.Context, conversation string) ([]service.AttachmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT conversation_id, attachment_id, remote_key, filename, mime_type, size_bytes
		FROM attachments
		WHERE conversation_id = $1
		ORDER BY created_at`, conversation)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachment records: %w", err)
	}
	defer rows.Close()

	var out []service.AttachmentRecord
	for rows.Next() {
		var rec service.AttachmentRecord
		if err := rows.Scan(&rec.Conversation, &rec.Id, &rec.RemoteKey, &rec.Name, &rec.MimeType, &rec.SizeBytes); err != nil {
			return nil, fmt.Errorf("failed to scan attachment record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
