package postgres

import (
	"context"

	"charide/internal/domain/message"
	"charide/internal/ports"
)

// MessageRepo persists driver support messages using pgx and plain SQL.
type MessageRepo struct{}

// NewMessageRepo constructs a new MessageRepo.
func NewMessageRepo() ports.MessageRepository {
	return &MessageRepo{}
}

// CreateMessage inserts a support message and fills the generated fields.
func (repo *MessageRepo) CreateMessage(ctx context.Context, m *message.Message) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO messages (user_id, subject, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, m.UserID, m.Subject, m.Body).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return mapErr(err)
	}

	return nil
}

// ListAll returns every support message joined with the sender's name, newest first.
func (repo *MessageRepo) ListAll(ctx context.Context) ([]ports.MessageRow, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT m.id, m.user_id, m.subject, m.message, m.created_at, u.full_name
		FROM messages m
		JOIN users u ON u.id = m.user_id
		ORDER BY m.created_at DESC
	`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []ports.MessageRow
	for rows.Next() {
		var r ports.MessageRow
		err := rows.Scan(
			&r.Message.ID, &r.Message.UserID, &r.Message.Subject,
			&r.Message.Body, &r.Message.CreatedAt, &r.SenderName,
		)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}

	return out, nil
}
