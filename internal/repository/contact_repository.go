package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type contactRepository struct {
	pool *pgxpool.Pool
}

func NewContact(pool *pgxpool.Pool) port.ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) InsertMessage(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	if msg.Email == "" {
		return domain.ContactMessage{}, fmt.Errorf("email is empty")
	}
	if msg.Message == "" {
		return domain.ContactMessage{}, fmt.Errorf("message is empty")
	}

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO contact_messages (id, name, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING received_at`,
		msg.ID, msg.Name, msg.Email, msg.Message,
	).Scan(&msg.ReceivedAt)
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("insert contact message: %w", err)
	}

	return msg, nil
}

func (r *contactRepository) ListMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, message, received_at
		FROM contact_messages
		ORDER BY received_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var messages []domain.ContactMessage
	for rows.Next() {
		var msg domain.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.ReceivedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return messages, nil
}
