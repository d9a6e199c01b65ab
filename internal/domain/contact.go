package domain

import (
	"time"

	"github.com/google/uuid"
)

type ContactMessage struct {
	ID      uuid.UUID
	Name    string
	Email   string
	Message string

	ReceivedAt time.Time
}
