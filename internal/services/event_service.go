package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/isdelr/card-binder-be/internal/models"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(ctx context.Context, eventType, message, username string) error
	GetRecentEvents(ctx context.Context, username string, limit int) ([]models.Event, error)
}

// EventService provides business logic for the activity audit trail.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// CreateEvent logs a new event to the database.
func (s *EventService) CreateEvent(ctx context.Context, eventType, message, username string) error {
	event := models.Event{
		ID:       uuid.New().String(),
		Type:     eventType,
		Message:  message,
		Username: username,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (id, type, message, username) VALUES (?, ?, ?, ?)",
		event.ID, event.Type, event.Message, event.Username)
	return err
}

// GetRecentEvents retrieves the user's most recent events.
func (s *EventService) GetRecentEvents(ctx context.Context, username string, limit int) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, type, message, username, created_at FROM events WHERE username = ? ORDER BY created_at DESC LIMIT ?",
		username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Message, &event.Username, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
