package models

import "time"

// Event represents a loggable action in the system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "card.acquire", "user.login"
	Message   string    `json:"message"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
