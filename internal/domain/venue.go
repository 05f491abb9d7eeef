package domain

import "time"

// Venue is a place that hosts events. Events reference it by ID only.
type Venue struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
	Capacity   *int      `json:"capacity,omitempty"`
	Type       string    `json:"type,omitempty"`
	Facilities string    `json:"facilities,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
