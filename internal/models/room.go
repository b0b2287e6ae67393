package models

import "time"

// Room is a lab room (salle) events can be scheduled in.
type Room struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Class is a school class that attends a TP session.
type Class struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Level     string    `json:"level,omitempty"` // seconde, premiere, terminale
	Headcount int       `json:"headcount"`
	CreatedAt time.Time `json:"createdAt"`
}
