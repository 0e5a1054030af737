package domain

import (
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// ActivityEvent mirrors the message console-svc publishes after each write.
type ActivityEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity"`
	ID        int       `json:"id,omitempty"`
	Count     int       `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type UpcomingEvent struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Snapshot is the dashboard payload.
type Snapshot struct {
	Performances int             `json:"performances"`
	Experiences  int             `json:"experiences"`
	Food         int             `json:"food"`
	Parking      int             `json:"parking"`
	Toilets      int             `json:"toilets"`
	Venues       int             `json:"venues"`
	Events       []UpcomingEvent `json:"events"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}
