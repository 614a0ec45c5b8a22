package entity

import "time"

// Availability is a mentor time slot. Date is YYYY-MM-DD, times are HH:MM.
type Availability struct {
	ID              string `json:"id"`
	MentorID        string `json:"mentor_id"`
	MentorName      string `json:"mentor_name"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	SessionType     string `json:"session_type"`
	MaxParticipants int    `json:"max_participants"`
	IsAvailable     bool   `json:"is_available"`
	BookedCount     int    `json:"booked_count"`
}

type Booking struct {
	ID             string        `json:"id"`
	AvailabilityID string        `json:"availability_id"`
	UserID         string        `json:"user_id"`
	Status         string        `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	Availability   *Availability `json:"availability,omitempty"`
}

type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EventType       string    `json:"event_type"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Location        string    `json:"location"`
	IsVirtual       bool      `json:"is_virtual"`
	MaxParticipants int       `json:"max_participants"`
	RegisteredCount int       `json:"registered_count"`
	RegistrationURL string    `json:"registration_url"`
}

type EventRegistration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Event     *Event    `json:"event,omitempty"`
}
