package entity

import "time"

type Mentor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
	Available bool   `json:"available"`
}

type MentorAssignment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MentorID  string    `json:"mentor_id"`
	Active    bool      `json:"active"`
	StartDate time.Time `json:"start_date"`
	Mentor    Mentor    `json:"mentor"`
}

const (
	SenderUser   = "user"
	SenderMentor = "mentor"
)

type MentorMessage struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	Sender       string    `json:"sender"`
	Content      string    `json:"text"`
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"timestamp"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
