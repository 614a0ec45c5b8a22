package entity

import "time"

type Course struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	RouteType       string    `json:"route_type"`
	ModuleCode      string    `json:"module_code"`
	OrderNumber     int       `json:"order_number"`
	DurationMinutes int       `json:"duration_minutes"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	VideoURL        string    `json:"video_url"`
	Downloadable    bool      `json:"downloadable"`
	CreatedAt       time.Time `json:"created_at"`
}

type CourseSection struct {
	ID              string `json:"id"`
	CourseID        string `json:"course_id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	VideoURL        string `json:"video_url"`
	OrderIndex      int    `json:"order_index"`
	DurationMinutes int    `json:"duration_minutes"`
}

type SectionProgress struct {
	UserID      string     `json:"user_id"`
	SectionID   string     `json:"section_id"`
	CourseID    string     `json:"course_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
