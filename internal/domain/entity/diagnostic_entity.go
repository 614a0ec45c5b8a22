package entity

import "time"

type DiagnosticQuestion struct {
	ID         int      `json:"id"`
	OrderIndex int      `json:"order_index"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
}

type DiagnosticResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Answers    []int     `json:"answers"`
	Score      int       `json:"score"`
	Percentage float64   `json:"percentage"`
	Route      string    `json:"route"`
	Stage      string    `json:"stage"`
	CreatedAt  time.Time `json:"created_at"`
}
