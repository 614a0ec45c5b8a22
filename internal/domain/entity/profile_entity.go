package entity

import "time"

// Profile is the aggregate root for a platform user.
// Password holds a bcrypt hash; federated accounts carry an unusable random one.
type Profile struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	Provider       string    `json:"provider"`
	FullName       string    `json:"full_name"`
	AvatarURL      string    `json:"avatar_url"`
	Age            int       `json:"age,omitempty"`
	City           string    `json:"city"`
	BusinessName   string    `json:"business_name"`
	BusinessSector string    `json:"business_sector"`
	Phone          string    `json:"phone"`
	Bio            string    `json:"bio"`
	AssignedRoute  string    `json:"assigned_route"`
	BusinessStage  string    `json:"business_stage"`
	CurrentMonth   int       `json:"current_month"`
	Level          int       `json:"level"`
	TotalPoints    int       `json:"total_points"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	ProviderPassword = "password"
	StagePending     = "pendiente"
)

// LevelFor maps accumulated points to a level, 100 points per level.
func LevelFor(points int) int {
	if points < 0 {
		points = 0
	}
	return points/100 + 1
}

// Session is the per-user context kept in Redis while a login is active.
type Session struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	AvatarURL     string `json:"avatar_url"`
	SID           string `json:"-"`
	Provider      string `json:"provider"`
	WalletAddress string `json:"wallet_address"`
	CreatedAt     string `json:"created_at"`
}
