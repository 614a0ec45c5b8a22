package entity

import "time"

// Achievement categories
const (
	CategoryLearning  = "aprendizaje"
	CategorySales     = "ventas"
	CategoryCommunity = "comunidad"
)

// Trigger types evaluated by the achievement check.
const (
	TriggerCourseCompleted      = "course_completed"
	TriggerFirstCourseCompleted = "first_course_completed"
	TriggerTransactionCreated   = "transaction_created"
	TriggerPostCreated          = "post_created"
	TriggerCommentCreated       = "comment_created"
)

type Achievement struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
	Category    string `json:"category"`
	TriggerType string `json:"trigger_type"`
	Threshold   int    `json:"threshold"`
}

// Reached reports whether value satisfies the achievement for trigger.
func (a Achievement) Reached(trigger string, value int) bool {
	return a.TriggerType == trigger && value >= a.Threshold
}

// ProgressFor returns completion towards the threshold in percent, capped at 100.
func (a Achievement) ProgressFor(value int) float64 {
	if a.Threshold <= 0 || value >= a.Threshold {
		return 100
	}
	if value <= 0 {
		return 0
	}
	return float64(value) * 100 / float64(a.Threshold)
}

type UserAchievement struct {
	UserID        string     `json:"user_id"`
	AchievementID string     `json:"achievement_id"`
	Progress      float64    `json:"progress"`
	Unlocked      bool       `json:"unlocked"`
	UnlockedAt    *time.Time `json:"unlocked_at"`
}
