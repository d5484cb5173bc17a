package domain

import "time"

// WeeklySnapshot is one department's score for the week starting WeekStart
// (a Monday, see WeekStart).
type WeeklySnapshot struct {
	BrandID      string    `json:"brand_id" db:"brand_id"`
	Department   string    `json:"department" db:"department"`
	WeekStart    time.Time `json:"week_start" db:"week_start"`
	AverageScore int       `json:"average_score" db:"average_score"`
	GreenCount   int       `json:"green_count" db:"green_count"`
	TotalTargets int       `json:"total_targets" db:"total_targets"`
	Status       Status    `json:"status" db:"status"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func NewWeeklySnapshot(score DepartmentScore, now time.Time) *WeeklySnapshot {
	now = now.UTC()
	return &WeeklySnapshot{
		BrandID:      score.BrandID,
		Department:   score.Department,
		WeekStart:    WeekStart(now),
		AverageScore: score.AverageScore,
		GreenCount:   score.GreenCount,
		TotalTargets: score.TotalTargets,
		Status:       score.Status,
		UpdatedAt:    now,
	}
}
