package models

import "time"

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// StreakState counts consecutive study days together with the historical
// maximum. LastStudyDate is kept at day granularity.
type StreakState struct {
	CurrentStreak int        `gorm:"default:0" json:"current_streak"`
	LongestStreak int        `gorm:"default:0" json:"longest_streak"`
	LastStudyDate *time.Time `json:"last_study_date"`
}

// StudyPlan is the per-student planner aggregate. Exactly one plan exists
// per student; it is created lazily on first access.
type StudyPlan struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	StudentID    uint          `gorm:"uniqueIndex;not null" json:"student_id"`
	Streak       StreakState   `gorm:"embedded;embeddedPrefix:streak_" json:"streak"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Tasks        []StudyTask   `json:"tasks"`
	WeakSubjects []WeakSubject `json:"weak_subjects"`
}

// StudyTask is a scheduled study activity belonging to a plan.
type StudyTask struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	StudyPlanID     uint       `gorm:"not null;index" json:"study_plan_id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	SubjectID       *uint      `json:"subject_id"`
	Priority        string     `gorm:"size:16;default:medium" json:"priority"`
	DurationMinutes int        `gorm:"default:60" json:"duration_minutes"`
	ScheduledDate   time.Time  `gorm:"not null" json:"scheduled_date"`
	ScheduledTime   string     `gorm:"size:8;default:09:00" json:"scheduled_time"`
	Completed       bool       `gorm:"default:false" json:"completed"`
	CompletedAt     *time.Time `json:"completed_at"`
	Notes           string     `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// WeakSubject marks a subject the student should focus on. Duplicate
// entries for the same subject are allowed; deduplication is a product
// decision that has not been taken.
type WeakSubject struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StudyPlanID     uint      `gorm:"not null;index" json:"study_plan_id"`
	SubjectID       uint      `gorm:"not null" json:"subject_id"`
	Reason          string    `gorm:"type:text" json:"reason"`
	Priority        string    `gorm:"size:16;default:high" json:"priority"`
	ImprovementPlan string    `gorm:"type:text" json:"improvement_plan"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsValidPriority reports whether the given value is a known priority.
func IsValidPriority(value string) bool {
	switch value {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
