package dto

import (
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/planner"
)

// TaskCreateRequest carries a new study task for the caller's plan.
type TaskCreateRequest struct {
	Title           string `json:"title" validate:"required"`
	SubjectID       *uint  `json:"subject_id"`
	Priority        string `json:"priority"`
	DurationMinutes int    `json:"duration_minutes"`
	ScheduledDate   string `json:"scheduled_date" validate:"required"`
	ScheduledTime   string `json:"scheduled_time"`
	Notes           string `json:"notes"`
}

// WeakSubjectRequest adds a focus subject to the caller's plan.
type WeakSubjectRequest struct {
	SubjectID       uint   `json:"subject_id" validate:"required"`
	Reason          string `json:"reason"`
	Priority        string `json:"priority"`
	ImprovementPlan string `json:"improvement_plan"`
}

// StudyPlanOverviewResponse is the planner dashboard: the full plan plus
// derived day-scoped views and the completion streak.
type StudyPlanOverviewResponse struct {
	Plan           models.StudyPlan       `json:"study_plan"`
	TodayTasks     []models.StudyTask     `json:"today_tasks"`
	UpcomingTasks  []models.StudyTask     `json:"upcoming_tasks"`
	WeeklyProgress planner.WeeklyProgress `json:"weekly_progress"`
	Streak         models.StreakState     `json:"streak"`
}
