// Package planner derives day-scoped views over a student's study plan and
// maintains the consecutive-day completion streak. All functions take the
// current time explicitly so callers control the clock; nothing here reads
// wall-clock time or performs I/O.
package planner

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

// ErrTaskNotFound indicates the referenced task does not exist in the plan.
var ErrTaskNotFound = errors.New("task not found")

// Defaults for task views and weekly goals.
const (
	DefaultUpcomingLimit     = 5
	DefaultWeeklyTargetHours = 20.0
)

// WeeklyProgress reports completed versus target study hours for the week
// containing the reference time.
type WeeklyProgress struct {
	CompletedHours float64 `json:"completed_hours"`
	TargetHours    float64 `json:"target_hours"`
}

// TruncateToDay discards the time-of-day component.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	hours := TruncateToDay(to).Sub(TruncateToDay(from)).Hours()
	return int(math.Round(hours / 24))
}

// TodayTasks returns the tasks scheduled on the same calendar day as today.
func TodayTasks(tasks []models.StudyTask, today time.Time) []models.StudyTask {
	day := TruncateToDay(today)
	matched := make([]models.StudyTask, 0)
	for _, task := range tasks {
		if TruncateToDay(task.ScheduledDate).Equal(day) {
			matched = append(matched, task)
		}
	}

	return matched
}

// UpcomingTasks returns up to limit incomplete tasks scheduled after today,
// ordered by scheduled date ascending. A non-positive limit falls back to
// DefaultUpcomingLimit.
func UpcomingTasks(tasks []models.StudyTask, today time.Time, limit int) []models.StudyTask {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	day := TruncateToDay(today)
	upcoming := make([]models.StudyTask, 0)
	for _, task := range tasks {
		if !task.Completed && TruncateToDay(task.ScheduledDate).After(day) {
			upcoming = append(upcoming, task)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledDate.Before(upcoming[j].ScheduledDate)
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	return upcoming
}

// Progress computes completed study hours for the Sunday-to-Saturday week
// containing now, summed over completed tasks scheduled inside the window
// and rounded to one decimal. A non-positive target falls back to
// DefaultWeeklyTargetHours.
func Progress(tasks []models.StudyTask, now time.Time, targetHours float64) WeeklyProgress {
	if targetHours <= 0 {
		targetHours = DefaultWeeklyTargetHours
	}

	weekStart := TruncateToDay(now).AddDate(0, 0, -int(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 6)

	var completedHours float64
	for _, task := range tasks {
		if !task.Completed {
			continue
		}
		day := TruncateToDay(task.ScheduledDate)
		if day.Before(weekStart) || day.After(weekEnd) {
			continue
		}
		completedHours += float64(task.DurationMinutes) / 60
	}

	return WeeklyProgress{
		CompletedHours: math.Round(completedHours*10) / 10,
		TargetHours:    targetHours,
	}
}

// CompleteTask marks the task completed and advances the streak exactly
// once. Completing an already-completed task is a no-op; the streak is not
// advanced a second time.
func CompleteTask(plan *models.StudyPlan, taskID uint, now time.Time) error {
	for i := range plan.Tasks {
		if plan.Tasks[i].ID != taskID {
			continue
		}
		if plan.Tasks[i].Completed {
			return nil
		}

		completedAt := now
		plan.Tasks[i].Completed = true
		plan.Tasks[i].CompletedAt = &completedAt
		UpdateStreak(&plan.Streak, now)
		return nil
	}

	return ErrTaskNotFound
}

// UpdateStreak advances the consecutive-day counter for a completion on
// today. A one-day gap extends the streak, a larger gap restarts it at 1,
// and a second completion on the same day leaves the counter untouched.
// A reference date earlier than the last study date never decrements the
// counter; only the last study date moves.
func UpdateStreak(streak *models.StreakState, today time.Time) {
	day := TruncateToDay(today)

	if streak.LastStudyDate == nil {
		streak.CurrentStreak = 1
	} else {
		switch gap := daysBetween(*streak.LastStudyDate, day); {
		case gap == 1:
			streak.CurrentStreak++
		case gap > 1:
			streak.CurrentStreak = 1
		}
	}

	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastStudyDate = &day
}

// AddWeakSubject appends a focus entry to the plan. Duplicates for the same
// subject are allowed.
func AddWeakSubject(plan *models.StudyPlan, subjectID uint, reason, priority, improvementPlan string) {
	if priority == "" {
		priority = models.PriorityHigh
	}

	plan.WeakSubjects = append(plan.WeakSubjects, models.WeakSubject{
		StudyPlanID:     plan.ID,
		SubjectID:       subjectID,
		Reason:          reason,
		Priority:        priority,
		ImprovementPlan: improvementPlan,
	})
}
