package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

func day(yearDay int) time.Time {
	// Jan 2024 starts on a Monday; offsets keep tests readable.
	return time.Date(2024, time.January, yearDay, 0, 0, 0, 0, time.UTC)
}

func TestTodayTasksIgnoresTimeOfDay(t *testing.T) {
	tasks := []models.StudyTask{
		{ID: 1, Title: "Morning revision", ScheduledDate: time.Date(2024, time.January, 10, 7, 30, 0, 0, time.UTC)},
		{ID: 2, Title: "Tomorrow", ScheduledDate: day(11)},
		{ID: 3, Title: "Evening drill", ScheduledDate: time.Date(2024, time.January, 10, 22, 0, 0, 0, time.UTC)},
	}

	today := TodayTasks(tasks, time.Date(2024, time.January, 10, 13, 45, 12, 0, time.UTC))
	require.Len(t, today, 2)
	require.Equal(t, uint(1), today[0].ID)
	require.Equal(t, uint(3), today[1].ID)
}

func TestUpcomingTasksOrderingAndLimit(t *testing.T) {
	tasks := []models.StudyTask{
		{ID: 1, ScheduledDate: day(15)},
		{ID: 2, ScheduledDate: day(12)},
		{ID: 3, ScheduledDate: day(20), Completed: true},
		{ID: 4, ScheduledDate: day(10)}, // today, excluded
		{ID: 5, ScheduledDate: day(8)},  // past, excluded
		{ID: 6, ScheduledDate: day(13)},
		{ID: 7, ScheduledDate: day(14)},
		{ID: 8, ScheduledDate: day(16)},
		{ID: 9, ScheduledDate: day(17)},
	}

	upcoming := UpcomingTasks(tasks, day(10), DefaultUpcomingLimit)
	require.Len(t, upcoming, DefaultUpcomingLimit)
	for i := 1; i < len(upcoming); i++ {
		require.False(t, upcoming[i].ScheduledDate.Before(upcoming[i-1].ScheduledDate))
	}
	require.Equal(t, uint(2), upcoming[0].ID)
	require.Equal(t, uint(8), upcoming[4].ID)
}

func TestWeeklyProgressWindow(t *testing.T) {
	// 2024-01-10 is a Wednesday; the week runs Sun Jan 7 through Sat Jan 13.
	now := time.Date(2024, time.January, 10, 18, 0, 0, 0, time.UTC)
	tasks := []models.StudyTask{
		{ID: 1, DurationMinutes: 90, Completed: true, ScheduledDate: day(8)},
		{ID: 2, DurationMinutes: 30, Completed: true, ScheduledDate: day(13)},
		{ID: 3, DurationMinutes: 120, Completed: true, ScheduledDate: day(14)}, // next week
		{ID: 4, DurationMinutes: 60, Completed: false, ScheduledDate: day(9)}, // not completed
	}

	progress := Progress(tasks, now, 0)
	require.InDelta(t, 2.0, progress.CompletedHours, 1e-9)
	require.InDelta(t, DefaultWeeklyTargetHours, progress.TargetHours, 1e-9)
}

func TestWeeklyProgressRounding(t *testing.T) {
	now := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	tasks := []models.StudyTask{
		{ID: 1, DurationMinutes: 50, Completed: true, ScheduledDate: day(9)},
	}

	progress := Progress(tasks, now, 10)
	require.InDelta(t, 0.8, progress.CompletedHours, 1e-9)
	require.InDelta(t, 10.0, progress.TargetHours, 1e-9)
}

func TestStreakRoundTrip(t *testing.T) {
	streak := models.StreakState{}

	UpdateStreak(&streak, day(1))
	UpdateStreak(&streak, day(2))
	UpdateStreak(&streak, day(3))
	require.Equal(t, 3, streak.CurrentStreak)
	require.Equal(t, 3, streak.LongestStreak)

	// Gap of two days breaks the streak but keeps the record.
	UpdateStreak(&streak, day(5))
	require.Equal(t, 1, streak.CurrentStreak)
	require.Equal(t, 3, streak.LongestStreak)
	require.True(t, streak.LastStudyDate.Equal(day(5)))
}

func TestStreakSameDayCompletion(t *testing.T) {
	streak := models.StreakState{}

	UpdateStreak(&streak, day(1))
	UpdateStreak(&streak, day(1))
	require.Equal(t, 1, streak.CurrentStreak)
	require.Equal(t, 1, streak.LongestStreak)
}

func TestStreakBackdatedCompletionIsNoOp(t *testing.T) {
	// Backdated completions have no agreed policy; the counter must never
	// go down, only the last study date moves.
	streak := models.StreakState{}
	UpdateStreak(&streak, day(5))
	UpdateStreak(&streak, day(6))
	require.Equal(t, 2, streak.CurrentStreak)

	UpdateStreak(&streak, day(3))
	require.Equal(t, 2, streak.CurrentStreak)
	require.Equal(t, 2, streak.LongestStreak)
	require.True(t, streak.LastStudyDate.Equal(day(3)))
}

func TestCompleteTaskUpdatesStreakOnce(t *testing.T) {
	plan := &models.StudyPlan{
		ID:        1,
		StudentID: 9,
		Tasks: []models.StudyTask{
			{ID: 11, Title: "Revise algebra", ScheduledDate: day(4)},
		},
	}

	now := time.Date(2024, time.January, 4, 20, 15, 0, 0, time.UTC)
	require.NoError(t, CompleteTask(plan, 11, now))
	require.True(t, plan.Tasks[0].Completed)
	require.NotNil(t, plan.Tasks[0].CompletedAt)
	require.Equal(t, 1, plan.Streak.CurrentStreak)

	// Completing again is a no-op and does not touch the streak.
	require.NoError(t, CompleteTask(plan, 11, now.Add(time.Hour)))
	require.Equal(t, 1, plan.Streak.CurrentStreak)
	require.True(t, plan.Tasks[0].CompletedAt.Equal(now))
}

func TestCompleteTaskNotFound(t *testing.T) {
	plan := &models.StudyPlan{ID: 1, StudentID: 9}
	err := CompleteTask(plan, 99, day(4))
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestAddWeakSubjectAllowsDuplicates(t *testing.T) {
	plan := &models.StudyPlan{ID: 2, StudentID: 3}

	AddWeakSubject(plan, 7, "failing quizzes", "", "")
	AddWeakSubject(plan, 7, "failed midterm", models.PriorityMedium, "daily practice")

	require.Len(t, plan.WeakSubjects, 2)
	require.Equal(t, models.PriorityHigh, plan.WeakSubjects[0].Priority)
	require.Equal(t, models.PriorityMedium, plan.WeakSubjects[1].Priority)
}
