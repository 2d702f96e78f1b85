package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

func newStudyPlanService(t *testing.T, name string) (*studyPlanService, models.StudentProfile, models.Subject) {
	t.Helper()

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db := openTestDB(t, name)
	student := createTestStudent(t, db, name+"@example.com", "R-"+name)
	subject := createTestSubject(t, db, "Chemistry", "CHEM-"+name)

	svc := NewStudyPlanService(
		repository.NewStudyPlanRepository(db),
		repository.NewSubjectRepository(db),
		redisClient,
		time.Minute,
		20,
		testValidator(),
		zerolog.Nop(),
	)

	return svc.(*studyPlanService), student, subject
}

func TestStudyPlanServiceCreatesPlanLazily(t *testing.T) {
	svc, student, _ := newStudyPlanService(t, "planlazy")
	ctx := context.Background()

	overview, err := svc.Overview(ctx, student.ID)
	require.NoError(t, err)
	require.NotZero(t, overview.Plan.ID)
	require.Empty(t, overview.TodayTasks)
	require.Zero(t, overview.Streak.CurrentStreak)
	require.InDelta(t, 20.0, overview.WeeklyProgress.TargetHours, 0.001)

	// A second read reuses the same plan.
	again, err := svc.Overview(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, overview.Plan.ID, again.Plan.ID)
}

func TestStudyPlanServiceAddTaskInvalidatesCache(t *testing.T) {
	svc, student, subject := newStudyPlanService(t, "plancache")
	ctx := context.Background()
	svc.now = func() time.Time { return time.Date(2024, time.March, 6, 10, 0, 0, 0, time.UTC) }

	before, err := svc.Overview(ctx, student.ID)
	require.NoError(t, err)
	require.Empty(t, before.TodayTasks)

	task, err := svc.AddTask(ctx, student.ID, dto.TaskCreateRequest{
		Title:           "Revise stoichiometry",
		SubjectID:       &subject.ID,
		DurationMinutes: 45,
		ScheduledDate:   "2024-03-06",
	})
	require.NoError(t, err)
	require.NotZero(t, task.ID)
	require.Equal(t, models.PriorityMedium, task.Priority)

	after, err := svc.Overview(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, after.TodayTasks, 1)
}

func TestStudyPlanServiceCompleteTaskAdvancesStreakOnce(t *testing.T) {
	svc, student, _ := newStudyPlanService(t, "planstreak")
	ctx := context.Background()
	day := time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	task, err := svc.AddTask(ctx, student.ID, dto.TaskCreateRequest{
		Title:         "Read chapter 4",
		ScheduledDate: "2024-03-06",
	})
	require.NoError(t, err)

	plan, err := svc.CompleteTask(ctx, student.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, 1, plan.Streak.CurrentStreak)
	require.Equal(t, 1, plan.Streak.LongestStreak)

	// Completing the same task again is a no-op for the streak.
	plan, err = svc.CompleteTask(ctx, student.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, 1, plan.Streak.CurrentStreak)

	// Next-day completion extends the streak.
	svc.now = func() time.Time { return day.AddDate(0, 0, 1) }
	next, err := svc.AddTask(ctx, student.ID, dto.TaskCreateRequest{
		Title:         "Read chapter 5",
		ScheduledDate: "2024-03-07",
	})
	require.NoError(t, err)

	plan, err = svc.CompleteTask(ctx, student.ID, next.ID)
	require.NoError(t, err)
	require.Equal(t, 2, plan.Streak.CurrentStreak)
	require.Equal(t, 2, plan.Streak.LongestStreak)
}

func TestStudyPlanServiceCompleteTaskUnknownID(t *testing.T) {
	svc, student, _ := newStudyPlanService(t, "planmissing")
	ctx := context.Background()

	_, err := svc.CompleteTask(ctx, student.ID, 12345)
	require.ErrorIs(t, err, ErrStudyTaskNotFound)
}

func TestStudyPlanServiceAddWeakSubjectAllowsDuplicates(t *testing.T) {
	svc, student, subject := newStudyPlanService(t, "planweak")
	ctx := context.Background()

	payload := dto.WeakSubjectRequest{SubjectID: subject.ID, Reason: "failing quizzes"}

	plan, err := svc.AddWeakSubject(ctx, student.ID, payload)
	require.NoError(t, err)
	require.Len(t, plan.WeakSubjects, 1)
	require.Equal(t, models.PriorityHigh, plan.WeakSubjects[0].Priority)

	plan, err = svc.AddWeakSubject(ctx, student.ID, payload)
	require.NoError(t, err)
	require.Len(t, plan.WeakSubjects, 2)
}

func TestStudyPlanServiceRejectsUnknownSubject(t *testing.T) {
	svc, student, subject := newStudyPlanService(t, "planbadsubject")
	ctx := context.Background()

	missing := subject.ID + 1000
	_, err := svc.AddTask(ctx, student.ID, dto.TaskCreateRequest{
		Title:         "Ghost subject",
		SubjectID:     &missing,
		ScheduledDate: "2024-03-06",
	})
	require.ErrorIs(t, err, ErrSubjectNotFound)

	_, err = svc.AddWeakSubject(ctx, student.ID, dto.WeakSubjectRequest{SubjectID: missing})
	require.ErrorIs(t, err, ErrSubjectNotFound)
}
