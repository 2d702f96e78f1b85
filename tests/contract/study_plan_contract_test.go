package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/handler"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/planner"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

type stubPlannerService struct {
	response dto.StudyPlanOverviewResponse
}

func (s stubPlannerService) Overview(context.Context, uint) (dto.StudyPlanOverviewResponse, error) {
	return s.response, nil
}

func (s stubPlannerService) AddTask(context.Context, uint, dto.TaskCreateRequest) (models.StudyTask, error) {
	return models.StudyTask{}, nil
}

func (s stubPlannerService) CompleteTask(context.Context, uint, uint) (models.StudyPlan, error) {
	return models.StudyPlan{}, nil
}

func (s stubPlannerService) AddWeakSubject(context.Context, uint, dto.WeakSubjectRequest) (models.StudyPlan, error) {
	return models.StudyPlan{}, nil
}

type stubProfileService struct {
	profile models.StudentProfile
}

func (s stubProfileService) List(context.Context, repository.StudentFilter) ([]models.StudentProfile, error) {
	return nil, nil
}

func (s stubProfileService) Get(context.Context, uint) (models.StudentProfile, error) {
	return s.profile, nil
}

func (s stubProfileService) GetByUserID(context.Context, uint) (models.StudentProfile, error) {
	return s.profile, nil
}

func (s stubProfileService) Create(context.Context, dto.StudentCreateRequest) (models.StudentProfile, error) {
	return s.profile, nil
}

func (s stubProfileService) Update(context.Context, uint, dto.StudentUpdateRequest) (models.StudentProfile, error) {
	return s.profile, nil
}

func (s stubProfileService) Delete(context.Context, uint) error {
	return nil
}

func TestStudyPlanOverviewContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "study_plan_overview.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	now := time.Now().UTC()
	subjectID := uint(3)
	response := dto.StudyPlanOverviewResponse{
		Plan: models.StudyPlan{
			ID:        1,
			StudentID: 5,
			Streak:    models.StreakState{CurrentStreak: 4, LongestStreak: 9, LastStudyDate: &now},
			Tasks: []models.StudyTask{
				{
					ID:              11,
					StudyPlanID:     1,
					Title:           "Revise trigonometry",
					SubjectID:       &subjectID,
					Priority:        models.PriorityHigh,
					DurationMinutes: 90,
					ScheduledDate:   now,
					ScheduledTime:   "09:00",
					Completed:       true,
					CompletedAt:     &now,
				},
			},
			WeakSubjects: []models.WeakSubject{
				{ID: 2, StudyPlanID: 1, SubjectID: subjectID, Reason: "low test scores", Priority: models.PriorityHigh},
			},
		},
		TodayTasks: []models.StudyTask{
			{ID: 12, StudyPlanID: 1, Title: "Practice past papers", Priority: models.PriorityMedium, DurationMinutes: 60, ScheduledDate: now, ScheduledTime: "17:30"},
		},
		UpcomingTasks:  []models.StudyTask{},
		WeeklyProgress: planner.WeeklyProgress{CompletedHours: 6.5, TargetHours: 20},
		Streak:         models.StreakState{CurrentStreak: 4, LongestStreak: 9, LastStudyDate: &now},
	}

	plans := stubPlannerService{response: response}
	students := stubProfileService{profile: models.StudentProfile{ID: 5, UserID: 7}}

	app := fiber.New()
	group := app.Group("/api/student", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		c.Locals("user_role", models.RoleStudent)
		return c.Next()
	})
	handler.NewStudyPlanHandler(plans, students, zerolog.Nop()).Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/student/study-plan", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
