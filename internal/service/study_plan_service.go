package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/planner"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

// Planner errors surfaced to handlers.
var (
	ErrStudyTaskNotFound = errors.New("study task not found")
	ErrInvalidPriority   = errors.New("invalid priority")
)

const scheduledDateLayout = "2006-01-02"

// StudyPlanService manages the per-student planner: tasks, weekly progress
// and the completion streak.
type StudyPlanService interface {
	Overview(ctx context.Context, studentID uint) (dto.StudyPlanOverviewResponse, error)
	AddTask(ctx context.Context, studentID uint, payload dto.TaskCreateRequest) (models.StudyTask, error)
	CompleteTask(ctx context.Context, studentID, taskID uint) (models.StudyPlan, error)
	AddWeakSubject(ctx context.Context, studentID uint, payload dto.WeakSubjectRequest) (models.StudyPlan, error)
}

type studyPlanService struct {
	plans       repository.StudyPlanRepository
	subjects    repository.SubjectRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	targetHours float64
	validator   *validator.Validate
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewStudyPlanService builds a new study plan service. A non-positive
// weekly target falls back to the planner default.
func NewStudyPlanService(plans repository.StudyPlanRepository, subjects repository.SubjectRepository, cache *redis.Client, cacheTTL time.Duration, targetHours float64, validate *validator.Validate, logger zerolog.Logger) StudyPlanService {
	if targetHours <= 0 {
		targetHours = planner.DefaultWeeklyTargetHours
	}

	return &studyPlanService{
		plans:       plans,
		subjects:    subjects,
		cache:       cache,
		cacheTTL:    cacheTTL,
		targetHours: targetHours,
		validator:   validate,
		logger:      logger.With().Str("component", "study_plan_service").Logger(),
		tracer:      otel.Tracer("github.com/kiruthick103/studenthub-api/internal/service/studyplan"),
		now:         time.Now,
	}
}

func (s *studyPlanService) Overview(ctx context.Context, studentID uint) (dto.StudyPlanOverviewResponse, error) {
	cacheKey := fmt.Sprintf("plan:student:%d", studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudyPlanOverviewResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("plan cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read plan cache")
		}
	}

	plan, err := s.loadOrCreate(ctx, studentID)
	if err != nil {
		return dto.StudyPlanOverviewResponse{}, err
	}

	now := s.now()
	response := dto.StudyPlanOverviewResponse{
		Plan:           plan,
		TodayTasks:     planner.TodayTasks(plan.Tasks, now),
		UpcomingTasks:  planner.UpcomingTasks(plan.Tasks, now, planner.DefaultUpcomingLimit),
		WeeklyProgress: planner.Progress(plan.Tasks, now, s.targetHours),
		Streak:         plan.Streak,
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store plan cache")
			}
		}
	}

	return response, nil
}

func (s *studyPlanService) AddTask(ctx context.Context, studentID uint, payload dto.TaskCreateRequest) (models.StudyTask, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.StudyTask{}, err
	}

	priority := payload.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.IsValidPriority(priority) {
		return models.StudyTask{}, ErrInvalidPriority
	}

	scheduledDate, err := time.Parse(scheduledDateLayout, payload.ScheduledDate)
	if err != nil {
		return models.StudyTask{}, fmt.Errorf("invalid scheduled date: %w", err)
	}

	if payload.SubjectID != nil {
		if _, err := s.subjects.GetByID(ctx, *payload.SubjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.StudyTask{}, ErrSubjectNotFound
			}

			return models.StudyTask{}, err
		}
	}

	plan, err := s.loadOrCreate(ctx, studentID)
	if err != nil {
		return models.StudyTask{}, err
	}

	task := models.StudyTask{
		StudyPlanID:     plan.ID,
		Title:           payload.Title,
		SubjectID:       payload.SubjectID,
		Priority:        priority,
		DurationMinutes: payload.DurationMinutes,
		ScheduledDate:   scheduledDate,
		ScheduledTime:   payload.ScheduledTime,
		Notes:           payload.Notes,
	}
	if task.DurationMinutes <= 0 {
		task.DurationMinutes = 60
	}
	if task.ScheduledTime == "" {
		task.ScheduledTime = "09:00"
	}

	if err := s.plans.AddTask(ctx, &task); err != nil {
		return models.StudyTask{}, err
	}

	s.invalidate(ctx, studentID)
	s.logger.Info().Uint("student_id", studentID).Uint("task_id", task.ID).Msg("study task added")

	return task, nil
}

func (s *studyPlanService) CompleteTask(ctx context.Context, studentID, taskID uint) (models.StudyPlan, error) {
	spanCtx, span := s.tracer.Start(ctx, "studyplan.complete_task", trace.WithAttributes(
		attribute.Int64("student.id", int64(studentID)),
		attribute.Int64("task.id", int64(taskID)),
	))
	defer span.End()

	plan, err := s.loadOrCreate(spanCtx, studentID)
	if err != nil {
		span.RecordError(err)
		return models.StudyPlan{}, err
	}

	if err := planner.CompleteTask(&plan, taskID, s.now()); err != nil {
		if errors.Is(err, planner.ErrTaskNotFound) {
			return models.StudyPlan{}, ErrStudyTaskNotFound
		}

		return models.StudyPlan{}, err
	}

	if err := s.plans.Save(spanCtx, &plan); err != nil {
		span.RecordError(err)
		return models.StudyPlan{}, err
	}

	s.invalidate(spanCtx, studentID)
	s.logger.Info().
		Uint("student_id", studentID).
		Uint("task_id", taskID).
		Int("streak", plan.Streak.CurrentStreak).
		Msg("study task completed")

	return plan, nil
}

func (s *studyPlanService) AddWeakSubject(ctx context.Context, studentID uint, payload dto.WeakSubjectRequest) (models.StudyPlan, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.StudyPlan{}, err
	}

	if payload.Priority != "" && !models.IsValidPriority(payload.Priority) {
		return models.StudyPlan{}, ErrInvalidPriority
	}

	if _, err := s.subjects.GetByID(ctx, payload.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StudyPlan{}, ErrSubjectNotFound
		}

		return models.StudyPlan{}, err
	}

	plan, err := s.loadOrCreate(ctx, studentID)
	if err != nil {
		return models.StudyPlan{}, err
	}

	planner.AddWeakSubject(&plan, payload.SubjectID, payload.Reason, payload.Priority, payload.ImprovementPlan)

	if err := s.plans.Save(ctx, &plan); err != nil {
		return models.StudyPlan{}, err
	}

	s.invalidate(ctx, studentID)
	s.logger.Info().Uint("student_id", studentID).Uint("subject_id", payload.SubjectID).Msg("weak subject added")

	return plan, nil
}

// loadOrCreate fetches the student's plan, creating an empty one on first
// access.
func (s *studyPlanService) loadOrCreate(ctx context.Context, studentID uint) (models.StudyPlan, error) {
	plan, err := s.plans.GetByStudent(ctx, studentID)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.StudyPlan{}, err
	}

	plan = models.StudyPlan{StudentID: studentID}
	if err := s.plans.Create(ctx, &plan); err != nil {
		return models.StudyPlan{}, err
	}

	s.logger.Info().Uint("student_id", studentID).Msg("study plan created")

	return plan, nil
}

func (s *studyPlanService) invalidate(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}

	cacheKey := fmt.Sprintf("plan:student:%d", studentID)
	if err := s.cache.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate plan cache")
	}
}
