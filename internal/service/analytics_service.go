package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/grading"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/planner"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

// AnalyticsService aggregates cross-module statistics for dashboards.
type AnalyticsService interface {
	StudentAnalytics(ctx context.Context, studentID uint) (dto.StudentAnalyticsResponse, error)
	TeacherAnalytics(ctx context.Context) (dto.TeacherAnalyticsResponse, error)
}

type analyticsService struct {
	marks       repository.MarkRepository
	attendance  repository.AttendanceRepository
	plans       repository.StudyPlanRepository
	students    repository.StudentRepository
	subjects    repository.SubjectRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAnalyticsService builds a new analytics aggregator.
func NewAnalyticsService(marks repository.MarkRepository, attendance repository.AttendanceRepository, plans repository.StudyPlanRepository, students repository.StudentRepository, subjects repository.SubjectRepository, assignments repository.AssignmentRepository, users repository.UserRepository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		marks:       marks,
		attendance:  attendance,
		plans:       plans,
		students:    students,
		subjects:    subjects,
		assignments: assignments,
		users:       users,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "analytics_service").Logger(),
		now:         time.Now,
	}
}

func (s *analyticsService) StudentAnalytics(ctx context.Context, studentID uint) (dto.StudentAnalyticsResponse, error) {
	cacheKey := fmt.Sprintf("analytics:student:%d", studentID)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		var response dto.StudentAnalyticsResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			return response, nil
		}
	}

	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentAnalyticsResponse{}, ErrStudentNotFound
		}

		return dto.StudentAnalyticsResponse{}, err
	}

	marks, err := s.marks.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentAnalyticsResponse{}, err
	}

	trend := make([]dto.SubjectTrend, 0)
	for _, group := range grading.GroupBySubject(marks) {
		trend = append(trend, dto.SubjectTrend{
			Subject: group.Subject.Name,
			Average: group.AveragePercentage(),
		})
	}

	records, err := s.attendance.ListByStudent(ctx, studentID, repository.AttendanceFilter{})
	if err != nil {
		return dto.StudentAnalyticsResponse{}, err
	}

	response := dto.StudentAnalyticsResponse{
		GradeTrend:      trend,
		AttendanceStats: buildAttendanceStats(records),
		WeakSubjects:    make([]models.WeakSubject, 0),
	}

	plan, err := s.plans.GetByStudent(ctx, studentID)
	switch {
	case err == nil:
		completed := 0
		for _, task := range plan.Tasks {
			if task.Completed {
				completed++
			}
		}
		response.StudyStats = dto.StudyStats{
			Streak:         plan.Streak.CurrentStreak,
			LongestStreak:  plan.Streak.LongestStreak,
			CompletedTasks: completed,
			TotalTasks:     len(plan.Tasks),
		}
		if plan.WeakSubjects != nil {
			response.WeakSubjects = plan.WeakSubjects
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No plan yet; study stats stay zeroed.
	default:
		return dto.StudentAnalyticsResponse{}, err
	}

	s.writeCache(ctx, cacheKey, response)

	return response, nil
}

func (s *analyticsService) TeacherAnalytics(ctx context.Context) (dto.TeacherAnalyticsResponse, error) {
	cacheKey := "analytics:teacher"
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		var response dto.TeacherAnalyticsResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			return response, nil
		}
	}

	totalStudents, err := s.users.CountByRole(ctx, models.RoleStudent)
	if err != nil {
		return dto.TeacherAnalyticsResponse{}, err
	}

	totalSubjects, err := s.subjects.Count(ctx)
	if err != nil {
		return dto.TeacherAnalyticsResponse{}, err
	}

	totalAssignments, err := s.assignments.Count(ctx)
	if err != nil {
		return dto.TeacherAnalyticsResponse{}, err
	}

	todayAttendance, err := s.attendance.CountPresentOn(ctx, planner.TruncateToDay(s.now()))
	if err != nil {
		return dto.TeacherAnalyticsResponse{}, err
	}

	distribution, err := s.students.ClassDistribution(ctx)
	if err != nil {
		return dto.TeacherAnalyticsResponse{}, err
	}

	classes := make([]dto.ClassCount, 0, len(distribution))
	for _, bucket := range distribution {
		classes = append(classes, dto.ClassCount{Class: bucket.Class, Count: bucket.Count})
	}

	averages, err := s.marks.SubjectAverages(ctx)
	if err != nil {
		return dto.TeacherAnalyticsResponse{}, err
	}

	subjects, err := s.subjects.List(ctx, false)
	if err != nil {
		return dto.TeacherAnalyticsResponse{}, err
	}
	nameByID := make(map[uint]string, len(subjects))
	for _, subject := range subjects {
		nameByID[subject.ID] = subject.Name
	}

	subjectAverages := make([]dto.SubjectAverageView, 0, len(averages))
	for _, average := range averages {
		subjectAverages = append(subjectAverages, dto.SubjectAverageView{
			SubjectID:   average.SubjectID,
			SubjectName: nameByID[average.SubjectID],
			Average:     average.Average,
		})
	}

	response := dto.TeacherAnalyticsResponse{
		TotalStudents:    totalStudents,
		TotalSubjects:    totalSubjects,
		TotalAssignments: totalAssignments,
		TodayAttendance:  todayAttendance,
		ClassDistro:      classes,
		SubjectAverages:  subjectAverages,
	}

	s.writeCache(ctx, cacheKey, response)

	return response, nil
}

func (s *analyticsService) readCache(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
		}
		return nil, false
	}

	s.logger.Debug().Str("key", key).Msg("analytics cache hit")
	return []byte(cached), true
}

func (s *analyticsService) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store analytics cache")
	}
}
