package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

// ErrRollNumberTaken indicates the roll number is already assigned.
var ErrRollNumberTaken = errors.New("roll number already assigned")

// defaultStudentPassword is used when enrolment omits a password; students
// are expected to change it on first login.
const defaultStudentPassword = "student123"

// StudentService manages student enrolment and profiles.
type StudentService interface {
	List(ctx context.Context, filter repository.StudentFilter) ([]models.StudentProfile, error)
	Get(ctx context.Context, id uint) (models.StudentProfile, error)
	GetByUserID(ctx context.Context, userID uint) (models.StudentProfile, error)
	Create(ctx context.Context, payload dto.StudentCreateRequest) (models.StudentProfile, error)
	Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (models.StudentProfile, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	students  repository.StudentRepository
	users     repository.UserRepository
	subjects  repository.SubjectRepository
	plans     repository.StudyPlanRepository
	events    EventPublisher
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStudentService builds a new student service.
func NewStudentService(students repository.StudentRepository, users repository.UserRepository, subjects repository.SubjectRepository, plans repository.StudyPlanRepository, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		students:  students,
		users:     users,
		subjects:  subjects,
		plans:     plans,
		events:    events,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
		now:       time.Now,
	}
}

func (s *studentService) List(ctx context.Context, filter repository.StudentFilter) ([]models.StudentProfile, error) {
	return s.students.List(ctx, filter)
}

func (s *studentService) Get(ctx context.Context, id uint) (models.StudentProfile, error) {
	profile, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StudentProfile{}, ErrStudentNotFound
		}

		return models.StudentProfile{}, err
	}

	return profile, nil
}

func (s *studentService) GetByUserID(ctx context.Context, userID uint) (models.StudentProfile, error) {
	profile, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StudentProfile{}, ErrStudentNotFound
		}

		return models.StudentProfile{}, err
	}

	return profile, nil
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest) (models.StudentProfile, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.StudentProfile{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return models.StudentProfile{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.StudentProfile{}, err
	}

	password := payload.Password
	if password == "" {
		password = defaultStudentPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.StudentProfile{}, err
	}

	subjects, err := s.resolveSubjects(ctx, payload.SubjectIDs)
	if err != nil {
		return models.StudentProfile{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     payload.FullName,
		Role:         models.RoleStudent,
		Phone:        payload.Phone,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.StudentProfile{}, err
	}

	section := payload.Section
	if section == "" {
		section = "A"
	}

	profile := models.StudentProfile{
		UserID:        user.ID,
		RollNumber:    payload.RollNumber,
		Class:         payload.Class,
		Section:       section,
		AdmissionDate: s.now(),
		Subjects:      subjects,
	}
	if err := s.students.Create(ctx, &profile); err != nil {
		// Undo the orphaned account so enrolment can be retried.
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error().Err(delErr).Uint("user_id", user.ID).Msg("failed to remove orphaned account")
		}

		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return models.StudentProfile{}, ErrRollNumberTaken
		}

		return models.StudentProfile{}, err
	}
	profile.User = user

	plan := models.StudyPlan{StudentID: profile.ID}
	if err := s.plans.Create(ctx, &plan); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", profile.ID).Msg("failed to create study plan at enrolment")
	}

	s.logger.Info().Uint("student_id", profile.ID).Str("roll_number", profile.RollNumber).Msg("student enrolled")

	if s.events != nil {
		message := fmt.Sprintf("Welcome to %s, %s!", profile.Class, user.FullName)
		if _, err := s.events.Publish(ctx, dto.EventPublishRequest{
			UserID:  strconv.FormatUint(uint64(user.ID), 10),
			Type:    "student_enrolled",
			Message: message,
		}); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish enrolment event")
		}
	}

	return profile, nil
}

func (s *studentService) Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (models.StudentProfile, error) {
	profile, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StudentProfile{}, ErrStudentNotFound
		}

		return models.StudentProfile{}, err
	}

	if payload.RollNumber != nil {
		profile.RollNumber = *payload.RollNumber
	}
	if payload.Class != nil {
		profile.Class = *payload.Class
	}
	if payload.Section != nil {
		profile.Section = *payload.Section
	}
	if payload.SubjectIDs != nil {
		subjects, err := s.resolveSubjects(ctx, *payload.SubjectIDs)
		if err != nil {
			return models.StudentProfile{}, err
		}
		profile.Subjects = subjects
	}

	userChanged := false
	if payload.FullName != nil {
		profile.User.FullName = *payload.FullName
		userChanged = true
	}
	if payload.Phone != nil {
		profile.User.Phone = *payload.Phone
		userChanged = true
	}
	if payload.IsActive != nil {
		profile.User.IsActive = *payload.IsActive
		userChanged = true
	}

	if userChanged {
		if err := s.users.Update(ctx, &profile.User); err != nil {
			return models.StudentProfile{}, err
		}
	}

	if err := s.students.Update(ctx, &profile); err != nil {
		return models.StudentProfile{}, err
	}

	s.logger.Info().Uint("student_id", profile.ID).Msg("student updated")

	return profile, nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	profile, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}

		return err
	}

	if err := s.plans.DeleteByStudent(ctx, profile.ID); err != nil {
		return err
	}

	if err := s.students.Delete(ctx, profile.ID); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, profile.UserID); err != nil {
		return err
	}

	s.logger.Info().Uint("student_id", id).Msg("student removed")

	return nil
}

func (s *studentService) resolveSubjects(ctx context.Context, ids []uint) ([]models.Subject, error) {
	subjects := make([]models.Subject, 0, len(ids))
	for _, id := range ids {
		subject, err := s.subjects.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSubjectNotFound
			}

			return nil, err
		}
		subjects = append(subjects, subject)
	}

	return subjects, nil
}
