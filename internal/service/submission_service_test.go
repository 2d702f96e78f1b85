package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

func newSubmissionService(t *testing.T, name string) (*submissionService, *gorm.DB, models.StudentProfile, models.Assignment) {
	t.Helper()

	db := openTestDB(t, name)
	student := createTestStudent(t, db, name+"@example.com", "R-"+name)
	subject := createTestSubject(t, db, "Biology", "BIO-"+name)

	assignment := models.Assignment{
		Title:      "Cell structure report",
		SubjectID:  subject.ID,
		DueDate:    time.Date(2024, time.March, 10, 23, 59, 0, 0, time.UTC),
		TotalMarks: 50,
		CreatedBy:  1,
		Status:     models.AssignmentStatusPublished,
	}
	require.NoError(t, db.Create(&assignment).Error)

	svc := NewSubmissionService(
		repository.NewSubmissionRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewStudentRepository(db),
		nil,
		testValidator(),
		zerolog.Nop(),
	)

	return svc.(*submissionService), db, student, assignment
}

func TestSubmissionServiceSubmitOnTimeAndLate(t *testing.T) {
	svc, _, student, assignment := newSubmissionService(t, "sublate")
	ctx := context.Background()

	svc.now = func() time.Time { return assignment.DueDate.Add(-time.Hour) }
	submission, err := svc.Submit(ctx, student.ID, dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		FileURL:      "https://files.example.com/report-v1.pdf",
	})
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusSubmitted, submission.Status)

	// Re-submitting after the deadline overwrites and flags it late.
	svc.now = func() time.Time { return assignment.DueDate.Add(time.Hour) }
	resubmitted, err := svc.Submit(ctx, student.ID, dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		FileURL:      "https://files.example.com/report-v2.pdf",
	})
	require.NoError(t, err)
	require.Equal(t, submission.ID, resubmitted.ID)
	require.Equal(t, models.SubmissionStatusLate, resubmitted.Status)
	require.Equal(t, "https://files.example.com/report-v2.pdf", resubmitted.FileURL)
}

func TestSubmissionServiceRejectsUnpublishedAssignment(t *testing.T) {
	svc, db, student, assignment := newSubmissionService(t, "subdraft")
	ctx := context.Background()

	require.NoError(t, db.Model(&assignment).Update("status", models.AssignmentStatusDraft).Error)

	_, err := svc.Submit(ctx, student.ID, dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		FileURL:      "https://files.example.com/report.pdf",
	})
	require.ErrorIs(t, err, ErrAssignmentNotOpen)
}

func TestSubmissionServiceGradeAssignsLetter(t *testing.T) {
	svc, _, student, assignment := newSubmissionService(t, "subgrade")
	ctx := context.Background()

	svc.now = func() time.Time { return assignment.DueDate.Add(-time.Hour) }
	submission, err := svc.Submit(ctx, student.ID, dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		FileURL:      "https://files.example.com/report.pdf",
	})
	require.NoError(t, err)

	// 45 of 50 is 90 percent.
	graded, err := svc.Grade(ctx, submission.ID, dto.GradeSubmissionRequest{Marks: 45, Feedback: "well structured"})
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusGraded, graded.Status)
	require.NotNil(t, graded.Marks)
	require.InDelta(t, 45.0, *graded.Marks, 0.001)
	require.Equal(t, "A+", graded.LetterGrade)

	// A graded submission cannot be overwritten by the student.
	_, err = svc.Submit(ctx, student.ID, dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		FileURL:      "https://files.example.com/report-v2.pdf",
	})
	require.ErrorIs(t, err, ErrSubmissionAlreadyGraded)
}

func TestSubmissionServiceGradeUnknownSubmission(t *testing.T) {
	svc, _, _, _ := newSubmissionService(t, "submissing")
	ctx := context.Background()

	_, err := svc.Grade(ctx, 9999, dto.GradeSubmissionRequest{Marks: 10})
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}
