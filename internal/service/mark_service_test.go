package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/grading"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

func newMarkService(t *testing.T, name string) (MarkService, *markFixture) {
	t.Helper()

	db := openTestDB(t, name)
	fixture := &markFixture{
		student: createTestStudent(t, db, name+"@example.com", "R-"+name),
		math:    createTestSubject(t, db, "Mathematics", "MATH-"+name),
		physics: createTestSubject(t, db, "Physics", "PHY-"+name),
	}

	svc := NewMarkService(
		repository.NewMarkRepository(db),
		repository.NewStudentRepository(db),
		repository.NewSubjectRepository(db),
		nil,
		testValidator(),
		grading.DefaultWeakThreshold,
		zerolog.Nop(),
	)

	return svc, fixture
}

type markFixture struct {
	student models.StudentProfile
	math    models.Subject
	physics models.Subject
}

func TestMarkServiceUpsertCreatesAndGrades(t *testing.T) {
	svc, fx := newMarkService(t, "markcreate")
	ctx := context.Background()

	mark, err := svc.Upsert(ctx, 99, dto.MarkUpsertRequest{
		StudentID:     fx.student.ID,
		SubjectID:     fx.math.ID,
		ExamType:      models.ExamTypeMidterm,
		MarksObtained: 85,
		TotalMarks:    100,
	})
	require.NoError(t, err)
	require.NotZero(t, mark.ID)
	require.InDelta(t, 85.0, mark.Percentage, 0.001)
	require.Equal(t, "A", mark.Grade)
	require.Equal(t, uint(99), mark.MarkedBy)
}

func TestMarkServiceUpsertOverwritesSameKey(t *testing.T) {
	svc, fx := newMarkService(t, "markupdate")
	ctx := context.Background()

	first, err := svc.Upsert(ctx, 1, dto.MarkUpsertRequest{
		StudentID:     fx.student.ID,
		SubjectID:     fx.math.ID,
		ExamType:      models.ExamTypeQuiz,
		MarksObtained: 40,
		TotalMarks:    100,
	})
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, 1, dto.MarkUpsertRequest{
		StudentID:     fx.student.ID,
		SubjectID:     fx.math.ID,
		ExamType:      models.ExamTypeQuiz,
		MarksObtained: 92,
		TotalMarks:    100,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "A+", second.Grade)

	summary, err := svc.Summary(ctx, fx.student.ID)
	require.NoError(t, err)
	require.Len(t, summary.Marks, 1)
}

func TestMarkServiceRejectsBadInput(t *testing.T) {
	svc, fx := newMarkService(t, "markbad")
	ctx := context.Background()

	_, err := svc.Upsert(ctx, 1, dto.MarkUpsertRequest{
		StudentID:     fx.student.ID,
		SubjectID:     fx.math.ID,
		ExamType:      "viva",
		MarksObtained: 10,
		TotalMarks:    100,
	})
	require.ErrorIs(t, err, ErrInvalidExamType)

	_, err = svc.Upsert(ctx, 1, dto.MarkUpsertRequest{
		StudentID:     fx.student.ID,
		SubjectID:     fx.math.ID,
		ExamType:      models.ExamTypeQuiz,
		MarksObtained: 10,
		TotalMarks:    0,
	})
	require.ErrorIs(t, err, grading.ErrInvalidScore)

	_, err = svc.Upsert(ctx, 1, dto.MarkUpsertRequest{
		StudentID:     fx.student.ID + 1000,
		SubjectID:     fx.math.ID,
		ExamType:      models.ExamTypeQuiz,
		MarksObtained: 10,
		TotalMarks:    100,
	})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestMarkServiceSummaryFlagsWeakSubjects(t *testing.T) {
	svc, fx := newMarkService(t, "marksummary")
	ctx := context.Background()

	seed := []dto.MarkUpsertRequest{
		{StudentID: fx.student.ID, SubjectID: fx.math.ID, ExamType: models.ExamTypeQuiz, MarksObtained: 50, TotalMarks: 100},
		{StudentID: fx.student.ID, SubjectID: fx.math.ID, ExamType: models.ExamTypeMidterm, MarksObtained: 55, TotalMarks: 100},
		{StudentID: fx.student.ID, SubjectID: fx.physics.ID, ExamType: models.ExamTypeQuiz, MarksObtained: 90, TotalMarks: 100},
	}
	for _, payload := range seed {
		_, err := svc.Upsert(ctx, 1, payload)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, fx.student.ID)
	require.NoError(t, err)
	require.Len(t, summary.Marks, 3)
	require.Len(t, summary.SubjectWise, 2)
	// Raw mean of obtained marks, not percentages.
	require.InDelta(t, 65.0, summary.Average, 0.001)
	require.Len(t, summary.WeakSubjects, 1)
	require.Equal(t, fx.math.ID, summary.WeakSubjects[0].Subject.ID)
}
