package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

func newAttendanceService(t *testing.T, name string) (AttendanceService, models.StudentProfile) {
	t.Helper()

	db := openTestDB(t, name)
	student := createTestStudent(t, db, name+"@example.com", "R-"+name)

	svc := NewAttendanceService(
		repository.NewAttendanceRepository(db),
		repository.NewStudentRepository(db),
		nil,
		testValidator(),
		zerolog.Nop(),
	)

	return svc, student
}

func TestAttendanceServiceMarkOverwritesSameDay(t *testing.T) {
	svc, student := newAttendanceService(t, "attoverwrite")
	ctx := context.Background()

	first, err := svc.Mark(ctx, 7, dto.AttendanceMarkRequest{
		StudentID: student.ID,
		Date:      "2024-03-06",
		Status:    models.AttendanceStatusAbsent,
	})
	require.NoError(t, err)

	second, err := svc.Mark(ctx, 7, dto.AttendanceMarkRequest{
		StudentID: student.ID,
		Date:      "2024-03-06",
		Status:    models.AttendanceStatusPresent,
		Notes:     "arrived after roll call correction",
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, models.AttendanceStatusPresent, second.Status)

	report, err := svc.Report(ctx, student.ID, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, report.Stats.Total)
	require.Equal(t, 1, report.Stats.Present)
}

func TestAttendanceServiceStatsCountLateAsAttended(t *testing.T) {
	svc, student := newAttendanceService(t, "attstats")
	ctx := context.Background()

	days := []struct {
		date   string
		status string
	}{
		{"2024-03-04", models.AttendanceStatusPresent},
		{"2024-03-05", models.AttendanceStatusLate},
		{"2024-03-06", models.AttendanceStatusAbsent},
		{"2024-03-07", models.AttendanceStatusExcused},
	}
	for _, day := range days {
		_, err := svc.Mark(ctx, 7, dto.AttendanceMarkRequest{
			StudentID: student.ID,
			Date:      day.date,
			Status:    day.status,
		})
		require.NoError(t, err)
	}

	report, err := svc.Report(ctx, student.ID, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 4, report.Stats.Total)
	require.Equal(t, 1, report.Stats.Present)
	require.Equal(t, 1, report.Stats.Late)
	require.Equal(t, 1, report.Stats.Absent)
	require.Equal(t, 1, report.Stats.Excused)
	require.InDelta(t, 50.0, report.Stats.Percentage, 0.001)
}

func TestAttendanceServiceRejectsBadInput(t *testing.T) {
	svc, student := newAttendanceService(t, "attbad")
	ctx := context.Background()

	_, err := svc.Mark(ctx, 7, dto.AttendanceMarkRequest{
		StudentID: student.ID,
		Date:      "2024-03-06",
		Status:    "vacation",
	})
	require.ErrorIs(t, err, ErrInvalidAttendanceStatus)

	_, err = svc.Mark(ctx, 7, dto.AttendanceMarkRequest{
		StudentID: student.ID,
		Date:      "06-03-2024",
		Status:    models.AttendanceStatusPresent,
	})
	require.Error(t, err)

	_, err = svc.Mark(ctx, 7, dto.AttendanceMarkRequest{
		StudentID: student.ID + 1000,
		Date:      "2024-03-06",
		Status:    models.AttendanceStatusPresent,
	})
	require.ErrorIs(t, err, ErrStudentNotFound)
}
