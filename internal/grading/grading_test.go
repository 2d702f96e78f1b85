package grading

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

func TestGradeBands(t *testing.T) {
	cases := []struct {
		name     string
		obtained float64
		total    float64
		letter   string
	}{
		{"exact A+ boundary", 90, 100, "A+"},
		{"just below A+", 89.999, 100, "A"},
		{"A boundary", 80, 100, "A"},
		{"B+ boundary", 70, 100, "B+"},
		{"B boundary", 60, 100, "B"},
		{"C+ boundary", 50, 100, "C+"},
		{"C boundary", 40, 100, "C"},
		{"D boundary", 33, 100, "D"},
		{"just below D", 32.9, 100, "F"},
		{"zero", 0, 100, "F"},
		{"non-hundred total", 45, 50, "A+"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Grade(tc.obtained, tc.total)
			require.NoError(t, err)
			require.Equal(t, tc.letter, result.Letter)
			require.InDelta(t, tc.obtained/tc.total*100, result.Percentage, 1e-9)
		})
	}
}

func TestGradeInvalidScore(t *testing.T) {
	_, err := Grade(50, 0)
	require.ErrorIs(t, err, ErrInvalidScore)

	_, err = Grade(50, -1)
	require.ErrorIs(t, err, ErrInvalidScore)

	_, err = Grade(-1, 100)
	require.ErrorIs(t, err, ErrInvalidScore)
}

func TestGradeOverHundredPercentPassesThrough(t *testing.T) {
	result, err := Grade(120, 100)
	require.NoError(t, err)
	require.InDelta(t, 120.0, result.Percentage, 1e-9)
	require.Equal(t, "A+", result.Letter)
}

func TestStudentAverageUsesRawMarks(t *testing.T) {
	marks := []models.Mark{
		{SubjectID: 1, MarksObtained: 45, TotalMarks: 100, Percentage: 45},
		{SubjectID: 1, MarksObtained: 52, TotalMarks: 100, Percentage: 52},
	}

	require.InDelta(t, 48.5, StudentAverage(marks), 1e-9)
	require.Zero(t, StudentAverage(nil))
}

func TestGroupBySubjectInsertionOrder(t *testing.T) {
	marks := []models.Mark{
		{SubjectID: 7, Subject: models.Subject{ID: 7, Name: "Physics"}, Percentage: 80},
		{SubjectID: 3, Subject: models.Subject{ID: 3, Name: "Maths"}, Percentage: 70},
		{SubjectID: 7, Subject: models.Subject{ID: 7, Name: "Physics"}, Percentage: 60},
	}

	groups := GroupBySubject(marks)
	require.Len(t, groups, 2)
	require.Equal(t, uint(7), groups[0].Subject.ID)
	require.Equal(t, uint(3), groups[1].Subject.ID)
	require.Len(t, groups[0].Marks, 2)
	require.Len(t, groups[1].Marks, 1)
}

func TestWeakSubjectsThreshold(t *testing.T) {
	groups := []SubjectGroup{
		{
			Subject: models.Subject{ID: 1, Name: "Chemistry"},
			Marks:   []models.Mark{{Percentage: 50}, {Percentage: 55}},
		},
		{
			Subject: models.Subject{ID: 2, Name: "History"},
			Marks:   []models.Mark{{Percentage: 65}, {Percentage: 70}},
		},
	}

	weak := WeakSubjects(groups, DefaultWeakThreshold)
	require.Len(t, weak, 1)
	require.Equal(t, uint(1), weak[0].Subject.ID)
}

func TestEndToEndWeakSubjectScenario(t *testing.T) {
	marks := []models.Mark{
		{SubjectID: 1, Subject: models.Subject{ID: 1, Name: "Subject A"}, MarksObtained: 45, TotalMarks: 100, Percentage: 45},
		{SubjectID: 1, Subject: models.Subject{ID: 1, Name: "Subject A"}, MarksObtained: 52, TotalMarks: 100, Percentage: 52},
	}

	require.InDelta(t, 48.5, StudentAverage(marks), 1e-9)

	weak := WeakSubjects(GroupBySubject(marks), DefaultWeakThreshold)
	require.Len(t, weak, 1)
	require.Equal(t, uint(1), weak[0].Subject.ID)
	require.InDelta(t, 48.5, weak[0].AveragePercentage(), 1e-9)
}
