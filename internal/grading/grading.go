// Package grading turns raw assessment scores into percentages and letter
// grades and aggregates them into subject-level summaries. All functions are
// pure; callers load marks from storage and persist any derived state.
package grading

import (
	"errors"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

// ErrInvalidScore indicates malformed grading input: a non-positive total
// or negative obtained marks. Scores above the total are accepted and yield
// a percentage over 100.
var ErrInvalidScore = errors.New("invalid score")

// DefaultWeakThreshold is the percentage below which a subject average is
// considered weak.
const DefaultWeakThreshold = 60.0

// Result is the derived view of a single score.
type Result struct {
	Percentage float64 `json:"percentage"`
	Letter     string  `json:"grade"`
}

// Grade converts obtained/total marks into a percentage and letter grade.
func Grade(marksObtained, totalMarks float64) (Result, error) {
	if totalMarks <= 0 || marksObtained < 0 {
		return Result{}, ErrInvalidScore
	}

	percentage := marksObtained / totalMarks * 100
	return Result{Percentage: percentage, Letter: Letter(percentage)}, nil
}

// Letter maps a percentage onto the fixed grade bands, evaluated high to
// low with the first match winning.
func Letter(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B+"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C+"
	case percentage >= 40:
		return "C"
	case percentage >= 33:
		return "D"
	default:
		return "F"
	}
}

// StudentAverage returns the arithmetic mean of raw obtained marks across
// all records. Marks with differing totals are deliberately not normalised
// to percentages; this mirrors how the product has always reported the
// overall average.
func StudentAverage(marks []models.Mark) float64 {
	if len(marks) == 0 {
		return 0
	}

	var sum float64
	for _, mark := range marks {
		sum += mark.MarksObtained
	}

	return sum / float64(len(marks))
}

// SubjectGroup collects a student's marks for one subject.
type SubjectGroup struct {
	Subject models.Subject `json:"subject"`
	Marks   []models.Mark  `json:"marks"`
}

// AveragePercentage is the mean of the derived percentages in the group.
func (g SubjectGroup) AveragePercentage() float64 {
	if len(g.Marks) == 0 {
		return 0
	}

	var sum float64
	for _, mark := range g.Marks {
		sum += mark.Percentage
	}

	return sum / float64(len(g.Marks))
}

// GroupBySubject buckets marks per subject, ordered by first occurrence.
func GroupBySubject(marks []models.Mark) []SubjectGroup {
	index := make(map[uint]int, len(marks))
	groups := make([]SubjectGroup, 0, len(marks))

	for _, mark := range marks {
		position, exists := index[mark.SubjectID]
		if !exists {
			position = len(groups)
			index[mark.SubjectID] = position
			groups = append(groups, SubjectGroup{Subject: mark.Subject})
		}
		groups[position].Marks = append(groups[position].Marks, mark)
	}

	return groups
}

// WeakSubjects returns the groups whose average percentage falls below the
// threshold.
func WeakSubjects(groups []SubjectGroup, thresholdPercent float64) []SubjectGroup {
	weak := make([]SubjectGroup, 0)
	for _, group := range groups {
		if group.AveragePercentage() < thresholdPercent {
			weak = append(weak, group)
		}
	}

	return weak
}
