package dto

import (
	"github.com/kiruthick103/studenthub-api/internal/grading"
	"github.com/kiruthick103/studenthub-api/internal/models"
)

// MarkUpsertRequest records or overwrites one assessment result. The
// (student, subject, exam type) triple is the upsert key.
type MarkUpsertRequest struct {
	StudentID     uint    `json:"student_id" validate:"required"`
	SubjectID     uint    `json:"subject_id" validate:"required"`
	ExamType      string  `json:"exam_type" validate:"required"`
	MarksObtained float64 `json:"marks_obtained"`
	TotalMarks    float64 `json:"total_marks"`
	Remarks       string  `json:"remarks"`
}

// MarkSummaryResponse is the student-facing marks report: raw records,
// subject-wise groups, the overall raw average and flagged weak subjects.
type MarkSummaryResponse struct {
	Marks        []models.Mark          `json:"marks"`
	SubjectWise  []grading.SubjectGroup `json:"subject_wise"`
	Average      float64                `json:"average"`
	WeakSubjects []grading.SubjectGroup `json:"weak_subjects"`
}
