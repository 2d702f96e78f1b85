package models

import "time"

// Exam kinds a mark can be recorded against.
const (
	ExamTypeQuiz       = "quiz"
	ExamTypeMidterm    = "midterm"
	ExamTypeFinal      = "final"
	ExamTypeAssignment = "assignment"
	ExamTypePractical  = "practical"
	ExamTypeProject    = "project"
)

// Mark is one graded assessment result for a student in a subject.
// Percentage and Grade are derived fields recomputed on every write;
// the (student, subject, exam type) triple acts as the upsert key.
type Mark struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StudentID     uint      `gorm:"not null;uniqueIndex:idx_marks_student_subject_exam" json:"student_id"`
	SubjectID     uint      `gorm:"not null;uniqueIndex:idx_marks_student_subject_exam" json:"subject_id"`
	ExamType      string    `gorm:"size:32;not null;uniqueIndex:idx_marks_student_subject_exam" json:"exam_type"`
	MarksObtained float64   `gorm:"not null" json:"marks_obtained"`
	TotalMarks    float64   `gorm:"not null;default:100" json:"total_marks"`
	Percentage    float64   `json:"percentage"`
	Grade         string    `gorm:"size:4;default:F" json:"grade"`
	Remarks       string    `gorm:"type:text" json:"remarks"`
	MarkedBy      uint      `gorm:"not null" json:"marked_by"`
	ExamDate      time.Time `json:"exam_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Subject       Subject   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"subject"`
}

// IsValidExamType reports whether the given value is a known exam kind.
func IsValidExamType(value string) bool {
	switch value {
	case ExamTypeQuiz, ExamTypeMidterm, ExamTypeFinal, ExamTypeAssignment, ExamTypePractical, ExamTypeProject:
		return true
	default:
		return false
	}
}
