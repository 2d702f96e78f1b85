package models

import "time"

// Submission statuses.
const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusLate      = "late"
	SubmissionStatusGraded    = "graded"
)

// Submission is a student's answer to an assignment. Re-submitting before
// grading overwrites the previous files and timestamp.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"assignment_id"`
	StudentID    uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"student_id"`
	FileURL      string     `gorm:"size:512" json:"file_url"`
	Notes        string     `gorm:"type:text" json:"notes"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	Marks        *float64   `json:"marks"`
	LetterGrade  string     `gorm:"size:4" json:"letter_grade"`
	Feedback     string     `gorm:"type:text" json:"feedback"`
	Status       string     `gorm:"size:16;not null;default:submitted" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Assignment   Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
}

// IsGraded reports whether the submission has a final grade.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}
