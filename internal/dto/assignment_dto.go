package dto

import "github.com/kiruthick103/studenthub-api/internal/models"

// AssignmentCreateRequest carries a new assignment definition.
type AssignmentCreateRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	SubjectID   uint    `json:"subject_id" validate:"required"`
	DueDate     string  `json:"due_date" validate:"required"`
	TotalMarks  float64 `json:"total_marks"`
	Status      string  `json:"status"`
}

// AssignmentUpdateRequest carries a partial assignment update.
type AssignmentUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	DueDate     *string  `json:"due_date"`
	TotalMarks  *float64 `json:"total_marks"`
	Status      *string  `json:"status"`
}

// StudentAssignmentView pairs an assignment with the requesting student's
// own submission, if any.
type StudentAssignmentView struct {
	Assignment   models.Assignment  `json:"assignment"`
	MySubmission *models.Submission `json:"my_submission"`
	Overdue      bool               `json:"overdue"`
}

// SubmissionCreateRequest carries a student's assignment submission.
type SubmissionCreateRequest struct {
	AssignmentID uint   `json:"assignment_id" validate:"required"`
	FileURL      string `json:"file_url" validate:"required,url"`
	Notes        string `json:"notes"`
}

// GradeSubmissionRequest carries a teacher's grading of a submission.
type GradeSubmissionRequest struct {
	Marks    float64 `json:"marks" validate:"gte=0"`
	Feedback string  `json:"feedback"`
}
