package models

import "time"

// Assignment publication statuses.
const (
	AssignmentStatusDraft     = "draft"
	AssignmentStatusPublished = "published"
	AssignmentStatusClosed    = "closed"
)

// Assignment is a piece of work set by a teacher with a due date.
type Assignment struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	SubjectID   uint         `gorm:"not null" json:"subject_id"`
	DueDate     time.Time    `gorm:"not null" json:"due_date"`
	TotalMarks  float64      `gorm:"default:100" json:"total_marks"`
	CreatedBy   uint         `gorm:"not null" json:"created_by"`
	Status      string       `gorm:"size:16;not null;default:draft" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Subject     Subject      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"subject"`
	Submissions []Submission `json:"submissions,omitempty"`
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
