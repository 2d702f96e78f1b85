package models

import "time"

// Subject is a course a student can be enrolled in and graded on.
type Subject struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Code              string    `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Description       string    `gorm:"type:text" json:"description"`
	TotalMarks        float64   `gorm:"default:100" json:"total_marks"`
	PassMarks         float64   `gorm:"default:40" json:"pass_marks"`
	Credits           int       `gorm:"default:3" json:"credits"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	AssignedTeacherID *uint     `json:"assigned_teacher_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
