package models

import "time"

// StudentProfile carries the enrolment details attached to a student account.
type StudentProfile struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	RollNumber    string     `gorm:"size:64;uniqueIndex;not null" json:"roll_number"`
	Class         string     `gorm:"size:64;not null" json:"class"`
	Section       string     `gorm:"size:16;default:A" json:"section"`
	AdmissionDate time.Time  `json:"admission_date"`
	ParentName    string     `gorm:"size:255" json:"parent_name"`
	ParentPhone   string     `gorm:"size:32" json:"parent_phone"`
	Address       string     `gorm:"type:text" json:"address"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	User          User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
	Subjects      []Subject  `gorm:"many2many:student_subjects" json:"subjects"`
}
