package models

import "time"

// Attendance statuses.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
	AttendanceStatusExcused = "excused"
)

// Attendance records a student's presence on a calendar day.
// One record per (student, day); marking twice overwrites the status.
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_attendance_student_date" json:"student_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_attendance_student_date" json:"date"`
	Status    string    `gorm:"size:16;not null;default:present" json:"status"`
	SubjectID *uint     `json:"subject_id"`
	MarkedBy  uint      `gorm:"not null" json:"marked_by"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Attended reports whether the status counts towards attendance percentage.
// Late arrivals still count as attended.
func (a Attendance) Attended() bool {
	return a.Status == AttendanceStatusPresent || a.Status == AttendanceStatusLate
}

// IsValidAttendanceStatus reports whether the given value is a known status.
func IsValidAttendanceStatus(value string) bool {
	switch value {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}
