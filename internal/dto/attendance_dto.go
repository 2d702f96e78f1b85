package dto

import "github.com/kiruthick103/studenthub-api/internal/models"

// AttendanceMarkRequest records or overwrites a student's status for a day.
type AttendanceMarkRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status" validate:"required"`
	SubjectID *uint  `json:"subject_id"`
	Notes     string `json:"notes"`
}

// AttendanceStats aggregates a student's attendance counts. Percentage
// counts late arrivals as attended.
type AttendanceStats struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Excused    int     `json:"excused"`
	Percentage float64 `json:"percentage"`
}

// AttendanceReportResponse bundles raw records with their aggregate.
type AttendanceReportResponse struct {
	Attendance []models.Attendance `json:"attendance"`
	Stats      AttendanceStats     `json:"stats"`
}
