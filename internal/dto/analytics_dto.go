package dto

import "github.com/kiruthick103/studenthub-api/internal/models"

// SubjectTrend is one subject's mean percentage across a student's marks.
type SubjectTrend struct {
	Subject string  `json:"subject"`
	Average float64 `json:"average"`
}

// StudyStats summarises planner activity for the analytics view.
type StudyStats struct {
	Streak         int `json:"streak"`
	LongestStreak  int `json:"longest_streak"`
	CompletedTasks int `json:"completed_tasks"`
	TotalTasks     int `json:"total_tasks"`
}

// StudentAnalyticsResponse is the per-student analytics dashboard.
type StudentAnalyticsResponse struct {
	GradeTrend      []SubjectTrend       `json:"grade_trend"`
	AttendanceStats AttendanceStats      `json:"attendance_stats"`
	StudyStats      StudyStats           `json:"study_stats"`
	WeakSubjects    []models.WeakSubject `json:"weak_subjects"`
}

// ClassCount is one bucket of the class distribution aggregate.
type ClassCount struct {
	Class string `json:"class"`
	Count int64  `json:"count"`
}

// SubjectAverageView is one subject's mean raw marks across all students.
type SubjectAverageView struct {
	SubjectID   uint    `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	Average     float64 `json:"average"`
}

// TeacherAnalyticsResponse is the school-wide analytics dashboard.
type TeacherAnalyticsResponse struct {
	TotalStudents    int64                `json:"total_students"`
	TotalSubjects    int64                `json:"total_subjects"`
	TotalAssignments int64                `json:"total_assignments"`
	TodayAttendance  int64                `json:"today_attendance"`
	ClassDistro      []ClassCount         `json:"class_distribution"`
	SubjectAverages  []SubjectAverageView `json:"subject_averages"`
}
