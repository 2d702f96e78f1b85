package models

import "time"

// Announcement priorities and audiences.
const (
	AnnouncementPriorityLow    = "low"
	AnnouncementPriorityNormal = "normal"
	AnnouncementPriorityHigh   = "high"
	AnnouncementPriorityUrgent = "urgent"

	AudienceAll      = "all"
	AudienceStudents = "students"
	AudienceTeachers = "teachers"
)

// Announcement is a broadcast message posted by a teacher.
type Announcement struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	Title          string             `gorm:"size:255;not null" json:"title"`
	Content        string             `gorm:"type:text;not null" json:"content"`
	PostedBy       uint               `gorm:"not null" json:"posted_by"`
	TargetAudience string             `gorm:"size:32;default:all" json:"target_audience"`
	Priority       string             `gorm:"size:16;default:normal" json:"priority"`
	ExpiresAt      *time.Time         `json:"expires_at"`
	IsActive       bool               `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Reads          []AnnouncementRead `json:"reads,omitempty"`
}

// AnnouncementRead tracks which users have seen an announcement.
type AnnouncementRead struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AnnouncementID uint      `gorm:"not null;uniqueIndex:idx_announcement_read_user" json:"announcement_id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_announcement_read_user" json:"user_id"`
	ReadAt         time.Time `json:"read_at"`
}
