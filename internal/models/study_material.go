package models

import "time"

// Study material kinds.
const (
	MaterialTypePDF   = "pdf"
	MaterialTypeVideo = "video"
	MaterialTypeLink  = "link"
	MaterialTypeDoc   = "doc"
	MaterialTypePPT   = "ppt"
	MaterialTypeOther = "other"
)

// StudyMaterial is a teacher-shared learning resource referenced by URL.
type StudyMaterial struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	SubjectID   uint      `gorm:"not null" json:"subject_id"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	URL         string    `gorm:"size:512;not null" json:"url"`
	UploadedBy  uint      `gorm:"not null" json:"uploaded_by"`
	Downloads   int64     `gorm:"default:0" json:"downloads"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Subject     Subject   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"subject"`
}

// IsValidMaterialType reports whether the given value is a known kind.
func IsValidMaterialType(value string) bool {
	switch value {
	case MaterialTypePDF, MaterialTypeVideo, MaterialTypeLink, MaterialTypeDoc, MaterialTypePPT, MaterialTypeOther:
		return true
	default:
		return false
	}
}
