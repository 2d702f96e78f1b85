package dto

// AnnouncementCreateRequest carries a new broadcast message.
type AnnouncementCreateRequest struct {
	Title          string `json:"title" validate:"required"`
	Content        string `json:"content" validate:"required"`
	TargetAudience string `json:"target_audience"`
	Priority       string `json:"priority"`
	ExpiresAt      string `json:"expires_at"`
}

// MaterialCreateRequest carries a new study material reference.
type MaterialCreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	SubjectID   uint   `json:"subject_id" validate:"required"`
	Type        string `json:"type" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
}

// SubjectCreateRequest carries a new subject definition.
type SubjectCreateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Code        string  `json:"code" validate:"required"`
	Description string  `json:"description"`
	TotalMarks  float64 `json:"total_marks"`
	PassMarks   float64 `json:"pass_marks"`
	Credits     int     `json:"credits"`
}
