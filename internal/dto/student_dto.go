package dto

// StudentCreateRequest carries a new student enrolment.
type StudentCreateRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name" validate:"required"`
	Phone      string `json:"phone"`
	RollNumber string `json:"roll_number" validate:"required"`
	Class      string `json:"class" validate:"required"`
	Section    string `json:"section"`
	SubjectIDs []uint `json:"subject_ids"`
}

// StudentUpdateRequest carries a partial student update.
type StudentUpdateRequest struct {
	FullName   *string `json:"full_name"`
	Phone      *string `json:"phone"`
	RollNumber *string `json:"roll_number"`
	Class      *string `json:"class"`
	Section    *string `json:"section"`
	SubjectIDs *[]uint `json:"subject_ids"`
	IsActive   *bool   `json:"is_active"`
}
