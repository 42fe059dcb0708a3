package dto

import "time"

// CreateSectionRequest sección de capacitación.
type CreateSectionRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Order int    `json:"order" validate:"min=0"`
}

// SectionResponse salida de una sección.
type SectionResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLessonRequest lección de capacitación.
type CreateLessonRequest struct {
	SectionID  string   `json:"section_id" validate:"required"`
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Body       string   `json:"body" validate:"required"`
	MediaLinks []string `json:"media_links" validate:"omitempty,dive,url"`
	Tags       []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
}

// LessonResponse salida de una lección.
type LessonResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	SectionID  string    `json:"section_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	MediaLinks []string  `json:"media_links"`
	Tags       []string  `json:"tags"`
	UpdatedAt  time.Time `json:"updated_at"`
}
