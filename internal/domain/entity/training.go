package entity

import "time"

// TrainingSection agrupa lecciones (recetas, estándares de servicio...).
type TrainingSection struct {
	ID        string
	CompanyID string
	Title     string
	Order     int
	CreatedAt time.Time
}

// TrainingLesson contenido de capacitación.
type TrainingLesson struct {
	ID         string
	CompanyID  string
	SectionID  string
	Title      string
	Body       string
	MediaLinks []string
	Tags       []string
	UpdatedAt  time.Time
}
