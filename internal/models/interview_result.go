package models

import (
	"time"

	"github.com/google/uuid"
)

// InterviewResult is the persisted summary of a completed interview.
type InterviewResult struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID         string    `gorm:"type:text;uniqueIndex;not null" json:"session_id"`
	Designation       string    `gorm:"type:text;index" json:"designation"`
	ExperienceLevel   string    `gorm:"type:text" json:"experience_level"`
	Difficulty        string    `gorm:"type:text" json:"difficulty"`
	TotalScore        int       `json:"total_score"`
	PercentageScore   float64   `gorm:"type:decimal(5,2)" json:"percentage_score"`
	QuestionsAnswered int       `json:"questions_answered"`
	TotalQuestions    int       `json:"total_questions"`
	Answers           string    `gorm:"type:jsonb" json:"answers"`
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
	CreatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InterviewResult) TableName() string {
	return "interview_results"
}
