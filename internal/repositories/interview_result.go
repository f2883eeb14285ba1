package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hired/interview-service/internal/models"
)

var ErrNotFound = errors.New("record not found")

type InterviewResultRepository interface {
	Create(result *models.InterviewResult) error
	FindBySessionID(sessionID string) (*models.InterviewResult, error)
	List(designation string, limit int) ([]models.InterviewResult, error)
}

type interviewResultRepository struct {
	db *gorm.DB
}

func NewInterviewResultRepository(db *gorm.DB) InterviewResultRepository {
	return &interviewResultRepository{db: db}
}

func (r *interviewResultRepository) Create(result *models.InterviewResult) error {
	if err := r.db.Create(result).Error; err != nil {
		return fmt.Errorf("failed to create interview result: %w", err)
	}
	return nil
}

func (r *interviewResultRepository) FindBySessionID(sessionID string) (*models.InterviewResult, error) {
	var result models.InterviewResult
	if err := r.db.Where("session_id = ?", sessionID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find interview result: %w", err)
	}
	return &result, nil
}

// List returns the most recent results first, optionally filtered by designation.
func (r *interviewResultRepository) List(designation string, limit int) ([]models.InterviewResult, error) {
	var results []models.InterviewResult

	query := r.db.Order("completed_at DESC").Limit(limit)
	if designation != "" {
		query = query.Where("LOWER(designation) = LOWER(?)", designation)
	}

	if err := query.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to list interview results: %w", err)
	}

	return results, nil
}
