package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"hired/interview-service/internal/models"
)

type DocumentRepository interface {
	Create(document *models.Document) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if err := d.db.Create(document).Error; err != nil {
		return fmt.Errorf("failed to create CV document: %w", err)
	}

	return nil
}
