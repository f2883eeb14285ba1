package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hired/interview-service/internal/models"
	"hired/interview-service/internal/repositories"
	"hired/interview-service/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	scriptService  services.ScriptService
	maxFileSize    int64
}

// NewUploadHandler builds the CV endpoints. docRepo may be nil when the
// database is disabled; uploads are then stored on disk only.
func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	scriptService services.ScriptService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		scriptService:  scriptService,
		maxFileSize:    maxFileSize,
	}
}

func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	cvFile, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Please upload a PDF CV as 'file'.",
		})
	}

	if cvFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	stored, err := h.storageService.SaveCV(cvFile)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFileType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CV file: %v", err),
		})
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         stored.Filename,
		OriginalFileName: cvFile.Filename,
		ContentType:      stored.ContentType,
		Size:             stored.Size,
		FilePath:         stored.Path,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if h.docRepo != nil {
		if err := h.docRepo.Create(&doc); err != nil {
			// Cleanup uploaded file if database insert fails
			if delErr := h.storageService.DeleteFile(stored.Filename); delErr != nil {
				log.Printf("⚠️  Failed to clean up %s: %v", stored.Filename, delErr)
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save CV document record: %v", err),
			})
		}
	}

	log.Printf("✅ CV %s uploaded as %s (%d bytes)", cvFile.Filename, stored.Filename, stored.Size)

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		Message:  "CV uploaded successfully",
		CVID:     doc.ID.String(),
		Filename: cvFile.Filename,
		Size:     stored.Size,
	})
}

// HandleGenerateScript turns an uploaded CV into a self-introduction script
// and overall feedback. The file is not kept.
func (h *UploadHandler) HandleGenerateScript(c *fiber.Ctx) error {
	cvFile, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Please upload a PDF CV as 'file'.",
		})
	}

	if cvFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	content, err := services.ReadUpload(cvFile)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := services.ValidatePDF(cvFile.Filename, content); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	pdfContent, err := h.pdfParser.ExtractTextFromBytes(content)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract text from CV: %v", err),
		})
	}

	script, err := h.scriptService.GenerateScript(c.UserContext(), pdfContent.Text)
	if err != nil {
		log.Printf("❌ Script generation failed for %s: %v", cvFile.Filename, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to generate script: %v", err),
		})
	}

	return c.JSON(models.ScriptResponse{Script: *script})
}
