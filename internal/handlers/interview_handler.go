package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"hired/interview-service/internal/models"
	"hired/interview-service/internal/services"
)

const defaultAudioMimeType = "audio/webm"

type InterviewHandler struct {
	interviewService services.InterviewService
	maxAudioSize     int64
}

func NewInterviewHandler(interviewService services.InterviewService, maxAudioSize int64) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		maxAudioSize:     maxAudioSize,
	}
}

// HandleStart generates the question set and opens a new session.
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Designation) == "" || strings.TrimSpace(req.Experience) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "designation and experience are required",
		})
	}

	resp, err := h.interviewService.StartInterview(c.UserContext(), req.Designation, req.Experience, req.Difficulty)
	if err != nil {
		return interviewError(c, err)
	}

	return c.JSON(resp)
}

func (h *InterviewHandler) HandleNext(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "session_id is required",
		})
	}

	resp, err := h.interviewService.GetNext(c.UserContext(), sessionID)
	if err != nil {
		return interviewError(c, err)
	}

	return c.JSON(resp)
}

// HandleAudioAnswer accepts a recorded answer as multipart form data with
// session_id, question_number and the audio under "audio_file" or "file".
func (h *InterviewHandler) HandleAudioAnswer(c *fiber.Ctx) error {
	sessionID := strings.TrimSpace(c.FormValue("session_id"))
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "session_id is required",
		})
	}

	questionNumber, err := strconv.Atoi(strings.TrimSpace(c.FormValue("question_number")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question_number must be an integer",
		})
	}

	audioFile, err := formAudioFile(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No audio file uploaded. Please upload 'audio_file'.",
		})
	}

	if h.maxAudioSize > 0 && audioFile.Size > h.maxAudioSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Audio file too large. Max size: %d bytes", h.maxAudioSize),
		})
	}

	audio, err := services.ReadUpload(audioFile)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(audio) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Audio file is empty",
		})
	}

	mimeType := audioFile.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = defaultAudioMimeType
	}

	result, err := h.interviewService.SubmitAnswer(c.UserContext(), sessionID, questionNumber, audio, mimeType)
	if err != nil {
		return interviewError(c, err)
	}

	return c.JSON(models.AudioAnswerResponse{
		Status:           "success",
		Transcription:    result.Transcription,
		ValidationResult: string(result.Evaluation.Assessment),
		Feedback:         result.Evaluation.Feedback,
		Score:            result.Evaluation.Score,
		TotalScore:       result.TotalScore,
	})
}

func formAudioFile(c *fiber.Ctx) (*multipart.FileHeader, error) {
	if file, err := c.FormFile("audio_file"); err == nil {
		return file, nil
	}
	return c.FormFile("file")
}

// interviewError maps the interview error taxonomy onto HTTP statuses.
func interviewError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrSessionCompleted),
		errors.Is(err, services.ErrQuestionAlreadyAnswered):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidQuestionNumber):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrTranscriptionFailed):
		status = fiber.StatusBadGateway
	case errors.Is(err, services.ErrQuestionGenerationFailed):
		status = fiber.StatusInternalServerError
	default:
		log.Printf("❌ Unexpected interview error: %v", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
