package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"hired/interview-service/internal/repositories"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type ResultHandler struct {
	resultRepo repositories.InterviewResultRepository
}

func NewResultHandler(resultRepo repositories.InterviewResultRepository) *ResultHandler {
	return &ResultHandler{
		resultRepo: resultRepo,
	}
}

// HandleListResults returns recent completed interviews, newest first.
func (h *ResultHandler) HandleListResults(c *fiber.Ctx) error {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be a positive integer",
			})
		}
		limit = min(parsed, maxHistoryLimit)
	}

	results, err := h.resultRepo.List(c.Query("designation"), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"results": results,
		"count":   len(results),
	})
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	result, err := h.resultRepo.FindBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview result not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}
