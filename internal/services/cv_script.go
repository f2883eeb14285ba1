package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"hired/interview-service/internal/models"
)

type ScriptService interface {
	GenerateScript(ctx context.Context, cvText string) (*models.CVScript, error)
}

type scriptService struct {
	llm     TextGenerator
	prompts *PromptBuilder
}

func NewScriptService(llm TextGenerator) ScriptService {
	return &scriptService{
		llm:     llm,
		prompts: NewPromptBuilder(),
	}
}

func (s *scriptService) GenerateScript(ctx context.Context, cvText string) (*models.CVScript, error) {
	cvText = CleanText(cvText)
	if cvText == "" {
		return nil, fmt.Errorf("CV text is empty")
	}

	prompt := s.prompts.BuildCVScriptPrompt(cvText)
	log.Printf("📝 CV script prompt length: %d characters", len(prompt))

	response, err := s.llm.GenerateText(ctx, prompt, 0.5)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CV script: %w", err)
	}

	var script models.CVScript
	if err := parseJSONResponse(response, &script); err != nil {
		return nil, fmt.Errorf("failed to parse CV script response: %w", err)
	}

	if strings.TrimSpace(script.PersonalizedIntro) == "" {
		script.PersonalizedIntro = "No personalized introduction generated."
	}
	if strings.TrimSpace(script.OverallFeedback) == "" {
		script.OverallFeedback = "No overall feedback generated."
	}

	return &script, nil
}
