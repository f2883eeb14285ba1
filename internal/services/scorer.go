package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"hired/interview-service/internal/models"
)

// AnswerScorer grades a transcribed answer against its question.
type AnswerScorer interface {
	ScoreAnswer(ctx context.Context, transcript string, question models.Question, maxScore int) (*models.AnswerEvaluation, error)
}

type geminiAnswerScorer struct {
	llm     TextGenerator
	prompts *PromptBuilder
}

func NewAnswerScorer(llm TextGenerator) AnswerScorer {
	return &geminiAnswerScorer{
		llm:     llm,
		prompts: NewPromptBuilder(),
	}
}

func (s *geminiAnswerScorer) ScoreAnswer(ctx context.Context, transcript string, question models.Question, maxScore int) (*models.AnswerEvaluation, error) {
	prompt := s.prompts.BuildAnswerScoringPrompt(question, transcript, maxScore)

	response, err := s.llm.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer evaluation: %w", err)
	}

	return parseEvaluation(response)
}

type rawEvaluation struct {
	Score      *float64 `json:"score"`
	Assessment string   `json:"assessment"`
	Feedback   string   `json:"feedback"`
}

func parseEvaluation(response string) (*models.AnswerEvaluation, error) {
	if strings.TrimSpace(response) == "" {
		return nil, fmt.Errorf("empty evaluation response")
	}

	var raw rawEvaluation
	if err := parseJSONResponse(response, &raw); err != nil {
		return nil, err
	}

	if raw.Score == nil {
		return nil, fmt.Errorf("evaluation has no score")
	}

	assessment, ok := models.ParseAssessment(raw.Assessment)
	if !ok {
		return nil, fmt.Errorf("unknown assessment %q", raw.Assessment)
	}

	return &models.AnswerEvaluation{
		Score:      int(math.Round(*raw.Score)),
		Assessment: assessment,
		Feedback:   strings.TrimSpace(raw.Feedback),
	}, nil
}
