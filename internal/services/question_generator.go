package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"hired/interview-service/internal/models"
)

// QuestionGenerator produces a question set for one interview. It returns
// whatever it could parse; counting and filtering is the caller's job.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, designation, experience, difficulty string, count int) ([]models.Question, error)
}

type geminiQuestionGenerator struct {
	llm       TextGenerator
	retriever ReferenceRetriever
	prompts   *PromptBuilder
}

// NewQuestionGenerator builds the LLM-backed generator. retriever may be nil.
func NewQuestionGenerator(llm TextGenerator, retriever ReferenceRetriever) QuestionGenerator {
	return &geminiQuestionGenerator{
		llm:       llm,
		retriever: retriever,
		prompts:   NewPromptBuilder(),
	}
}

func (g *geminiQuestionGenerator) GenerateQuestions(ctx context.Context, designation, experience, difficulty string, count int) ([]models.Question, error) {
	referenceContext := ""
	if g.retriever != nil {
		rc, err := g.retriever.RetrieveContext(ctx, designation)
		if err != nil {
			log.Printf("⚠️  Warning: Failed to retrieve role context for %s: %v", designation, err)
		} else {
			referenceContext = rc
		}
	}

	prompt := g.prompts.BuildQuestionGenerationPrompt(designation, experience, difficulty, count, referenceContext)
	log.Printf("📝 Question generation prompt length: %d characters", len(prompt))

	response, err := g.llm.GenerateText(ctx, prompt, 0.7)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	questions, err := parseQuestions(response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated questions: %w", err)
	}

	return questions, nil
}

type wrappedQuestions struct {
	Questions []models.Question `json:"questions"`
}

// parseQuestions accepts a JSON array, a {"questions": [...]} object, or the
// plain "Q1: ... / A1: ..." line format.
func parseQuestions(response string) ([]models.Question, error) {
	var questions []models.Question
	if err := parseJSONResponse(response, &questions); err == nil {
		return questions, nil
	}

	var wrapped wrappedQuestions
	if err := parseJSONResponse(response, &wrapped); err == nil && len(wrapped.Questions) > 0 {
		return wrapped.Questions, nil
	}

	if questions := parseQuestionLines(response); len(questions) > 0 {
		return questions, nil
	}

	return nil, fmt.Errorf("response is neither JSON nor Q/A formatted")
}

var (
	questionLine = regexp.MustCompile(`^\**Q\d+\**\s*[:.)]\**\s*(.+)$`)
	answerLine   = regexp.MustCompile(`^\**A\d+\**\s*[:.)]\**\s*(.+)$`)
)

func parseQuestionLines(response string) []models.Question {
	var questions []models.Question
	var current *models.Question

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := questionLine.FindStringSubmatch(line); m != nil {
			if current != nil {
				questions = append(questions, *current)
			}
			current = &models.Question{Question: strings.TrimSpace(m[1])}
			continue
		}

		if m := answerLine.FindStringSubmatch(line); m != nil && current != nil {
			current.ModelAnswer = strings.TrimSpace(m[1])
			questions = append(questions, *current)
			current = nil
		}
	}

	if current != nil {
		questions = append(questions, *current)
	}

	return questions
}
