package services

import (
	"fmt"
	"strings"

	"hired/interview-service/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionGenerationPrompt creates prompt for a role-specific question set
func (pb *PromptBuilder) BuildQuestionGenerationPrompt(designation, experience, difficulty string, count int, referenceContext string) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf(`You are an expert technical interviewer specializing in %s positions.

Generate exactly %d unique technical interview questions for a %s %s.

Requirements:
1. Questions MUST be specifically focused on the %s role
2. Cover core technical concepts, industry best practices, common tools and technologies,
   security and compliance (if relevant) and problem-solving scenarios for the role
3. Difficulty level: %s
4. Experience level: %s
5. Each question must be unique, brief and not generic
6. Prefer practical, real-world scenarios
`, designation, count, experience, designation, designation, difficulty, experience))

	if strings.TrimSpace(referenceContext) != "" {
		prompt.WriteString("\nROLE REFERENCE MATERIAL:\n")
		prompt.WriteString(referenceContext)
		prompt.WriteString("\n")
	}

	prompt.WriteString(fmt.Sprintf(`
Return ONLY a JSON array with exactly %d items in the following format:
[
  {
    "question": "<brief, focused question>",
    "model_answer": "<clear, concise expected answer>",
    "key_points": ["<evaluation criterion>", "<evaluation criterion>"]
  }
]`, count))

	return prompt.String()
}

// BuildAnswerScoringPrompt creates prompt for scoring one transcribed answer
func (pb *PromptBuilder) BuildAnswerScoringPrompt(question models.Question, transcript string, maxScore int) string {
	keyPoints := "None provided"
	if len(question.KeyPoints) > 0 {
		keyPoints = "- " + strings.Join(question.KeyPoints, "\n- ")
	}

	return fmt.Sprintf(`You are an expert technical interviewer evaluating a candidate's spoken answer.

QUESTION:
%s

MODEL ANSWER:
%s

KEY POINTS:
%s

CANDIDATE ANSWER (transcribed):
%s

Evaluate the answer on technical accuracy, completeness and clarity of explanation.

Return your response in the following JSON format:
{
  "score": <integer 0-%d>,
  "assessment": "<Correct|Partial|Incorrect>",
  "feedback": "<brief feedback, 1-3 sentences>"
}`, question.Question, question.ModelAnswer, keyPoints, transcript, maxScore)
}

// BuildTranscriptionPrompt is sent alongside the audio part
func (pb *PromptBuilder) BuildTranscriptionPrompt() string {
	return `Transcribe this spoken interview answer verbatim in English.
Return ONLY the transcript text with no commentary, labels or timestamps.`
}

// BuildCVScriptPrompt creates prompt for the CV self-introduction script
func (pb *PromptBuilder) BuildCVScriptPrompt(cvText string) string {
	return fmt.Sprintf(`You are a career coach preparing a candidate for interviews.

Analyze the following CV text and generate:
1. A personalized self-introduction the candidate can say at the start of an interview (4-6 sentences).
2. Overall feedback about the CV (strengths and gaps, 3-5 sentences).

CANDIDATE CV:
%s

Return your response in the following JSON format:
{
  "personalized_intro": "<content>",
  "overall_feedback": "<content>"
}`, cvText)
}

// BuildRetrievalQuery creates query for RAG retrieval
func (pb *PromptBuilder) BuildRetrievalQuery(designation string) string {
	return fmt.Sprintf("Job requirements, responsibilities and qualifications for %s", designation)
}

// Helper to clean and format context from RAG results
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
