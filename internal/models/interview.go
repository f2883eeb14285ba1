package models

import (
	"strings"
	"time"
)

type Assessment string

const (
	AssessmentCorrect   Assessment = "Correct"
	AssessmentPartial   Assessment = "Partial"
	AssessmentIncorrect Assessment = "Incorrect"
	AssessmentError     Assessment = "Error"
)

// ParseAssessment accepts the labels a scorer may return. Error is not
// accepted here because only the degraded fallback produces it.
func ParseAssessment(label string) (Assessment, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "correct":
		return AssessmentCorrect, true
	case "partial", "partially correct":
		return AssessmentPartial, true
	case "incorrect":
		return AssessmentIncorrect, true
	default:
		return "", false
	}
}

type Question struct {
	Question    string   `json:"question"`
	ModelAnswer string   `json:"model_answer"`
	KeyPoints   []string `json:"key_points"`
}

type AnswerEvaluation struct {
	Score      int        `json:"score"`
	Assessment Assessment `json:"assessment"`
	Feedback   string     `json:"feedback"`
}

// RecordedAnswer is what a session keeps for one answered question.
type RecordedAnswer struct {
	QuestionNumber int              `json:"question_number"`
	Transcription  string           `json:"transcription"`
	Evaluation     AnswerEvaluation `json:"evaluation"`
	AnsweredAt     time.Time        `json:"answered_at"`
}

type SessionMetadata struct {
	Designation     string `json:"designation"`
	ExperienceLevel string `json:"experience_level"`
	Difficulty      string `json:"difficulty"`
}

type InterviewSession struct {
	ID                string
	Questions         []Question
	Cursor            int
	Metadata          SessionMetadata
	TotalScore        int
	QuestionsAnswered int
	Answers           map[int]RecordedAnswer
	StartedAt         time.Time
	LastActivity      time.Time
}

// Clone returns a copy that shares the immutable question slice but owns
// its answers map.
func (s *InterviewSession) Clone() *InterviewSession {
	c := *s
	c.Answers = make(map[int]RecordedAnswer, len(s.Answers))
	for k, v := range s.Answers {
		c.Answers[k] = v
	}
	return &c
}

func (s *InterviewSession) TotalQuestions() int {
	return len(s.Questions)
}

func (s *InterviewSession) IsComplete() bool {
	return s.Cursor >= len(s.Questions)
}

type InterviewStatistics struct {
	TotalScore        int     `json:"total_score"`
	PercentageScore   float64 `json:"percentage_score"`
	QuestionsAnswered int     `json:"questions_answered"`
	TotalQuestions    int     `json:"total_questions"`
}
