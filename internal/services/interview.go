package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"hired/interview-service/internal/models"
)

const (
	maxGenerationAttempts = 2
	degradedFeedback      = "Failed to evaluate answer"
)

type InterviewService interface {
	StartInterview(ctx context.Context, designation, experience, difficulty string) (*models.StartInterviewResponse, error)
	GetNext(ctx context.Context, sessionID string) (*models.NextQuestionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, questionNumber int, audio []byte, mimeType string) (*AnswerResult, error)
}

type AnswerResult struct {
	Transcription     string
	Evaluation        models.AnswerEvaluation
	TotalScore        int
	QuestionsAnswered int
}

// ResultSink receives completed interviews for persistence.
type ResultSink interface {
	EnqueueResult(result *models.InterviewResult)
}

type InterviewOptions struct {
	QuestionCount       int
	MaxScorePerQuestion int
	DefaultDifficulty   string
	DefaultKeyPoints    []string
	CollaboratorTimeout time.Duration
}

type interviewService struct {
	store       SessionStore
	generator   QuestionGenerator
	transcriber Transcriber
	scorer      AnswerScorer
	results     ResultSink
	opts        InterviewOptions
	now         func() time.Time
}

// NewInterviewService wires the interview state machine. results may be nil.
func NewInterviewService(
	store SessionStore,
	generator QuestionGenerator,
	transcriber Transcriber,
	scorer AnswerScorer,
	results ResultSink,
	opts InterviewOptions,
) InterviewService {
	if opts.QuestionCount <= 0 {
		opts.QuestionCount = 20
	}
	if opts.MaxScorePerQuestion <= 0 {
		opts.MaxScorePerQuestion = 10
	}
	if opts.DefaultDifficulty == "" {
		opts.DefaultDifficulty = "medium"
	}

	return &interviewService{
		store:       store,
		generator:   generator,
		transcriber: transcriber,
		scorer:      scorer,
		results:     results,
		opts:        opts,
		now:         time.Now,
	}
}

func DegradedEvaluation() models.AnswerEvaluation {
	return models.AnswerEvaluation{
		Score:      0,
		Assessment: models.AssessmentError,
		Feedback:   degradedFeedback,
	}
}

// StartInterview implements InterviewService.
func (s *interviewService) StartInterview(ctx context.Context, designation, experience, difficulty string) (*models.StartInterviewResponse, error) {
	designation = strings.TrimSpace(designation)
	experience = strings.TrimSpace(experience)
	difficulty = strings.TrimSpace(difficulty)
	if difficulty == "" {
		difficulty = s.opts.DefaultDifficulty
	}

	log.Printf("🔄 Starting interview for %s (%s, %s)", designation, experience, difficulty)

	questions, err := s.generateQuestions(ctx, designation, experience, difficulty)
	if err != nil {
		return nil, err
	}

	sessionID, err := s.store.Create(questions, models.SessionMetadata{
		Designation:     designation,
		ExperienceLevel: experience,
		Difficulty:      difficulty,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create interview session: %w", err)
	}

	log.Printf("✅ Interview session %s created with %d questions", sessionID, len(questions))

	return &models.StartInterviewResponse{
		SessionID:      sessionID,
		Questions:      questions,
		TotalQuestions: len(questions),
		QuestionNumber: 1,
		IsComplete:     false,
	}, nil
}

func (s *interviewService) generateQuestions(ctx context.Context, designation, experience, difficulty string) ([]models.Question, error) {
	want := s.opts.QuestionCount
	var lastErr error

	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		callCtx, cancel := s.collaboratorContext(ctx)
		raw, err := s.generator.GenerateQuestions(callCtx, designation, experience, difficulty, want)
		cancel()

		if err != nil {
			lastErr = err
			log.Printf("⚠️  Question generation attempt %d failed: %v", attempt, err)
		} else {
			questions := s.wellFormed(raw)
			if len(questions) >= want {
				return questions[:want], nil
			}
			lastErr = fmt.Errorf("generated only %d of %d questions", len(questions), want)
			log.Printf("⚠️  Question generation attempt %d: %v", attempt, lastErr)
		}

		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrQuestionGenerationFailed, lastErr)
}

// wellFormed drops entries without question text and fills default key points.
func (s *interviewService) wellFormed(raw []models.Question) []models.Question {
	questions := make([]models.Question, 0, len(raw))
	for _, q := range raw {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			continue
		}
		q.ModelAnswer = strings.TrimSpace(q.ModelAnswer)

		var keyPoints []string
		for _, kp := range q.KeyPoints {
			if kp = strings.TrimSpace(kp); kp != "" {
				keyPoints = append(keyPoints, kp)
			}
		}
		if len(keyPoints) == 0 {
			keyPoints = append([]string(nil), s.opts.DefaultKeyPoints...)
		}
		q.KeyPoints = keyPoints

		questions = append(questions, q)
	}
	return questions
}

// GetNext implements InterviewService. The cursor is advanced before the
// question is read, so the first call returns question 2.
func (s *interviewService) GetNext(ctx context.Context, sessionID string) (*models.NextQuestionResponse, error) {
	session, err := s.store.Update(sessionID, func(sess *models.InterviewSession) error {
		total := len(sess.Questions)
		if sess.Cursor >= total {
			return ErrSessionCompleted
		}
		if sess.QuestionsAnswered >= total {
			sess.Cursor = total
			return nil
		}
		sess.Cursor++
		return nil
	})
	if err != nil {
		return nil, err
	}

	if session.IsComplete() {
		s.store.Delete(sessionID)

		stats := s.statistics(session)
		log.Printf("✅ Interview session %s completed: %d/%d (%.2f%%)",
			sessionID, stats.TotalScore, stats.TotalQuestions*s.opts.MaxScorePerQuestion, stats.PercentageScore)

		s.recordResult(session, stats)

		return &models.NextQuestionResponse{
			IsComplete: true,
			Message:    "Interview completed",
			Statistics: &stats,
		}, nil
	}

	return &models.NextQuestionResponse{
		IsComplete:     false,
		Question:       session.Questions[session.Cursor].Question,
		QuestionNumber: session.Cursor + 1,
		TotalQuestions: session.TotalQuestions(),
	}, nil
}

// SubmitAnswer implements InterviewService.
func (s *interviewService) SubmitAnswer(ctx context.Context, sessionID string, questionNumber int, audio []byte, mimeType string) (*AnswerResult, error) {
	snapshot, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := checkAnswerable(snapshot, questionNumber); err != nil {
		return nil, err
	}

	question := snapshot.Questions[questionNumber-1]

	transcription, err := s.transcribe(ctx, audio, mimeType)
	if err != nil {
		log.Printf("❌ Transcription failed for session %s question %d: %v", sessionID, questionNumber, err)
		return nil, fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}

	evaluation := s.evaluate(ctx, sessionID, transcription, question)

	updated, err := s.store.Update(sessionID, func(sess *models.InterviewSession) error {
		// Another request may have answered while we were waiting on collaborators.
		if err := checkAnswerable(sess, questionNumber); err != nil {
			return err
		}

		sess.TotalScore += evaluation.Score
		sess.QuestionsAnswered++
		sess.Answers[questionNumber] = models.RecordedAnswer{
			QuestionNumber: questionNumber,
			Transcription:  transcription,
			Evaluation:     evaluation,
			AnsweredAt:     s.now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📊 Session %s question %d scored %d (%s), total %d",
		sessionID, questionNumber, evaluation.Score, evaluation.Assessment, updated.TotalScore)

	return &AnswerResult{
		Transcription:     transcription,
		Evaluation:        evaluation,
		TotalScore:        updated.TotalScore,
		QuestionsAnswered: updated.QuestionsAnswered,
	}, nil
}

func checkAnswerable(sess *models.InterviewSession, questionNumber int) error {
	total := len(sess.Questions)
	if questionNumber < 1 || questionNumber > total {
		return fmt.Errorf("%w: %d (expected 1-%d)", ErrInvalidQuestionNumber, questionNumber, total)
	}
	if sess.QuestionsAnswered >= total {
		return ErrSessionCompleted
	}
	if _, answered := sess.Answers[questionNumber]; answered {
		return fmt.Errorf("%w: %d", ErrQuestionAlreadyAnswered, questionNumber)
	}
	return nil
}

func (s *interviewService) transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	callCtx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	text, err := s.transcriber.Transcribe(callCtx, audio, mimeType)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty transcription")
	}
	return text, nil
}

// evaluate never fails: scorer errors and unparsable output become the
// degraded evaluation so a scoring outage cannot block the interview.
func (s *interviewService) evaluate(ctx context.Context, sessionID, transcription string, question models.Question) models.AnswerEvaluation {
	callCtx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	evaluation, err := s.scorer.ScoreAnswer(callCtx, transcription, question, s.opts.MaxScorePerQuestion)
	if err != nil || evaluation == nil {
		log.Printf("⚠️  Scoring degraded for session %s: %v", sessionID, err)
		return DegradedEvaluation()
	}

	result := *evaluation
	result.Score = clampScore(result.Score, s.opts.MaxScorePerQuestion)
	return result
}

func clampScore(score, limit int) int {
	if score < 0 {
		return 0
	}
	if score > limit {
		return limit
	}
	return score
}

func (s *interviewService) statistics(session *models.InterviewSession) models.InterviewStatistics {
	total := session.TotalQuestions()
	possible := total * s.opts.MaxScorePerQuestion

	percentage := 0.0
	if possible > 0 {
		percentage = float64(session.TotalScore) / float64(possible) * 100
		percentage = math.Round(percentage*100) / 100
	}

	return models.InterviewStatistics{
		TotalScore:        session.TotalScore,
		PercentageScore:   percentage,
		QuestionsAnswered: session.QuestionsAnswered,
		TotalQuestions:    total,
	}
}

func (s *interviewService) recordResult(session *models.InterviewSession, stats models.InterviewStatistics) {
	if s.results == nil {
		return
	}

	answers := make([]models.RecordedAnswer, 0, len(session.Answers))
	for _, a := range session.Answers {
		answers = append(answers, a)
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].QuestionNumber < answers[j].QuestionNumber
	})

	encoded, err := json.Marshal(answers)
	if err != nil {
		log.Printf("⚠️  Failed to encode answers for session %s: %v", session.ID, err)
		encoded = []byte("[]")
	}

	s.results.EnqueueResult(&models.InterviewResult{
		ID:                uuid.New(),
		SessionID:         session.ID,
		Designation:       session.Metadata.Designation,
		ExperienceLevel:   session.Metadata.ExperienceLevel,
		Difficulty:        session.Metadata.Difficulty,
		TotalScore:        stats.TotalScore,
		PercentageScore:   stats.PercentageScore,
		QuestionsAnswered: stats.QuestionsAnswered,
		TotalQuestions:    stats.TotalQuestions,
		Answers:           string(encoded),
		StartedAt:         session.StartedAt,
		CompletedAt:       s.now(),
	})
}

func (s *interviewService) collaboratorContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.CollaboratorTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.CollaboratorTimeout)
}
