package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"hired/interview-service/internal/models"
	"hired/interview-service/internal/services"
)

func newInterviewApp(svc services.InterviewService, maxAudio int64) *fiber.App {
	h := NewInterviewHandler(svc, maxAudio)
	app := fiber.New()
	app.Post("/interview/start", h.HandleStart)
	app.Get("/interview/:session_id/next", h.HandleNext)
	app.Post("/interview/audio/upload", h.HandleAudioAnswer)
	return app
}

func TestHandleStart(t *testing.T) {
	svc := &fakeInterviewService{startResp: &models.StartInterviewResponse{
		SessionID:      "sess-1",
		Questions:      []models.Question{{Question: "Q1?"}},
		TotalQuestions: 1,
		QuestionNumber: 1,
	}}
	app := newInterviewApp(svc, 1024)

	status, body := doRequest(t, app, jsonRequest(http.MethodPost, "/interview/start",
		`{"designation": "Backend Engineer", "experience": "3 years", "difficulty": "hard"}`))

	if status != fiber.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["session_id"] != "sess-1" || body["question_number"] != float64(1) || body["is_complete"] != false {
		t.Errorf("body = %v", body)
	}
	if fmt.Sprint(svc.startArgs) != "[Backend Engineer 3 years hard]" {
		t.Errorf("start args = %v", svc.startArgs)
	}
}

func TestHandleStart_Validation(t *testing.T) {
	tests := map[string]string{
		"missing designation": `{"experience": "3 years"}`,
		"missing experience":  `{"designation": "QA"}`,
		"malformed body":      `{"designation":`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &fakeInterviewService{}
			status, body := doRequest(t, newInterviewApp(svc, 1024), jsonRequest(http.MethodPost, "/interview/start", payload))

			if status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if body["error"] == nil {
				t.Error("expected an error message")
			}
			if svc.startArgs != nil {
				t.Error("service should not be called")
			}
		})
	}
}

func TestHandleNext(t *testing.T) {
	svc := &fakeInterviewService{nextResp: &models.NextQuestionResponse{
		Question:       "Q2?",
		QuestionNumber: 2,
		TotalQuestions: 20,
	}}

	status, body := doRequest(t, newInterviewApp(svc, 1024), jsonRequest(http.MethodGet, "/interview/sess-9/next", ""))

	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["question"] != "Q2?" || body["question_number"] != float64(2) || body["is_complete"] != false {
		t.Errorf("body = %v", body)
	}
	if _, ok := body["statistics"]; ok {
		t.Error("statistics should be omitted while the interview is in progress")
	}
	if len(svc.nextIDs) != 1 || svc.nextIDs[0] != "sess-9" {
		t.Errorf("session ids = %v", svc.nextIDs)
	}
}

func TestHandleNext_Completed(t *testing.T) {
	svc := &fakeInterviewService{nextResp: &models.NextQuestionResponse{
		IsComplete: true,
		Message:    "Interview completed",
		Statistics: &models.InterviewStatistics{TotalScore: 160, PercentageScore: 80, QuestionsAnswered: 20, TotalQuestions: 20},
	}}

	status, body := doRequest(t, newInterviewApp(svc, 1024), jsonRequest(http.MethodGet, "/interview/sess-9/next", ""))

	if status != fiber.StatusOK || body["is_complete"] != true {
		t.Fatalf("status = %d body = %v", status, body)
	}
	stats, ok := body["statistics"].(map[string]any)
	if !ok {
		t.Fatalf("statistics missing: %v", body)
	}
	if stats["total_score"] != float64(160) || stats["percentage_score"] != float64(80) {
		t.Errorf("statistics = %v", stats)
	}
}

func TestInterviewErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrSessionNotFound, fiber.StatusNotFound},
		{services.ErrSessionCompleted, fiber.StatusConflict},
		{fmt.Errorf("%w: 3", services.ErrQuestionAlreadyAnswered), fiber.StatusConflict},
		{fmt.Errorf("%w: 0 (expected 1-20)", services.ErrInvalidQuestionNumber), fiber.StatusBadRequest},
		{fmt.Errorf("%w: %w", services.ErrQuestionGenerationFailed, errors.New("short")), fiber.StatusInternalServerError},
		{fmt.Errorf("%w: %w", services.ErrTranscriptionFailed, errors.New("down")), fiber.StatusBadGateway},
		{errors.New("something else"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &fakeInterviewService{err: tt.err}
			status, body := doRequest(t, newInterviewApp(svc, 1024), jsonRequest(http.MethodGet, "/interview/s/next", ""))

			if status != tt.want {
				t.Errorf("status = %d, want %d", status, tt.want)
			}
			if body["error"] != tt.err.Error() {
				t.Errorf("error = %v, want %q", body["error"], tt.err.Error())
			}
		})
	}
}

func TestHandleAudioAnswer(t *testing.T) {
	svc := &fakeInterviewService{answer: &services.AnswerResult{
		Transcription:     "I would shard by tenant",
		Evaluation:        models.AnswerEvaluation{Score: 8, Assessment: models.AssessmentCorrect, Feedback: "Good"},
		TotalScore:        24,
		QuestionsAnswered: 3,
	}}
	app := newInterviewApp(svc, 1024)

	req := multipartRequest(t, "/interview/audio/upload",
		map[string]string{"session_id": "sess-1", "question_number": "3"},
		formFile{field: "audio_file", filename: "answer.wav", contentType: "audio/wav", content: []byte("RIFFdata")},
	)
	status, body := doRequest(t, app, req)

	if status != fiber.StatusOK {
		t.Fatalf("status = %d body = %v", status, body)
	}
	want := map[string]any{
		"status":            "success",
		"transcription":     "I would shard by tenant",
		"validation_result": "Correct",
		"feedback":          "Good",
		"score":             float64(8),
		"total_score":       float64(24),
	}
	for k, v := range want {
		if body[k] != v {
			t.Errorf("%s = %v, want %v", k, body[k], v)
		}
	}

	call := svc.submits[0]
	if call.SessionID != "sess-1" || call.QuestionNumber != 3 || string(call.Audio) != "RIFFdata" || call.MimeType != "audio/wav" {
		t.Errorf("submit call = %+v", call)
	}
}

func TestHandleAudioAnswer_FileFieldAndDefaultMime(t *testing.T) {
	svc := &fakeInterviewService{answer: &services.AnswerResult{Evaluation: services.DegradedEvaluation()}}
	app := newInterviewApp(svc, 1024)

	req := multipartRequest(t, "/interview/audio/upload",
		map[string]string{"session_id": "sess-1", "question_number": "1"},
		formFile{field: "file", filename: "answer", contentType: "application/octet-stream", content: []byte("opus")},
	)
	status, body := doRequest(t, app, req)

	if status != fiber.StatusOK {
		t.Fatalf("status = %d body = %v", status, body)
	}
	if body["validation_result"] != "Error" || body["feedback"] != "Failed to evaluate answer" {
		t.Errorf("body = %v", body)
	}
	if svc.submits[0].MimeType != "audio/webm" {
		t.Errorf("mime type = %q, want audio/webm", svc.submits[0].MimeType)
	}
}

func TestHandleAudioAnswer_BadRequests(t *testing.T) {
	audio := formFile{field: "audio_file", filename: "a.webm", contentType: "audio/webm", content: []byte("data")}

	tests := []struct {
		name   string
		fields map[string]string
		files  []formFile
	}{
		{"missing session", map[string]string{"question_number": "1"}, []formFile{audio}},
		{"non-numeric question", map[string]string{"session_id": "s", "question_number": "first"}, []formFile{audio}},
		{"missing file", map[string]string{"session_id": "s", "question_number": "1"}, nil},
		{"empty file", map[string]string{"session_id": "s", "question_number": "1"},
			[]formFile{{field: "audio_file", filename: "a.webm", content: nil}}},
		{"too large", map[string]string{"session_id": "s", "question_number": "1"},
			[]formFile{{field: "audio_file", filename: "a.webm", content: make([]byte, 2048)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInterviewService{}
			status, _ := doRequest(t, newInterviewApp(svc, 1024), multipartRequest(t, "/interview/audio/upload", tt.fields, tt.files...))

			if status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if len(svc.submits) != 0 {
				t.Error("service should not be called")
			}
		})
	}
}
