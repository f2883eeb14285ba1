package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"

	"hired/interview-service/internal/models"
	"hired/interview-service/internal/services"
)

type submitCall struct {
	SessionID      string
	QuestionNumber int
	Audio          []byte
	MimeType       string
}

type fakeInterviewService struct {
	startResp *models.StartInterviewResponse
	nextResp  *models.NextQuestionResponse
	answer    *services.AnswerResult
	err       error

	startArgs []string
	nextIDs   []string
	submits   []submitCall
}

func (f *fakeInterviewService) StartInterview(ctx context.Context, designation, experience, difficulty string) (*models.StartInterviewResponse, error) {
	f.startArgs = []string{designation, experience, difficulty}
	return f.startResp, f.err
}

func (f *fakeInterviewService) GetNext(ctx context.Context, sessionID string) (*models.NextQuestionResponse, error) {
	f.nextIDs = append(f.nextIDs, sessionID)
	return f.nextResp, f.err
}

func (f *fakeInterviewService) SubmitAnswer(ctx context.Context, sessionID string, questionNumber int, audio []byte, mimeType string) (*services.AnswerResult, error) {
	f.submits = append(f.submits, submitCall{sessionID, questionNumber, audio, mimeType})
	return f.answer, f.err
}

type formFile struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

func multipartRequest(t *testing.T, target string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		part.Write(f.content)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	var body map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("response is not JSON: %s", raw)
		}
	}
	return resp.StatusCode, body
}
