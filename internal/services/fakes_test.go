package services

import (
	"context"
	"errors"
	"sync"

	"hired/interview-service/internal/models"
)

type generateCall struct {
	Designation string
	Experience  string
	Difficulty  string
	Count       int
}

type generateResult struct {
	questions []models.Question
	err       error
}

// fakeGenerator replays results in order and repeats the last one.
type fakeGenerator struct {
	mu      sync.Mutex
	results []generateResult
	calls   []generateCall
}

func (f *fakeGenerator) GenerateQuestions(ctx context.Context, designation, experience, difficulty string, count int) ([]models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, generateCall{designation, experience, difficulty, count})
	if len(f.results) == 0 {
		return nil, errors.New("no results configured")
	}
	idx := min(len(f.calls)-1, len(f.results)-1)
	return f.results[idx].questions, f.results[idx].err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeTranscriber struct {
	mu    sync.Mutex
	text  string
	err   error
	block bool
	calls int
	mimes []string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mimes = append(f.mimes, mimeType)
	text, err, block := f.text, f.err, f.block
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return text, err
}

func (f *fakeTranscriber) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type scoreCall struct {
	Transcript string
	Question   models.Question
	MaxScore   int
}

type fakeScorer struct {
	mu         sync.Mutex
	evaluation *models.AnswerEvaluation
	err        error
	calls      []scoreCall
}

func (f *fakeScorer) ScoreAnswer(ctx context.Context, transcript string, question models.Question, maxScore int) (*models.AnswerEvaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, scoreCall{transcript, question, maxScore})
	if f.err != nil {
		return nil, f.err
	}
	if f.evaluation == nil {
		return nil, nil
	}
	ev := *f.evaluation
	return &ev, nil
}

func (f *fakeScorer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeSink struct {
	mu      sync.Mutex
	results []*models.InterviewResult
}

func (f *fakeSink) EnqueueResult(result *models.InterviewResult) {
	f.mu.Lock()
	f.results = append(f.results, result)
	f.mu.Unlock()
}

func (f *fakeSink) Create(result *models.InterviewResult) error {
	f.EnqueueResult(result)
	return nil
}

func (f *fakeSink) snapshot() []*models.InterviewResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.InterviewResult(nil), f.results...)
}

// fakeLLM answers prompts with a canned response and records them.
type fakeLLM struct {
	mu           sync.Mutex
	response     string
	err          error
	prompts      []string
	temperatures []float32
}

func (f *fakeLLM) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.temperatures = append(f.temperatures, temperature)
	return f.response, f.err
}

type fakeEmbedder struct {
	mu     sync.Mutex
	err    error
	failOn map[string]bool
	texts  []string
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	if f.failOn[text] {
		return nil, errors.New("embedding failed")
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type upsertCall struct {
	ChunkID string
	DocType string
	Source  string
	Text    string
}

type searchCall struct {
	DocType string
	Limit   int
}

type fakeQdrant struct {
	mu       sync.Mutex
	results  []SearchResult
	err      error
	upserts  []upsertCall
	searches []searchCall
	deleted  []string
}

func (f *fakeQdrant) InitCollection(ctx context.Context) error { return nil }

func (f *fakeQdrant) UpsertChunk(ctx context.Context, chunkID, docType, source, text string, embedding []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, upsertCall{chunkID, docType, source, text})
	return f.err
}

func (f *fakeQdrant) SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, searchCall{docType, limit})
	return f.results, f.err
}

func (f *fakeQdrant) DeleteByDocType(ctx context.Context, docType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, docType)
	return f.err
}
