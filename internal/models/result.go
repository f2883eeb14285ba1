package models

type StartInterviewRequest struct {
	Designation string `json:"designation"`
	Experience  string `json:"experience"`
	Difficulty  string `json:"difficulty"`
}

type StartInterviewResponse struct {
	SessionID      string     `json:"session_id"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
	QuestionNumber int        `json:"question_number"`
	IsComplete     bool       `json:"is_complete"`
}

type NextQuestionResponse struct {
	IsComplete     bool                 `json:"is_complete"`
	Message        string               `json:"message,omitempty"`
	Question       string               `json:"question,omitempty"`
	QuestionNumber int                  `json:"question_number,omitempty"`
	TotalQuestions int                  `json:"total_questions,omitempty"`
	Statistics     *InterviewStatistics `json:"statistics,omitempty"`
}

type AudioAnswerResponse struct {
	Status           string `json:"status"`
	Transcription    string `json:"transcription"`
	ValidationResult string `json:"validation_result"`
	Feedback         string `json:"feedback"`
	Score            int    `json:"score"`
	TotalScore       int    `json:"total_score"`
}

type UploadResponse struct {
	Message  string `json:"message"`
	CVID     string `json:"cv_id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type CVScript struct {
	PersonalizedIntro string `json:"personalized_intro"`
	OverallFeedback   string `json:"overall_feedback"`
}

type ScriptResponse struct {
	Script CVScript `json:"script"`
}
