package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// InterviewSettings controls the mock-interview flow.
type InterviewSettings struct {
	QuestionCount       int           `yaml:"question_count"`
	MaxScorePerQuestion int           `yaml:"max_score_per_question"`
	DefaultDifficulty   string        `yaml:"default_difficulty"`
	DefaultKeyPoints    []string      `yaml:"default_key_points"`
	SessionIdleTTL      time.Duration `yaml:"session_idle_ttl"`
	SweepInterval       time.Duration `yaml:"sweep_interval"`
	CollaboratorTimeout time.Duration `yaml:"collaborator_timeout"`
}

func DefaultInterviewSettings() InterviewSettings {
	return InterviewSettings{
		QuestionCount:       20,
		MaxScorePerQuestion: 10,
		DefaultDifficulty:   "medium",
		DefaultKeyPoints:    []string{"Role-specific knowledge", "Technical accuracy", "Practical application"},
		SessionIdleTTL:      2 * time.Hour,
		SweepInterval:       5 * time.Minute,
		CollaboratorTimeout: 60 * time.Second,
	}
}

// LoadInterviewSettings reads a YAML settings file on top of the defaults.
// A missing file yields (nil, nil).
func LoadInterviewSettings(path string) (*InterviewSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	settings := DefaultInterviewSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateInterviewSettings(&settings); err != nil {
		return nil, fmt.Errorf("invalid interview settings: %w", err)
	}

	return &settings, nil
}

func validateInterviewSettings(s *InterviewSettings) error {
	if s.QuestionCount <= 0 {
		return fmt.Errorf("question_count must be greater than 0")
	}

	if s.MaxScorePerQuestion <= 0 {
		return fmt.Errorf("max_score_per_question must be greater than 0")
	}

	if s.SessionIdleTTL < 0 || s.SweepInterval < 0 || s.CollaboratorTimeout < 0 {
		return fmt.Errorf("durations cannot be negative")
	}

	if s.DefaultDifficulty == "" {
		s.DefaultDifficulty = "medium"
	}

	return nil
}
