package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/skillgraph/skillgraph/internal/client/reasoning"
	"github.com/skillgraph/skillgraph/internal/models"
)

// Analyze loads a skill-analysis artifact produced by the reasoning service
// and publishes it. The working state updates immediately; the durable write
// happens in the background.
func (a *App) Analyze(ctx context.Context, path string) error {
	if !a.isLoggedIn() {
		return fmt.Errorf("not logged in")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading artifact: %w", err)
	}

	analysis := reasoning.DecodeAnalysis(data)
	a.publishers.PublishAnalysis(analysis)

	printlnFn(fmt.Sprintf("Analysis updated: %s (%d%% match, %d skills detected)",
		analysis.PredictedRole, analysis.MatchPercentage, len(analysis.DetectedSkills)))
	return nil
}

// Plan loads a study-plan artifact and publishes it.
func (a *App) Plan(ctx context.Context, path string) error {
	if !a.isLoggedIn() {
		return fmt.Errorf("not logged in")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading artifact: %w", err)
	}

	items := reasoning.DecodePlan(data)
	a.publishers.PublishStudyPlan(items)

	printlnFn(fmt.Sprintf("Study plan updated: %d items", len(items)))
	return nil
}

// Questions loads an interview-question batch and merges it into the
// accumulated set.
func (a *App) Questions(ctx context.Context, path string) error {
	if !a.isLoggedIn() {
		return fmt.Errorf("not logged in")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading artifact: %w", err)
	}

	batch := reasoning.DecodeQuestions(data)
	a.publishers.PublishQuestions(batch)

	printlnFn(fmt.Sprintf("Merged %d questions, %d total", len(batch), len(a.session.InterviewPrep())))
	return nil
}

// Chat appends one user turn to the transcript.
func (a *App) Chat(ctx context.Context, text string) error {
	if !a.isLoggedIn() {
		return fmt.Errorf("not logged in")
	}
	a.publishers.PublishChatMessage(models.ChatMessage{Role: models.RoleUser, Text: text})
	printlnFn("you:", text)
	return nil
}
