package cli

import (
	"context"
	"fmt"
)

// Show prints a summary of the hydrated working state.
func (a *App) Show(ctx context.Context) error {
	id := a.session.Identity()
	if id == nil {
		return fmt.Errorf("not logged in")
	}

	printlnFn(fmt.Sprintf("%s <%s> (id %s)", id.Name, id.Email, id.ID))

	if analysis := a.session.Analysis(); analysis != nil {
		printlnFn(fmt.Sprintf("analysis: %s, %d%% match", analysis.PredictedRole, analysis.MatchPercentage))
	} else {
		printlnFn("analysis: none")
	}

	printlnFn(fmt.Sprintf("study plan: %d items", len(a.session.StudyPlan())))
	printlnFn(fmt.Sprintf("interview prep: %d questions", len(a.session.InterviewPrep())))

	history := a.session.ChatHistory()
	printlnFn(fmt.Sprintf("transcript: %d turns", len(history)))
	for _, msg := range history {
		printlnFn(fmt.Sprintf("  [%s] %s: %s", msg.Timestamp.Format("15:04:05"), msg.Role, msg.Text))
	}
	return nil
}
