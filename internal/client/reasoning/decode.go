// Package reasoning defines the boundary to the external reasoning service
// that produces the derived artifacts. The service itself is a black box;
// what matters here is the shape of its output and the rule that malformed
// output degrades to an empty default artifact instead of propagating a
// fault.
package reasoning

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/skillgraph/skillgraph/internal/models"
)

// Schema names requested from the reasoning service.
const (
	SchemaAnalysis  = "skill_analysis"
	SchemaStudyPlan = "study_plan"
	SchemaQuestions = "interview_questions"
)

// DecodeAnalysis parses a skill-analysis artifact. On malformed input it
// returns an empty analysis, never an error.
func DecodeAnalysis(data []byte) *models.SkillAnalysis {
	var a models.SkillAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return &models.SkillAnalysis{}
	}
	if a.MatchPercentage < 0 {
		a.MatchPercentage = 0
	}
	if a.MatchPercentage > 100 {
		a.MatchPercentage = 100
	}
	return &a
}

// DecodePlan parses a study-plan artifact. On malformed input it returns an
// empty plan. Unknown difficulty values degrade to Beginner.
func DecodePlan(data []byte) []models.StudyPlanItem {
	var items []models.StudyPlanItem
	if err := json.Unmarshal(data, &items); err != nil {
		return []models.StudyPlanItem{}
	}
	for i := range items {
		switch items[i].Difficulty {
		case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
		default:
			items[i].Difficulty = models.DifficultyBeginner
		}
	}
	return items
}

// DecodeQuestions parses an interview-question batch. On malformed input it
// returns an empty batch. Entries without an id get one assigned, and
// unknown categories degrade to Technical.
func DecodeQuestions(data []byte) []models.InterviewQuestion {
	var questions []models.InterviewQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		return []models.InterviewQuestion{}
	}
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
		switch questions[i].Category {
		case models.CategoryTechnical, models.CategoryHR, models.CategoryAptitude,
			models.CategoryCoding, models.CategorySystemDesign:
		default:
			questions[i].Category = models.CategoryTechnical
		}
	}
	return questions
}
