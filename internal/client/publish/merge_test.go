package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgraph/skillgraph/internal/models"
)

func TestMergeQuestions_NewBatchWins(t *testing.T) {
	existing := []models.InterviewQuestion{
		{ID: "a1", Question: "What is a goroutine?", Answer: "old answer"},
		{ID: "b1", Question: "Explain channels.", Answer: "channels answer"},
	}
	newBatch := []models.InterviewQuestion{
		{ID: "a2", Question: "What is a goroutine?", Answer: "new answer"},
		{ID: "c1", Question: "What is a mutex?", Answer: "mutex answer"},
	}

	merged := MergeQuestions(newBatch, existing)

	require.Len(t, merged, 3)
	assert.Equal(t, "What is a goroutine?", merged[0].Question)
	assert.Equal(t, "new answer", merged[0].Answer, "a colliding text takes the new batch's entry")
	assert.Equal(t, "What is a mutex?", merged[1].Question)
	assert.Equal(t, "Explain channels.", merged[2].Question)
}

func TestMergeQuestions_EmptyInputs(t *testing.T) {
	q := []models.InterviewQuestion{{ID: "a1", Question: "Q?"}}

	assert.Equal(t, q, MergeQuestions(q, nil))
	assert.Equal(t, q, MergeQuestions(nil, q))
	assert.Empty(t, MergeQuestions(nil, nil))
}

func TestMergeQuestions_Idempotent(t *testing.T) {
	existing := []models.InterviewQuestion{
		{ID: "a1", Question: "Q1?"},
		{ID: "b1", Question: "Q2?"},
	}
	newBatch := []models.InterviewQuestion{
		{ID: "c1", Question: "Q3?"},
	}

	once := MergeQuestions(newBatch, existing)
	twice := MergeQuestions(newBatch, once)
	assert.Equal(t, once, twice)
}

func TestMergeQuestions_DedupesWithinBatch(t *testing.T) {
	newBatch := []models.InterviewQuestion{
		{ID: "a1", Question: "Q1?"},
		{ID: "a2", Question: "Q1?"},
	}

	merged := MergeQuestions(newBatch, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, "a1", merged[0].ID, "first occurrence wins within a batch")
}
