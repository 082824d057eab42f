package publish

import "github.com/skillgraph/skillgraph/internal/models"

// MergeQuestions merges a freshly generated question batch with the existing
// set, deduplicating by question text. Entries from the new batch win when
// texts collide, and relative order of first occurrence is preserved: the
// new batch first, then the existing entries not shadowed by it.
//
// The merge is pure and deterministic for identical inputs, idempotent, and
// commutative with respect to question text. Accumulation is unbounded.
func MergeQuestions(newBatch, existing []models.InterviewQuestion) []models.InterviewQuestion {
	merged := make([]models.InterviewQuestion, 0, len(newBatch)+len(existing))
	seen := make(map[string]struct{}, len(newBatch)+len(existing))

	for _, q := range newBatch {
		if _, ok := seen[q.Question]; ok {
			continue
		}
		seen[q.Question] = struct{}{}
		merged = append(merged, q)
	}
	for _, q := range existing {
		if _, ok := seen[q.Question]; ok {
			continue
		}
		seen[q.Question] = struct{}{}
		merged = append(merged, q)
	}
	return merged
}
