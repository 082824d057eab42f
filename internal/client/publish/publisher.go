// Package publish contains the slice publishers: thin call sites that hand a
// freshly produced artifact to the sync engine for persistence. The working
// state is updated synchronously (optimistic update) and the durable write
// happens asynchronously; a failed write is logged, never rolled back.
package publish

import (
	"context"
	"time"

	"github.com/skillgraph/skillgraph/internal/client/session"
	"github.com/skillgraph/skillgraph/internal/client/syncx"
	"github.com/skillgraph/skillgraph/internal/logging"
	"github.com/skillgraph/skillgraph/internal/models"
)

const writeTimeout = 10 * time.Second

// job is one pending durable write.
type job struct {
	userID string
	value  any
}

// worker serializes the writes of a single slice so they reach the store in
// issuance order. Writes from different workers are unordered relative to
// each other, which is safe because slices are disjoint.
type worker struct {
	engine *syncx.Engine
	slice  models.Slice
	logger logging.Logger
	jobs   chan job
	done   chan struct{}
}

func newWorker(engine *syncx.Engine, slice models.Slice, logger logging.Logger) *worker {
	w := &worker{
		engine: engine,
		slice:  slice,
		logger: logger.With("slice", string(slice)),
		jobs:   make(chan job, 16),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *worker) run() {
	defer close(w.done)
	for j := range w.jobs {
		// In-flight writes are not cancellable; a logout only discards the
		// result via the reset working state.
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := w.engine.WriteSlice(ctx, j.userID, w.slice, j.value); err != nil {
			w.logger.Error(ctx, "durable write failed, keeping optimistic state", "error", err)
		}
		cancel()
	}
}

func (w *worker) enqueue(userID string, value any) {
	w.jobs <- job{userID: userID, value: value}
}

func (w *worker) close() {
	close(w.jobs)
	<-w.done
}

// Publishers groups the four slice publishers around one session.
type Publishers struct {
	session   *session.Manager
	analysis  *worker
	plan      *worker
	questions *worker
	chat      *worker
}

// NewPublishers starts the four slice workers.
func NewPublishers(engine *syncx.Engine, sess *session.Manager, logger logging.Logger) *Publishers {
	logger = logger.With("module", "publish")
	return &Publishers{
		session:   sess,
		analysis:  newWorker(engine, models.SliceAnalysis, logger),
		plan:      newWorker(engine, models.SliceStudyPlan, logger),
		questions: newWorker(engine, models.SliceInterviewPrep, logger),
		chat:      newWorker(engine, models.SliceChat, logger),
	}
}

// Close drains all pending writes and stops the workers.
func (p *Publishers) Close() {
	p.analysis.close()
	p.plan.close()
	p.questions.close()
	p.chat.close()
}

// PublishAnalysis replaces the skill analysis.
func (p *Publishers) PublishAnalysis(a *models.SkillAnalysis) {
	id := p.session.Identity()
	if id == nil {
		return
	}
	p.session.SetAnalysis(a)
	p.analysis.enqueue(id.ID, a)
}

// PublishStudyPlan replaces the study plan.
func (p *Publishers) PublishStudyPlan(items []models.StudyPlanItem) {
	id := p.session.Identity()
	if id == nil {
		return
	}
	p.session.SetStudyPlan(items)
	p.plan.enqueue(id.ID, items)
}

// PublishQuestions merges the new batch into the working set and persists
// the merged result. The stores replace the slice wholesale; the merge
// happens here.
func (p *Publishers) PublishQuestions(batch []models.InterviewQuestion) {
	id := p.session.Identity()
	if id == nil {
		return
	}
	merged := MergeQuestions(batch, p.session.InterviewPrep())
	p.session.SetInterviewPrep(merged)
	p.questions.enqueue(id.ID, merged)
}

// PublishChatMessage appends one transcript turn.
func (p *Publishers) PublishChatMessage(msg models.ChatMessage) {
	id := p.session.Identity()
	if id == nil {
		return
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	p.session.AppendChatMessage(msg)
	p.chat.enqueue(id.ID, msg)
}
