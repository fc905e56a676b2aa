// match/engine.go
package match

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/projmatch/projmatch/match/trace"
)

// TerminationReason says why a run stopped.
type TerminationReason string

const (
	// ReasonQueueEmpty: no applicant is waiting to propose.
	ReasonQueueEmpty TerminationReason = "queue-empty"
	// ReasonNoProgress: every waiting applicant has proposed to its whole list.
	ReasonNoProgress TerminationReason = "no-progress"
	// ReasonBudgetExhausted: the iteration budget ran out before a guard fired.
	ReasonBudgetExhausted TerminationReason = "budget-exhausted"
	// ReasonCancelled: the run's context was done.
	ReasonCancelled TerminationReason = "cancelled"
)

// Converged reports whether the run ended through one of the two guards.
func (r TerminationReason) Converged() bool {
	return r == ReasonQueueEmpty || r == ReasonNoProgress
}

// TerminalState is the outcome of Engine.Run.
type TerminalState struct {
	RunID          string
	Assignment     AssignmentView
	IterationsUsed int
	Reason         TerminationReason
	Proposals      int
	Evictions      int
	Rejections     int
	// Exhausted lists applicants dropped from the queue because no eligible
	// project remained, in the order they were dropped.
	Exhausted []string
}

// Engine runs the proposal/eviction loop over a Store. Applicants propose in
// rank order; a full project keeps its top-capacity scorers and displaces a
// strictly weaker incumbent. Score is the project's only ranking key.
//
// An Engine is single-use and single-threaded: Run mutates applicant proposal
// histories in the Store.
type Engine struct {
	store *Store
	cfg   EngineConfig

	queue *AvailableQueue
	// roster holds each project's admitted applicants in admission order
	roster   map[string][]*Applicant
	assigned map[string]string // applicant ID -> project ID

	iterations int
	proposals  int
	evictions  int
	rejections int
	exhausted  []string
	started    bool
}

// NewEngine validates cfg against store and prepares a run. Every applicant is
// queued in load order.
func NewEngine(store *Store, cfg EngineConfig) (*Engine, error) {
	if store == nil {
		return nil, misuse("nil store")
	}
	if len(store.applicantOrder) == 0 {
		return nil, misuse("no applicants loaded")
	}
	if len(store.projectOrder) == 0 {
		return nil, misuse("no projects loaded")
	}
	if cfg.MaxIterations <= 0 {
		return nil, misuse("iteration budget must be positive, got %d", cfg.MaxIterations)
	}
	if cfg.SnapshotEvery < 0 {
		return nil, misuse("snapshot cadence must not be negative, got %d", cfg.SnapshotEvery)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	return &Engine{
		store:    store,
		cfg:      cfg,
		queue:    NewAvailableQueue(store.Applicants()),
		roster:   make(map[string][]*Applicant, len(store.projectOrder)),
		assigned: make(map[string]string, len(store.applicantOrder)),
	}, nil
}

// Metrics returns the metric set the engine updates.
func (e *Engine) Metrics() *Metrics {
	return e.cfg.Metrics
}

// Run executes at most cfg.MaxIterations iterations. The context is checked
// once per iteration; on cancellation the partial state is returned together
// with the context error.
func (e *Engine) Run(ctx context.Context) (*TerminalState, error) {
	if e.started {
		return nil, misuse("engine already ran")
	}
	e.started = true

	runID := uuid.NewString()
	logrus.Infof("[run %s] matching %d applicants over %d projects, budget=%d iterations",
		runID, len(e.store.applicantOrder), len(e.store.projectOrder), e.cfg.MaxIterations)

	reason := ReasonBudgetExhausted
	var runErr error
	for i := 0; i < e.cfg.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			reason = ReasonCancelled
			runErr = fmt.Errorf("matching cancelled after %d iterations: %w", e.iterations, err)
			break
		}
		if r, done := e.guard(); done {
			reason = r
			break
		}

		e.step(i)
		e.iterations++
		e.cfg.Metrics.Iterations.Set(float64(e.iterations))

		if e.cfg.SnapshotEvery > 0 && i%e.cfg.SnapshotEvery == 0 {
			e.notify(false)
		}
	}
	// The budget may run out on the very iteration that empties the queue.
	if reason == ReasonBudgetExhausted {
		if r, done := e.guard(); done {
			reason = r
		} else {
			logrus.Warnf("[run %s] iteration budget of %d exhausted with %d applicants still queued %s",
				runID, e.cfg.MaxIterations, e.queue.Len(), e.queue)
		}
	}

	e.notify(true)
	state := &TerminalState{
		RunID:          runID,
		Assignment:     e.Snapshot(),
		IterationsUsed: e.iterations,
		Reason:         reason,
		Proposals:      e.proposals,
		Evictions:      e.evictions,
		Rejections:     e.rejections,
		Exhausted:      slices.Clone(e.exhausted),
	}
	state.Assignment.Final = true
	logrus.Infof("[run %s] ended (%s) after %d iterations: %d matched, %d evictions, %d rejections",
		runID, reason, e.iterations, len(e.assigned), e.evictions, e.rejections)
	return state, runErr
}

// guard checks the two early-termination conditions.
func (e *Engine) guard() (TerminationReason, bool) {
	if e.queue.Len() == 0 {
		logrus.Debugf("[iter %05d] no applicants left to process", e.iterations)
		return ReasonQueueEmpty, true
	}
	if e.queue.Stalled() {
		logrus.Debugf("[iter %05d] no applicant can make further proposals, queue %s", e.iterations, e.queue)
		return ReasonNoProgress, true
	}
	return "", false
}

// step processes exactly one applicant popped from the front of the queue.
func (e *Engine) step(iter int) {
	a := e.queue.Dequeue()

	p := e.nextEligible(a)
	if p == nil {
		e.exhausted = append(e.exhausted, a.ID)
		e.cfg.Metrics.Exhausted.Inc()
		e.cfg.Trace.Record(trace.DecisionRecord{Iteration: iter, Kind: trace.KindExhausted, ApplicantID: a.ID, Score: a.Score})
		logrus.Debugf("[iter %05d] %s has no eligible project left", iter, a.ID)
		return
	}

	a.markProposed(p.ID)
	e.proposals++
	e.cfg.Metrics.Proposals.Inc()

	roster := e.roster[p.ID]
	if len(roster) < p.Capacity {
		e.admit(a, p)
		e.cfg.Metrics.Admissions.Inc()
		e.cfg.Trace.Record(trace.DecisionRecord{Iteration: iter, Kind: trace.KindAdmit, ApplicantID: a.ID, ProjectID: p.ID, Score: a.Score})
		logrus.Debugf("[iter %05d] %s admitted to %s", iter, a.ID, p.ID)
		return
	}

	weakest := weakestIndex(roster)
	incumbent := roster[weakest]
	if a.Score > incumbent.Score {
		e.roster[p.ID] = slices.Delete(roster, weakest, weakest+1)
		delete(e.assigned, incumbent.ID)
		e.admit(a, p)
		requeued := incumbent.CanPropose()
		if requeued {
			e.queue.Enqueue(incumbent)
		}
		e.evictions++
		e.cfg.Metrics.Evictions.Inc()
		e.cfg.Trace.Record(trace.DecisionRecord{Iteration: iter, Kind: trace.KindEvict, ApplicantID: a.ID,
			ProjectID: p.ID, Score: a.Score, Displaced: incumbent.ID, Requeued: requeued})
		logrus.Debugf("[iter %05d] %s admitted to %s, displacing %s", iter, a.ID, p.ID, incumbent.ID)
		return
	}

	e.queue.Enqueue(a)
	e.rejections++
	e.cfg.Metrics.Rejections.Inc()
	e.cfg.Trace.Record(trace.DecisionRecord{Iteration: iter, Kind: trace.KindReject, ApplicantID: a.ID,
		ProjectID: p.ID, Score: a.Score, Requeued: true})
	logrus.Debugf("[iter %05d] %s rejected by %s (weakest incumbent %s scores %d)",
		iter, a.ID, p.ID, incumbent.ID, incumbent.Score)
}

// nextEligible returns the first project in a's preference list that a has not
// proposed to, that exists in the store, and whose minimum a meets.
func (e *Engine) nextEligible(a *Applicant) *Project {
	for _, pid := range a.Preferences {
		if a.HasProposed(pid) {
			continue
		}
		p, ok := e.store.Project(pid)
		if !ok {
			continue
		}
		if p.Admits(a.Score) {
			return p
		}
	}
	return nil
}

func (e *Engine) admit(a *Applicant, p *Project) {
	e.roster[p.ID] = append(e.roster[p.ID], a)
	e.assigned[a.ID] = p.ID
	e.cfg.Metrics.Matched.Set(float64(len(e.assigned)))
}

// weakestIndex returns the index of the lowest-scoring applicant; among equal
// scores the earliest admitted wins.
func weakestIndex(roster []*Applicant) int {
	idx := 0
	for i := 1; i < len(roster); i++ {
		if roster[i].Score < roster[idx].Score {
			idx = i
		}
	}
	return idx
}

// Snapshot returns a copy of the current assignment relation. It may be called
// at any point, including from a SnapshotObserver mid-run.
func (e *Engine) Snapshot() AssignmentView {
	view := AssignmentView{
		Iteration: e.iterations,
		Edges:     make([]Edge, 0, len(e.assigned)),
		Queue:     e.queue.IDs(),
	}
	for _, pid := range e.store.projectOrder {
		for _, a := range e.roster[pid] {
			view.Edges = append(view.Edges, Edge{ApplicantID: a.ID, ProjectID: pid, Score: a.Score})
		}
	}
	return view
}

func (e *Engine) notify(final bool) {
	if e.cfg.Observer == nil {
		return
	}
	view := e.Snapshot()
	view.Final = final
	e.cfg.Observer.OnSnapshot(view)
}
