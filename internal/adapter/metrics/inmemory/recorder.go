// Package inmemory keeps care-action counters in process memory for the KPI
// endpoint.
package inmemory

import "sync"

type actionCounters struct {
	Success  uint64 `json:"success"`
	Rejected uint64 `json:"rejected"`
	Failure  uint64 `json:"failure"`
}

type Snapshot struct {
	Total    uint64                    `json:"total"`
	Success  uint64                    `json:"success"`
	Rejected uint64                    `json:"rejected"`
	Failure  uint64                    `json:"failure"`
	ByAction map[string]actionCounters `json:"by_action"`
}

type Recorder struct {
	mu       sync.Mutex
	byAction map[string]*actionCounters
}

func NewRecorder() *Recorder {
	return &Recorder{byAction: map[string]*actionCounters{}}
}

func (r *Recorder) RecordSuccess(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters(action).Success++
}

func (r *Recorder) RecordRejected(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters(action).Rejected++
}

func (r *Recorder) RecordFailure(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters(action).Failure++
}

func (r *Recorder) counters(action string) *actionCounters {
	c, ok := r.byAction[action]
	if !ok {
		c = &actionCounters{}
		r.byAction[action] = c
	}
	return c
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{ByAction: make(map[string]actionCounters, len(r.byAction))}
	for action, c := range r.byAction {
		out.ByAction[action] = *c
		out.Success += c.Success
		out.Rejected += c.Rejected
		out.Failure += c.Failure
	}
	out.Total = out.Success + out.Rejected + out.Failure
	return out
}

// SnapshotAny adapts Snapshot for callers that only need a serializable
// value.
func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
