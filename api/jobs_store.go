package api

import (
	"sync"
	"time"

	"github.com/tangle-network/migration-claim-prover/log"
)

// jobsStore is a process-local, mutex-protected map from job id to its
// current jobEntry (spec §4.G). It is unbounded: there is no TTL eviction
// (spec §9 Open Question, deferred — see DESIGN.md).
type jobsStore struct {
	mtx     sync.RWMutex
	entries map[string]*jobEntry
}

// newJobsStore returns an empty jobsStore.
func newJobsStore() *jobsStore {
	return &jobsStore{entries: make(map[string]*jobEntry)}
}

// insert records a brand-new job as Pending. Calling insert twice with the
// same id is a programmer error (job ids are minted fresh per submission,
// spec §4.H step 3) and panics rather than silently overwriting state.
func (s *jobsStore) insert(id string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.entries[id]; exists {
		panic("jobsStore: insert called twice for job " + id)
	}
	s.entries[id] = &jobEntry{ID: id, Status: jobPending, UpdatedAt: time.Now()}
}

// setRunning transitions id to Running.
func (s *jobsStore) setRunning(id string) {
	s.update(id, func(e *jobEntry) {
		e.Status = jobRunning
	})
}

// setCompleted transitions id to Completed with the given proof output.
func (s *jobsStore) setCompleted(id, zkProof, publicValues string) {
	s.update(id, func(e *jobEntry) {
		e.Status = jobCompleted
		e.ZKProof = zkProof
		e.PublicValues = publicValues
	})
}

// setFailed transitions id to Failed with errMsg as the human-readable
// cause (spec §7: "shaped for human consumption, not machine parsing").
func (s *jobsStore) setFailed(id, errMsg string) {
	s.update(id, func(e *jobEntry) {
		e.Status = jobFailed
		e.Err = errMsg
	})
}

// update applies mutate to the entry for id under the write lock. A
// reference to an unknown id is logged and otherwise ignored (spec §4.G:
// "no-op (but logged) if id unknown") — this should never happen given
// the orchestrator always inserts before spawning the worker that later
// calls update, but a defensive no-op is cheaper than a panic here.
func (s *jobsStore) update(id string, mutate func(*jobEntry)) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	e, ok := s.entries[id]
	if !ok {
		log.Warnw("jobsStore: set on unknown job id", "jobId", id)
		return
	}
	mutate(e)
	e.UpdatedAt = time.Now()
}

// get returns a clone of the entry for id, or (nil, false) if unknown
// (spec §4.G: "returns a clone of the entry or NotFound").
func (s *jobsStore) get(id string) (*jobEntry, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	return e.clone(), true
}

// count returns the number of jobs currently tracked, used by the health
// endpoint (spec §6 GET /health "jobs":<count>).
func (s *jobsStore) count() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.entries)
}
