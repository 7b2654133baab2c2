package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeFetchFlyers  Type = "fetch_flyers"
	TypeExtractFlyer Type = "extract_flyer"
)

type Status string

const StatusQueued Status = "queued"

// Job is one accepted trigger request. The id is what the API hands back to
// the caller in the 202 response.
type Job struct {
	ID         string    `json:"jobId"`
	Type       Type      `json:"type"`
	FlyerID    string    `json:"flyerId,omitempty"`
	Status     Status    `json:"status"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// Queue is an in-process job registry. Jobs are accepted and remembered but
// not executed here.
// TODO: hand queued jobs to the PDF fetch/extraction worker once it exists.
type Queue struct {
	mu   sync.Mutex
	jobs map[string]Job
}

func NewQueue() *Queue {
	return &Queue{jobs: make(map[string]Job)}
}

// Enqueue records a new job and returns it with a freshly minted id.
func (q *Queue) Enqueue(t Type, flyerID string) Job {
	job := Job{
		ID:         uuid.NewString(),
		Type:       t,
		FlyerID:    flyerID,
		Status:     StatusQueued,
		EnqueuedAt: time.Now(),
	}

	q.mu.Lock()
	q.jobs[job.ID] = job
	q.mu.Unlock()

	return job
}

// Get looks up a previously enqueued job by id.
func (q *Queue) Get(id string) (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	job, ok := q.jobs[id]
	return job, ok
}

// Len reports how many jobs are currently held.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
