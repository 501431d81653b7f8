package jobmanager

import (
	"context"
	"sort"
	"sync"

	"pumpterm/errors"
)

// CodeManagerClosed is reported when work is submitted after Shutdown
const CodeManagerClosed = "JOB_MANAGER_CLOSED"

// Task is the work a job performs
type Task func(ctx context.Context) (interface{}, error)

// JobManager runs tasks in the background with a concurrency limit
type JobManager struct {
	jobs      map[JobID]*Job
	mu        sync.RWMutex
	semaphore chan struct{} // concurrency limit
	nextID    JobID
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewJobManager creates a JobManager running at most concurrencyLimit tasks
// at once. A limit below 1 is treated as 1.
func NewJobManager(ctx context.Context, concurrencyLimit int) *JobManager {
	if concurrencyLimit < 1 {
		concurrencyLimit = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &JobManager{
		jobs:      make(map[JobID]*Job),
		semaphore: make(chan struct{}, concurrencyLimit),
		nextID:    1,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Submit queues task under name and returns its job ID. The task starts as
// soon as a slot is free; Submit itself never blocks.
func (jm *JobManager) Submit(name string, task Task) (JobID, error) {
	select {
	case <-jm.ctx.Done():
		return 0, errors.NewSystemError(CodeManagerClosed, "job manager is shutting down")
	default:
	}

	jm.mu.Lock()
	id := jm.nextID
	jm.nextID++
	job := NewJob(id, name)
	jm.jobs[id] = job
	jm.mu.Unlock()

	jm.wg.Add(1)
	go jm.executeJob(job, task)

	return id, nil
}

// executeJob waits for a slot, then runs the task
func (jm *JobManager) executeJob(job *Job, task Task) {
	defer jm.wg.Done()

	select {
	case jm.semaphore <- struct{}{}:
	case <-jm.ctx.Done():
		job.cancel(jm.ctx.Err())
		return
	}
	defer func() { <-jm.semaphore }()

	job.start()
	result, err := task(jm.ctx)
	job.finish(result, err)
}

// Wait blocks until every submitted job has finished
func (jm *JobManager) Wait() {
	jm.wg.Wait()
}

// GetJob returns a specific job
func (jm *JobManager) GetJob(id JobID) (*Job, bool) {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	job, exists := jm.jobs[id]
	return job, exists
}

// ListJobs returns all jobs in submission order
func (jm *JobManager) ListJobs() []*Job {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	jobs := make([]*Job, 0, len(jm.jobs))
	for _, job := range jm.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].ID < jobs[b].ID })

	return jobs
}

// GetRunningJobsCount returns the number of currently running jobs
func (jm *JobManager) GetRunningJobsCount() int {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	count := 0
	for _, job := range jm.jobs {
		if job.GetStatus() == StatusRunning {
			count++
		}
	}
	return count
}

// GetConcurrencyLimit returns the concurrency limit
func (jm *JobManager) GetConcurrencyLimit() int {
	return cap(jm.semaphore)
}

// Shutdown cancels jobs that have not started and waits for running ones
func (jm *JobManager) Shutdown() {
	jm.cancel()
	jm.wg.Wait()
}
