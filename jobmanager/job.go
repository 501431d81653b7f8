package jobmanager

import (
	"fmt"
	"sync"
	"time"
)

// JobID is a unique identifier for a job. IDs are assigned in submission
// order starting at 1.
type JobID int64

// JobStatus represents the current status of a job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// Job is one unit of work submitted to a JobManager
type Job struct {
	ID        JobID
	Name      string
	Status    JobStatus
	Result    interface{}
	Error     error
	StartTime time.Time
	EndTime   time.Time
	mu        sync.RWMutex
}

// NewJob creates a pending job
func NewJob(id JobID, name string) *Job {
	return &Job{
		ID:     id,
		Name:   name,
		Status: StatusPending,
	}
}

// GetStatus returns the current status of the job
func (j *Job) GetStatus() JobStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Status
}

func (j *Job) start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusRunning
	j.StartTime = time.Now()
}

func (j *Job) finish(result interface{}, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Result = result
	j.Error = err
	j.EndTime = time.Now()
	if err != nil {
		j.Status = StatusFailed
	} else {
		j.Status = StatusCompleted
	}
}

func (j *Job) cancel(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Error = err
	j.Status = StatusCancelled
	j.EndTime = time.Now()
}

// GetResult returns the result of the job
func (j *Job) GetResult() interface{} {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Result
}

// GetError returns the error of the job
func (j *Job) GetError() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Error
}

// Done reports whether the job has reached a final status
func (j *Job) Done() bool {
	switch j.GetStatus() {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// GetDuration returns how long the job ran, or has been running
func (j *Job) GetDuration() time.Duration {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.StartTime.IsZero() {
		return 0
	}
	if j.EndTime.IsZero() {
		return time.Since(j.StartTime)
	}
	return j.EndTime.Sub(j.StartTime)
}

// String returns a string representation of the job
func (j *Job) String() string {
	status := j.GetStatus()
	return fmt.Sprintf("Job[%d] %s - %s (%s)", j.ID, j.Name, status, j.GetDuration())
}
