package jobstore

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/annotatr/remarks-service/constants"
	"github.com/annotatr/remarks-service/internal/entity"
)

// Memory is the in-process Store. Jobs do not survive a restart; the table
// is ephemeral by design.
type Memory struct {
	mu     sync.Mutex
	jobs   map[string]*entity.Job
	logger *slog.Logger
}

func NewMemory(logger *slog.Logger) *Memory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Memory{
		jobs:   make(map[string]*entity.Job),
		logger: logger,
	}
}

func (m *Memory) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	for _, exists := m.jobs[id]; exists; _, exists = m.jobs[id] {
		id = uuid.NewString()
	}
	m.jobs[id] = &entity.Job{
		ID:        id,
		Status:    constants.JobStatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	return id
}

func (m *Memory) Get(id string) (entity.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok {
		return entity.Job{}, false
	}
	return *j, true
}

func (m *Memory) Complete(id, resultPath, resultName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok || j.Status != constants.JobStatusProcessing {
		m.logger.Warn("jobstore.transition.ignored", "job_id", id, "op", "complete")
		return false
	}
	now := time.Now().UTC()
	j.Status = constants.JobStatusCompleted
	j.ResultPath = resultPath
	j.ResultName = resultName
	j.FinishedAt = &now
	return true
}

func (m *Memory) Fail(id, message string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok || j.Status != constants.JobStatusProcessing {
		m.logger.Warn("jobstore.transition.ignored", "job_id", id, "op", "fail")
		return false
	}
	now := time.Now().UTC()
	j.Status = constants.JobStatusError
	j.ErrorMessage = message
	j.FinishedAt = &now
	return true
}

func (m *Memory) Claim(id string) (entity.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok || j.Status != constants.JobStatusCompleted {
		return entity.Job{}, false
	}
	delete(m.jobs, id)
	return *j, true
}

func (m *Memory) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, id)
}
