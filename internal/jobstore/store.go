// Package jobstore tracks annotation jobs from creation to consumption.
// The store is the sole owner of job records; every accessor returns a copy.
package jobstore

import "github.com/annotatr/remarks-service/internal/entity"

// Store is a concurrent-safe mapping from job id to job state. Terminal
// transitions are atomic and idempotent: the first Complete or Fail wins,
// later calls are no-ops.
type Store interface {
	// Create issues a fresh collision-free id and records the job in the
	// processing state.
	Create() string

	// Get returns a copy of the job, or false if the id is unknown.
	Get(id string) (entity.Job, bool)

	// Complete transitions a processing job to completed with its result
	// artifact. Returns false if the job is absent or already terminal.
	Complete(id, resultPath, resultName string) bool

	// Fail transitions a processing job to error with a message. Returns
	// false if the job is absent or already terminal.
	Fail(id, message string) bool

	// Claim atomically removes and returns a completed job, enforcing
	// at-most-once download delivery. Returns false if the job is absent
	// or not completed.
	Claim(id string) (entity.Job, bool)

	// Remove deletes the record entirely, whatever its state.
	Remove(id string)
}
