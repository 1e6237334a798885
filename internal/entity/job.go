package entity

import (
	"time"

	"github.com/annotatr/remarks-service/constants"
)

// Job represents one upload-to-result annotation unit for data transfer
// between layers. Records are owned by the job store; callers always work
// on copies.
type Job struct {
	ID           string              `json:"id"`
	Status       constants.JobStatus `json:"status"`
	ResultPath   string              `json:"result_path,omitempty"`
	ResultName   string              `json:"result_name,omitempty"`
	ErrorMessage string              `json:"error_message,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	FinishedAt   *time.Time          `json:"finished_at,omitempty"`
}

// Terminal reports whether the job has left the processing state.
func (j Job) Terminal() bool {
	return j.Status == constants.JobStatusCompleted || j.Status == constants.JobStatusError
}
