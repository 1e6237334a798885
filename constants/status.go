package constants

// JobStatus is the canonical status for annotation jobs.
type JobStatus string

// Stable values (returned verbatim on the status endpoint).
const (
	JobStatusProcessing JobStatus = "processing" // queued or in progress
	JobStatusCompleted  JobStatus = "completed"  // result ready for download
	JobStatusError      JobStatus = "error"      // terminal failure
)
