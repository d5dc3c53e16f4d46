package domain

// VersionStatus is the lifecycle state of a server-side map processing job.
type VersionStatus string

const (
	VersionStatusUploading  VersionStatus = "uploading"
	VersionStatusProcessing VersionStatus = "processing"
	VersionStatusCompleted  VersionStatus = "completed"
	VersionStatusFailed     VersionStatus = "failed"
)

// IsTerminal reports whether the processing job has finished, successfully
// or not. Polling stops once a terminal status is observed.
func (s VersionStatus) IsTerminal() bool {
	return s == VersionStatusCompleted || s == VersionStatusFailed
}

// VersionState is the progress snapshot of a processing job.
type VersionState struct {
	Status   VersionStatus
	Progress int
	Message  string
}

// Version is one uploaded revision of a map file.
type Version struct {
	ID    string
	MapID string
	State VersionState
}
