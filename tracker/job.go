// Package tracker keeps the observable progress of article jobs for polling clients.
package tracker

import "strings"

// Status is the phase label a polling client sees. The values are the labels the
// tracker front-end renders, so they are human readable rather than identifiers.
type Status string

const (
	StatusStarted             Status = "Started"
	StatusCheckingCredentials Status = "Checking WordPress credentials"
	StatusInvalidCredentials  Status = "Invalid credentials"
	StatusGeneratingSubtopics Status = "Generating subtopics"
	StatusGeneratingContent   Status = "Generating content"
	StatusPublishing          Status = "Publishing to WordPress"
	StatusCompleted           Status = "Completed"
	StatusFailedTopics        Status = "Failed to generate topics"

	errorPrefix = "Error: "
)

// ErrorStatus wraps an unexpected fault into a terminal status label.
func ErrorStatus(msg string) Status {
	return Status(errorPrefix + msg)
}

// Terminal reports whether no further transitions follow s.
func (s Status) Terminal() bool {
	switch s {
	case StatusInvalidCredentials, StatusCompleted, StatusFailedTopics:
		return true
	}
	return strings.HasPrefix(string(s), errorPrefix)
}

// Snapshot is a value copy of a job's progress.
type Snapshot struct {
	Status      Status `json:"status"`
	Percentage  int    `json:"percentage"`
	Description string `json:"description"`
}
