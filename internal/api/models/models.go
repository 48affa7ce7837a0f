// Package models holds the API's request and response bodies and their
// conversions from the domain types. Handlers stay free of JSON concerns.
package models

import "time"

// HealthData reports service liveness.
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

// HealthResponse wraps HealthData for API responses.
type HealthResponse struct {
	Body HealthData
}

// VersionData contains version and build metadata.
type VersionData struct {
	Version   string `json:"version" example:"1.2.0" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit SHA"`
	BuildDate string `json:"build_date" example:"2026-01-27 14:30" doc:"Build timestamp"`
	BuildID   string `json:"build_id" example:"a1b2c3d4" doc:"Unique build identifier"`
	GoVersion string `json:"go_version" example:"go1.24.0" doc:"Go compiler version"`
	Compiler  string `json:"compiler" example:"gc" doc:"Compiler used"`
	Platform  string `json:"platform" example:"linux/amd64" doc:"Operating system and architecture"`
}

// VersionResponse wraps VersionData for API responses.
type VersionResponse struct {
	Body VersionData
}

// LogEntryData is one buffered log line.
type LogEntryData struct {
	Seq        uint64         `json:"seq" example:"42" doc:"Monotonic sequence number"`
	Timestamp  time.Time      `json:"timestamp" doc:"When the entry was logged"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"devices" doc:"Source module"`
	Message    string         `json:"message" example:"Device added" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured attributes"`
}

// LogsData is the body of the log dump endpoint.
type LogsData struct {
	Entries []LogEntryData `json:"entries" doc:"Buffered log entries, oldest first"`
	Count   int            `json:"count" example:"128" doc:"Number of entries returned"`
}

// LogsResponse wraps LogsData for API responses.
type LogsResponse struct {
	Body LogsData
}
