// Package queue defines the asynq task types shared by the API (producer)
// and the worker (consumer).
package queue

const (
	TypeIngestDirectory = "ingest:directory"
)

// IngestDirectoryPayload asks the worker to load, chunk, embed, and index
// every supported document under Dir. An empty Dir means the configured
// docs directory.
type IngestDirectoryPayload struct {
	Dir string `json:"dir"`
}
