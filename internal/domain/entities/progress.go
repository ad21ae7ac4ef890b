package entities

import "time"

// ProgressStage identifies a step of the generation pipeline
type ProgressStage string

const (
	StageAnalyzing  ProgressStage = "analyzing"
	StageSearching  ProgressStage = "searching"
	StageGenerating ProgressStage = "generating"
	StageRetrying   ProgressStage = "retrying"
	StageRendering  ProgressStage = "rendering"
	StageComplete   ProgressStage = "complete"
	StageFailed     ProgressStage = "failed"
)

// ProgressEvent is a status update emitted while a deck is generated.
// Events are broadcast to UI clients over the websocket connection.
type ProgressEvent struct {
	// JobID identifies the generation run the event belongs to
	JobID string `json:"job_id"`

	// Stage is the pipeline step the event reports on
	Stage ProgressStage `json:"stage"`

	// Message is a short human-readable status line
	Message string `json:"message"`

	// Attempt carries the retry counter for generating/retrying stages
	Attempt int `json:"attempt,omitempty"`

	// Timestamp is when the event was emitted
	Timestamp time.Time `json:"timestamp"`
}
