package model

import "time"

// Environment identifies the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the caller identity through the pipeline.
type Scope struct {
	UserID  string // e.g. "telegram_12345" or "http_<uuid>"
	Channel string // "http" | "telegram"
}

// Utterance is one raw input string with a monotonic sequence number.
// Immutable once created.
type Utterance struct {
	Seq        uint64
	Text       string
	ReceivedAt time.Time
}

// Clause is one normalized, independently classifiable segment of an
// utterance. Clause order is execution order.
type Clause struct {
	UtteranceSeq uint64 `json:"utterance_seq"`
	Index        int    `json:"index"`
	Text         string `json:"text"`
}
