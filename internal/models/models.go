package models

import (
	"time"

	"github.com/industrial-labels/qrtag/internal/record"
)

// Batch represents one uploaded label source held in memory between
// upload and generation.
type Batch struct {
	ID        string          `json:"id"`
	Filename  string          `json:"filename"`
	Columns   []string        `json:"columns"`
	Records   []record.Record `json:"records"`
	CreatedAt time.Time       `json:"created_at"`
}
