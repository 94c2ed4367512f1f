// Package domain defines the types and interfaces for the reports service
package domain

import (
	"context"
	"time"

	searchdomain "partsearch/internal/services/search/domain"
)

// Report is one issue report captured against a search
// Results carries the ranked groups the user was looking at when filing
type Report struct {
	ID        string                       `json:"id"`
	Summary   string                       `json:"summary"`
	Details   string                       `json:"details,omitempty"`
	Rego      string                       `json:"rego,omitempty"`
	State     string                       `json:"state,omitempty"`
	Sources   []string                     `json:"sources,omitempty"`
	Results   []searchdomain.CategoryGroup `json:"results,omitempty"`
	CreatedAt time.Time                    `json:"created_at"`
}

// WriterPort persists reports to durable local storage
type WriterPort interface {
	// Write stores the report and returns the path it was written to
	Write(ctx context.Context, rep Report) (Report, string, error)
}
