// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates how a single converter run ended.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Conversion records one converter invocation for the history store.
type Conversion struct {
	// ID is the history row identifier; zero until stored.
	ID int64 `json:"id" yaml:"id"`

	// Tool is the converter name (e.g. "pdf2image", "doc2pdf").
	Tool string `json:"tool" yaml:"tool"`

	// Input is the source file path as given on the command line.
	Input string `json:"input" yaml:"input"`

	// Outputs lists the files written. Most tools write one; pdf2image writes
	// one per page.
	Outputs []string `json:"outputs" yaml:"outputs"`

	// Status is converted or failed.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Duration is the wall-clock time the conversion took.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// FinishedAt is when the conversion returned.
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}
