package usecase

import (
	"context"
	"io"
)

// ImportedRowError describes a CSV row that was skipped during import.
type ImportedRowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Imported int                `json:"imported"`
	Skipped  []ImportedRowError `json:"skipped"`
}

// ImportUsecase bulk-creates addresses from external files.
type ImportUsecase interface {
	// ImportCSV reads a header row naming street, city, state, country, latitude and longitude
	// in any order, then creates one address per data row. Invalid rows are skipped and reported.
	// A storage failure stops the import and returns the rows imported so far.
	ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error)
}
