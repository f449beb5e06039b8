package domain

import (
	"context"
	"io"
)

// CSVImportReport summarizes one CSV batch import.
// swagger:model CSVImportReport
type CSVImportReport struct {
	// Processed counts rows that produced or updated a gig. Rows skipped for
	// missing required cells are not counted.
	Processed int `json:"processed"`
}

// CSVImporter ingests a gig-history CSV export in one batch. The whole batch
// is one unit of work: any row error aborts and rolls back the import.
type CSVImporter interface {
	Import(ctx context.Context, r io.Reader) (*CSVImportReport, error)
}
