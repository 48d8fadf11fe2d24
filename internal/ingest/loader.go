package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

// Files names the five export files inside the data directory. Any file may
// be absent; its collection loads empty and a warning is recorded.
type Files struct {
	Events      string
	Manifests   string
	Allocations string
	Fluids      string
	Voyages     string
}

// DefaultFiles returns the standard export file names.
func DefaultFiles() Files {
	return Files{
		Events:      "voyage_events.xlsx",
		Manifests:   "vessel_manifests.xlsx",
		Allocations: "cost_allocation.xlsx",
		Fluids:      "bulk_actions.xlsx",
		Voyages:     "voyage_list.xlsx",
	}
}

// Stats summarizes an ingestion pass.
type Stats struct {
	Events      int      `json:"events"`
	Manifests   int      `json:"manifests"`
	Allocations int      `json:"allocations"`
	Fluids      int      `json:"fluids"`
	Voyages     int      `json:"voyages"`
	Skipped     int      `json:"skipped"`
	Warnings    []string `json:"warnings,omitempty"`
}

// LoadBatch reads every export file in dir into one typed batch. A missing
// or unreadable file degrades to an empty collection with a warning; only a
// completely empty result is an error.
func LoadBatch(dir string, files Files) (*model.Batch, *Stats, error) {
	batch := &model.Batch{}
	stats := &Stats{}

	load(dir, files.Events, stats, func(rows [][]string) {
		batch.Events, stats.Events = convert[eventRow, model.VoyageEvent](rows, stats, eventRow.record)
	})
	load(dir, files.Manifests, stats, func(rows [][]string) {
		batch.Manifests, stats.Manifests = convert[manifestRow, model.VesselManifest](rows, stats, manifestRow.record)
	})
	load(dir, files.Allocations, stats, func(rows [][]string) {
		batch.Allocations, stats.Allocations = convert[allocationRow, model.CostAllocationLine](rows, stats, allocationRow.record)
	})
	load(dir, files.Fluids, stats, func(rows [][]string) {
		batch.FluidActions, stats.Fluids = convert[fluidRow, model.BulkFluidAction](rows, stats, fluidRow.record)
	})
	load(dir, files.Voyages, stats, func(rows [][]string) {
		batch.Voyages, stats.Voyages = convert[voyageRow, model.VoyageRecord](rows, stats, voyageRow.record)
	})

	if batch.Size() == 0 {
		return nil, stats, eris.Errorf("ingest: no records loaded from %s", dir)
	}

	zap.L().Info("ingest: batch loaded",
		zap.Int("events", stats.Events),
		zap.Int("manifests", stats.Manifests),
		zap.Int("allocations", stats.Allocations),
		zap.Int("fluids", stats.Fluids),
		zap.Int("voyages", stats.Voyages),
		zap.Int("skipped", stats.Skipped),
	)

	return batch, stats, nil
}

// load reads one export file and hands its rows to apply. Errors become
// warnings; the rest of the batch still loads.
func load(dir, name string, stats *Stats, apply func([][]string)) {
	if name == "" {
		return
	}
	path := filepath.Join(dir, name)
	rows, err := readRows(path)
	if err != nil {
		stats.Warnings = append(stats.Warnings, err.Error())
		zap.L().Warn("ingest: skipping file", zap.String("path", path), zap.Error(err))
		return
	}
	apply(rows)
}

// readRows reads a spreadsheet or CSV file into raw rows, header first.
func readRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path, XLSXOptions{})
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "ingest: open csv")
		}
		defer f.Close()
		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		rows, err := r.ReadAll()
		if err != nil {
			return nil, eris.Wrap(err, "ingest: read csv")
		}
		return rows, nil
	default:
		return nil, eris.Errorf("ingest: unsupported file type %s", path)
	}
}

// sliceReader adapts in-memory rows to the csvutil reader interface so xlsx
// sheets and CSV files decode through the same path. Rows are padded or
// trimmed to the header width because xlsx sheets drop trailing empty cells.
type sliceReader struct {
	rows  [][]string
	width int
	pos   int
}

func (s *sliceReader) Read() ([]string, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	if len(row) > s.width {
		row = row[:s.width]
	}
	for len(row) < s.width {
		row = append(row, "")
	}
	return row, nil
}

// convert decodes raw rows into typed row structs and converts each to its
// model record. Blank and malformed rows are counted, not fatal.
func convert[R any, M any](rows [][]string, stats *Stats, record func(R) (M, bool)) ([]M, int) {
	if len(rows) < 2 {
		return nil, 0
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.Join(strings.Fields(h), " ")
	}

	dec, err := csvutil.NewDecoder(&sliceReader{rows: rows[1:], width: len(header)}, header...)
	if err != nil {
		stats.Warnings = append(stats.Warnings, eris.Wrap(err, "ingest: build decoder").Error())
		return nil, 0
	}

	var out []M
	for {
		var row R
		err := dec.Decode(&row)
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Skipped++
			continue
		}
		m, ok := record(row)
		if !ok {
			stats.Skipped++
			continue
		}
		out = append(out, m)
	}
	return out, len(out)
}
