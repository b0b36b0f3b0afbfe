// Package tabular holds the boundary collaborators of the engine: loading
// external data into schema-valid datasets and partitioning rows. The core
// packages never touch files; everything here ends at a Dataset value.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/vk/featurebake/internal/dataset"
)

// ReadCSV reads a header-first CSV stream into a Dataset. A column is
// numeric when every non-empty cell parses as a float; empty numeric cells
// become NaN. Everything else is categorical.
func ReadCSV(r io.Reader) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}
	header := records[0]
	rows := records[1:]

	cols := make([]dataset.Column, len(header))
	for j, name := range header {
		cells := make([]string, len(rows))
		numeric := true
		for i, rec := range rows {
			cells[i] = rec[j]
			if rec[j] != "" {
				if _, err := strconv.ParseFloat(rec[j], 64); err != nil {
					numeric = false
				}
			}
		}
		if numeric {
			vals := make([]float64, len(cells))
			for i, cell := range cells {
				if cell == "" {
					vals[i] = math.NaN()
					continue
				}
				vals[i], _ = strconv.ParseFloat(cell, 64)
			}
			cols[j] = dataset.NumericColumn(name, vals)
		} else {
			cols[j] = dataset.CategoricalColumn(name, cells)
		}
	}
	return dataset.New(cols...)
}

// ReadCSVFile opens and reads a CSV file into a Dataset.
func ReadCSVFile(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
