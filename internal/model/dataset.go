package model

import (
	"errors"
	"fmt"
)

// Dataset construction errors.
var (
	// ErrEmptyDataset is returned when a dataset is created with no columns.
	ErrEmptyDataset = errors.New("dataset must contain at least one column")

	// ErrColumnLength is returned when columns have unequal row counts.
	// All columns in a dataset must describe the same set of rows.
	ErrColumnLength = errors.New("dataset columns must have equal row counts")

	// ErrDuplicateColumn is returned when two columns share the same name.
	ErrDuplicateColumn = errors.New("dataset column names must be unique")
)

// Column is a single named column of numeric values.
type Column struct {
	// Name identifies the column, e.g. "Values".
	Name string `json:"name"`

	// Values holds the column data in row order.
	Values []float64 `json:"values"`
}

// TextColumn is a single named column of text values, such as category
// labels. Text columns take part in the summary (row count) but are
// excluded from numeric statistics and correlation.
type TextColumn struct {
	// Name identifies the column, e.g. "Category".
	Name string `json:"name"`

	// Values holds the column data in row order.
	Values []string `json:"values"`
}

// Dataset is an ordered table of named columns: numeric columns carrying
// the measured values and text columns carrying labels.
//
// Design decision: We keep column order in slices rather than using maps
// keyed by name because downstream consumers (analysis summaries, charts,
// report tables) must render columns in a stable, reproducible order.
// Datasets are created once by the collector and treated as read-only
// afterwards; nothing in the pipeline mutates them.
type Dataset struct {
	// Columns contains the numeric table data in column order.
	Columns []Column `json:"columns"`

	// TextColumns contains the label columns in column order.
	TextColumns []TextColumn `json:"text_columns,omitempty"`
}

// NewDataset creates a Dataset from the given numeric and text columns.
// It validates the dataset invariants: at least one column, unique column
// names across both kinds, and equal row counts across all columns.
func NewDataset(columns []Column, textColumns ...TextColumn) (*Dataset, error) {
	if len(columns) == 0 && len(textColumns) == 0 {
		return nil, ErrEmptyDataset
	}

	rows := -1
	seen := make(map[string]bool, len(columns)+len(textColumns))

	check := func(name string, length int) error {
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = true

		if rows == -1 {
			rows = length
		} else if length != rows {
			return fmt.Errorf("%w: column %q has %d rows, expected %d",
				ErrColumnLength, name, length, rows)
		}
		return nil
	}

	for _, col := range columns {
		if err := check(col.Name, len(col.Values)); err != nil {
			return nil, err
		}
	}
	for _, col := range textColumns {
		if err := check(col.Name, len(col.Values)); err != nil {
			return nil, err
		}
	}

	return &Dataset{Columns: columns, TextColumns: textColumns}, nil
}

// Rows returns the number of rows in the dataset.
func (d *Dataset) Rows() int {
	if len(d.Columns) > 0 {
		return len(d.Columns[0].Values)
	}
	if len(d.TextColumns) > 0 {
		return len(d.TextColumns[0].Values)
	}
	return 0
}

// ColumnNames returns the numeric column names in table order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the values of the named numeric column.
// The second return value is false if the column does not exist.
func (d *Dataset) Column(name string) ([]float64, bool) {
	for _, col := range d.Columns {
		if col.Name == name {
			return col.Values, true
		}
	}
	return nil, false
}

// TextColumn returns the values of the named text column.
// The second return value is false if the column does not exist.
func (d *Dataset) TextColumn(name string) ([]string, bool) {
	for _, col := range d.TextColumns {
		if col.Name == name {
			return col.Values, true
		}
	}
	return nil, false
}
