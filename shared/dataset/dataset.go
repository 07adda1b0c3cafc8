// Package dataset loads the reference CSV the service is built around and
// derives everything fit once at startup from it: feature order, slider bounds
// and the standardization transform.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/Bipul-Dubey/health-index/shared/constants"
)

var (
	ErrEmptyDataset   = errors.New("dataset has no rows")
	ErrMissingTarget  = errors.New("target column not found")
	ErrNonNumeric     = errors.New("column is not numeric")
	ErrMissingValues  = errors.New("column has missing values")
	ErrNonFinite      = errors.New("column has infinite values")
	ErrMissingFeature = errors.New("missing feature value")
	ErrUnknownFeature = errors.New("unknown feature")
)

// Bounds are the observed min/max of one feature column.
type Bounds struct {
	Feature string
	Label   string
	Min     float64
	Max     float64
}

// Dataset is the reference data set, held read-only for the process lifetime.
type Dataset struct {
	columns  []string
	rows     [][]float64
	target   string
	targetIx int
	features []string
	bounds   map[string]Bounds
}

func Load(path, target string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Read(f, target)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return ds, nil
}

func Read(r io.Reader, target string) (*Dataset, error) {
	df := dataframe.ReadCSV(r, dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return nil, ErrEmptyDataset
	}

	names := df.Names()
	ds := &Dataset{
		columns:  names,
		target:   target,
		targetIx: -1,
		bounds:   make(map[string]Bounds, len(names)),
	}

	cols := make([][]float64, len(names))
	for j, name := range names {
		s := df.Col(name)
		if s.Type() != series.Int && s.Type() != series.Float {
			return nil, fmt.Errorf("%w: %q", ErrNonNumeric, name)
		}
		if s.HasNaN() {
			return nil, fmt.Errorf("%w: %q", ErrMissingValues, name)
		}
		cols[j] = s.Float()
		for _, v := range cols[j] {
			if math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %q", ErrNonFinite, name)
			}
		}

		if name == target {
			ds.targetIx = j
			continue
		}
		ds.features = append(ds.features, name)
		ds.bounds[name] = Bounds{
			Feature: name,
			Label:   constants.Label(name),
			Min:     s.Min(),
			Max:     s.Max(),
		}
	}
	if ds.targetIx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingTarget, target)
	}

	ds.rows = make([][]float64, df.Nrow())
	for i := range ds.rows {
		row := make([]float64, len(names))
		for j := range names {
			row[j] = cols[j][i]
		}
		ds.rows[i] = row
	}

	return ds, nil
}

// Features returns the feature columns in training order (CSV order, target excluded).
func (d *Dataset) Features() []string {
	out := make([]string, len(d.features))
	copy(out, d.features)
	return out
}

func (d *Dataset) TargetColumn() string { return d.target }

func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

func (d *Dataset) Len() int { return len(d.rows) }

// Bounds returns slider bounds in training order.
func (d *Dataset) Bounds() []Bounds {
	out := make([]Bounds, 0, len(d.features))
	for _, f := range d.features {
		out = append(out, d.bounds[f])
	}
	return out
}

func (d *Dataset) Bound(feature string) (Bounds, bool) {
	b, ok := d.bounds[feature]
	return b, ok
}

// Matrix returns the feature values row by row, target excluded.
func (d *Dataset) Matrix() [][]float64 {
	out := make([][]float64, len(d.rows))
	for i, row := range d.rows {
		x := make([]float64, 0, len(d.features))
		for j, v := range row {
			if j != d.targetIx {
				x = append(x, v)
			}
		}
		out[i] = x
	}
	return out
}

func (d *Dataset) Target() []float64 {
	out := make([]float64, len(d.rows))
	for i, row := range d.rows {
		out[i] = row[d.targetIx]
	}
	return out
}

// Records returns the header followed by up to limit formatted rows.
// A limit <= 0 returns every row.
func (d *Dataset) Records(limit int) [][]string {
	n := len(d.rows)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([][]string, 0, n+1)
	out = append(out, d.Columns())
	for _, row := range d.rows[:n] {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		out = append(out, rec)
	}
	return out
}

// Row assembles named values into a single row in training column order.
func (d *Dataset) Row(values map[string]float64) ([]float64, error) {
	for name := range values {
		if _, ok := d.bounds[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
		}
	}
	row := make([]float64, len(d.features))
	for j, name := range d.features {
		v, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingFeature, name)
		}
		row[j] = v
	}
	return row, nil
}

// Clamp pins v into the observed bounds of feature and reports whether it moved.
func (d *Dataset) Clamp(feature string, v float64) (float64, bool) {
	b, ok := d.bounds[feature]
	if !ok {
		return v, false
	}
	switch {
	case v < b.Min:
		return b.Min, true
	case v > b.Max:
		return b.Max, true
	}
	return v, false
}

// RequireFeatures checks the dataset carries exactly the given feature set.
func (d *Dataset) RequireFeatures(required []constants.FeatureEnum) error {
	if len(required) != len(d.features) {
		return fmt.Errorf("expected %d feature columns, found %d", len(required), len(d.features))
	}
	for _, f := range required {
		if _, ok := d.bounds[string(f)]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingFeature, f)
		}
	}
	return nil
}
