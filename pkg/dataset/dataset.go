// Package dataset loads tabular numeric data for fitness evaluation.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// ErrEmpty is returned when a dataset has no usable rows.
var ErrEmpty = errors.New("dataset has no rows")

// Dataset is a feature matrix with one numeric target column.
type Dataset struct {
	Features []string
	Target   string
	X        [][]float64
	Y        []float64
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Y) }

// LoadCSV reads a CSV file with a header row. target names the label column;
// an empty target selects the last column.
func LoadCSV(path, target string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := ReadCSV(f, target)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return ds, nil
}

// ReadCSV parses CSV from r. See LoadCSV.
func ReadCSV(r io.Reader, target string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("need at least one feature and a target, got %d columns", len(header))
	}

	targetIdx := len(header) - 1
	if target != "" {
		targetIdx = -1
		for i, h := range header {
			if strings.TrimSpace(h) == target {
				targetIdx = i
				break
			}
		}
		if targetIdx < 0 {
			return nil, fmt.Errorf("target column %q not in header", target)
		}
	}

	ds := &Dataset{Target: strings.TrimSpace(header[targetIdx])}
	for i, h := range header {
		if i != targetIdx {
			ds.Features = append(ds.Features, strings.TrimSpace(h))
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := make([]float64, 0, len(ds.Features))
		var y float64
		for i, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, header[i], err)
			}
			if i == targetIdx {
				y = v
			} else {
				row = append(row, v)
			}
		}
		ds.X = append(ds.X, row)
		ds.Y = append(ds.Y, y)
	}

	if ds.Len() == 0 {
		return nil, ErrEmpty
	}
	return ds, nil
}

// Split shuffles row indices with rng and returns train and test partitions.
// trainFraction must lie in (0, 1]; a fraction of 1 yields an empty test set.
func (d *Dataset) Split(rng *rand.Rand, trainFraction float64) (*Dataset, *Dataset, error) {
	if trainFraction <= 0 || trainFraction > 1 {
		return nil, nil, fmt.Errorf("train fraction %v out of range (0, 1]", trainFraction)
	}
	n := d.Len()
	nTrain := int(float64(n) * trainFraction)
	if nTrain < 1 {
		nTrain = 1
	}

	perm := rng.Perm(n)
	return d.subset(perm[:nTrain]), d.subset(perm[nTrain:]), nil
}

func (d *Dataset) subset(idx []int) *Dataset {
	out := &Dataset{
		Features: d.Features,
		Target:   d.Target,
		X:        make([][]float64, 0, len(idx)),
		Y:        make([]float64, 0, len(idx)),
	}
	for _, i := range idx {
		out.X = append(out.X, d.X[i])
		out.Y = append(out.Y, d.Y[i])
	}
	return out
}
