package training

import "fmt"

// Dataset is a loaded feature matrix paired with its label vector. Both are
// read-only after loading.
type Dataset struct {
	X              [][]float64
	Y              []float64
	FeatureColumns []string
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.X)
}

// Validate checks the shape invariants: X and Y must have the same length
// and the dataset must not be empty.
func (d *Dataset) Validate() error {
	if len(d.X) != len(d.Y) {
		return fmt.Errorf("feature matrix has %d rows but label vector has %d", len(d.X), len(d.Y))
	}
	if len(d.X) == 0 {
		return fmt.Errorf("dataset is empty")
	}
	return nil
}

// Subset returns the rows of the dataset selected by idx. The returned
// slices share backing rows with the original.
func (d *Dataset) Subset(idx []int) ([][]float64, []float64) {
	X := make([][]float64, len(idx))
	y := make([]float64, len(idx))
	for i, j := range idx {
		X[i] = d.X[j]
		y[i] = d.Y[j]
	}
	return X, y
}
