package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mlforge/tabtrain/internal/training"
)

// Loader reads training data from a directory of uniform CSV files. Each
// file has a header row and columns [id, label, feature_1..feature_M]: the
// first column is an ID the core ignores, the second is the label, the rest
// are features. All files are concatenated row-wise.
type Loader struct {
	inputDir string
}

// NewLoader creates a Loader for the given input directory.
func NewLoader(inputDir string) *Loader {
	return &Loader{inputDir: inputDir}
}

// Load reads every file in the input directory into one dataset. A directory
// with zero files is an error: the data location was specified incorrectly or
// is not readable.
func (l *Loader) Load(ctx context.Context) (*training.Dataset, error) {
	entries, err := os.ReadDir(l.inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", l.inputDir, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, filepath.Join(l.inputDir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("there are no files in %s: the input data location was incorrectly specified or is not accessible", l.inputDir)
	}

	ds := &training.Dataset{}
	labelMap := make(map[string]float64)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := l.appendFile(ds, file, labelMap); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func (l *Loader) appendFile(ds *training.Dataset, path string, labelMap map[string]float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	csvReader := csv.NewReader(f)
	header, err := csvReader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header of %s: %w", path, err)
	}
	if len(header) < 3 {
		return fmt.Errorf("%s has %d columns, need at least [id, label, feature]", path, len(header))
	}
	if ds.FeatureColumns == nil {
		ds.FeatureColumns = append([]string(nil), header[2:]...)
	} else if len(header)-2 != len(ds.FeatureColumns) {
		return fmt.Errorf("%s has %d feature columns, expected %d", path, len(header)-2, len(ds.FeatureColumns))
	}

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record in %s: %w", path, err)
		}

		// Column 0 is the row ID and is skipped.
		features := make([]float64, len(record)-2)
		for i := 2; i < len(record); i++ {
			val, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return fmt.Errorf("failed to parse feature value %q in %s: %w", record[i], path, err)
			}
			features[i-2] = val
		}

		// Numeric labels pass through; categorical labels are mapped to
		// consecutive codes in first-seen order, shared across files.
		labelStr := record[1]
		var label float64
		if parsed, err := strconv.ParseFloat(labelStr, 64); err == nil {
			label = parsed
		} else if code, ok := labelMap[labelStr]; ok {
			label = code
		} else {
			label = float64(len(labelMap))
			labelMap[labelStr] = label
		}

		ds.X = append(ds.X, features)
		ds.Y = append(ds.Y, label)
	}
	return nil
}
