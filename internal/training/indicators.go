package training

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// IndicatorFile is the name of the indicator artifact inside the output
// directory.
const IndicatorFile = "indicator.json"

// IndicatorSet accumulates named evaluation indicators over a run. It is
// append-only until Save flushes it as one JSON object.
type IndicatorSet struct {
	values map[string]interface{}
}

func NewIndicatorSet() *IndicatorSet {
	return &IndicatorSet{values: make(map[string]interface{})}
}

// Set records an indicator value under name, replacing any previous value.
func (s *IndicatorSet) Set(name string, value interface{}) {
	s.values[name] = value
}

// Get returns the recorded value for name.
func (s *IndicatorSet) Get(name string) (interface{}, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Len returns the number of recorded indicators.
func (s *IndicatorSet) Len() int {
	return len(s.values)
}

// Save writes the indicator set to <outputDir>/indicator.json as a single
// indented JSON object. The file is written in one call so no partial
// indicator file is ever observed.
func (s *IndicatorSet) Save(outputDir string) error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode indicators: %w", err)
	}
	path := filepath.Join(outputDir, IndicatorFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
