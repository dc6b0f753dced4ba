package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mlforge/tabtrain/internal/training"
)

// ProcessIDKey is the parameter-file field holding the run identifier that
// tags all log lines of a run.
const ProcessIDKey = "process_id"

// DefaultProcessID tags runs whose parameter file carries no process_id.
const DefaultProcessID = "xxxxxxxx"

// LoadParams reads the JSON parameter file at path into a parameter set.
// The set is loaded once per run and read-only thereafter.
func LoadParams(path string) (training.Params, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading parameter file: %w", err)
	}
	return training.Params(v.AllSettings()), nil
}

// ProcessID returns the run identifier from params, falling back to
// DefaultProcessID when the field is absent or empty.
func ProcessID(params training.Params) string {
	if id, ok := params[ProcessIDKey].(string); ok && id != "" {
		return id
	}
	return DefaultProcessID
}
