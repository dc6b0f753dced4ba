package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlforge/tabtrain/internal/training"
)

func writeParams(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParams(t *testing.T) {
	t.Run("loads hyperparameters", func(t *testing.T) {
		path := writeParams(t, `{
			"process_id": "run-42",
			"learning_rate": 0.05,
			"epochs": 20
		}`)

		params, err := LoadParams(path)
		require.NoError(t, err)
		assert.Equal(t, 0.05, params["learning_rate"])
		assert.Equal(t, "run-42", params["process_id"])
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadParams(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed file fails", func(t *testing.T) {
		path := writeParams(t, `{"process_id": `)
		_, err := LoadParams(path)
		assert.Error(t, err)
	})
}

func TestProcessID(t *testing.T) {
	tests := []struct {
		name   string
		params training.Params
		want   string
	}{
		{
			name:   "explicit process id",
			params: training.Params{"process_id": "run-7"},
			want:   "run-7",
		},
		{
			name:   "absent process id",
			params: training.Params{"learning_rate": 0.1},
			want:   DefaultProcessID,
		},
		{
			name:   "empty process id",
			params: training.Params{"process_id": ""},
			want:   DefaultProcessID,
		},
		{
			name:   "non-string process id",
			params: training.Params{"process_id": 12},
			want:   DefaultProcessID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProcessID(tt.params))
		})
	}
}
