package estimators

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlforge/tabtrain/internal/data"
	"github.com/mlforge/tabtrain/internal/training"
)

func TestFullTrainingRun(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	// Two CSV shards of a separable binary problem: negative feature is
	// class 0, positive is class 1.
	for shard := 0; shard < 2; shard++ {
		content := "id,label,signal\n"
		for i := 0; i < 50; i++ {
			offset := 0.1 + float64(i)/50
			if i%2 == 0 {
				content += fmt.Sprintf("%d,0,%g\n", shard*50+i, -offset)
			} else {
				content += fmt.Sprintf("%d,1,%g\n", shard*50+i, offset)
			}
		}
		name := fmt.Sprintf("shard-%d.csv", shard)
		require.NoError(t, os.WriteFile(filepath.Join(inputDir, name), []byte(content), 0o644))
	}

	paramPath := filepath.Join(t.TempDir(), "params.json")
	params := `{"process_id": "e2e-run", "epochs": 200, "learning_rate": 0.5}`
	require.NoError(t, os.WriteFile(paramPath, []byte(params), 0o644))

	est, err := New("logistic_regression", paramPath, outputDir)
	require.NoError(t, err)

	orchestrator := training.NewOrchestrator(est, data.NewLoader(inputDir), outputDir, zerolog.Nop())
	require.NoError(t, orchestrator.Run(context.Background()))

	// 100 rows select repeated cross-validation; the persisted model is
	// the full-data fit and the indicator file holds the mean fold score.
	modelData, err := os.ReadFile(filepath.Join(outputDir, LogisticModelFile))
	require.NoError(t, err)
	var model LogisticModel
	require.NoError(t, json.Unmarshal(modelData, &model))
	assert.Equal(t, 1, model.FeatureCount)

	indData, err := os.ReadFile(filepath.Join(outputDir, training.IndicatorFile))
	require.NoError(t, err)
	var indicators map[string]interface{}
	require.NoError(t, json.Unmarshal(indData, &indicators))

	score, ok := indicators["score"].(float64)
	require.True(t, ok)
	assert.Greater(t, score, 0.9)
	assert.Contains(t, indicators, "accuracy")
}
