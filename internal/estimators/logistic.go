package estimators

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mlforge/tabtrain/internal/training"
)

// LogisticModelFile is the artifact name for a persisted logistic model.
const LogisticModelFile = "logistic_regression.json"

// LogisticModel is a trained binary classifier. Weights[0] is the bias.
type LogisticModel struct {
	ID           string    `json:"model_id"`
	Weights      []float64 `json:"weights"`
	FeatureCount int       `json:"feature_count"`
	TrainedAt    time.Time `json:"trained_at"`
}

// LogisticRegression trains a binary classifier with mini-batch gradient
// descent on log loss and scores with accuracy at a 0.5 threshold. Labels
// must be 0 or 1.
type LogisticRegression struct {
	base
}

// NewLogisticRegression creates a logistic regression estimator.
func NewLogisticRegression(paramPath, outputDir string) *LogisticRegression {
	return &LogisticRegression{base{paramPath: paramPath, outputDir: outputDir}}
}

// Fit trains on the given rows with deterministic initialization and
// shuffling.
func (e *LogisticRegression) Fit(ctx context.Context, X [][]float64, y []float64, params training.Params) (training.Model, error) {
	if len(X) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("empty training data")
	}
	inputSize := len(X[0])
	epochs := int(floatParam(params, "epochs", 100))
	batchSize := int(floatParam(params, "batch_size", 32))
	learningRate := floatParam(params, "learning_rate", 0.1)
	if batchSize <= 0 {
		return nil, fmt.Errorf("invalid batch size %d", batchSize)
	}
	for _, label := range y {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("labels must be 0 or 1, got %g", label)
		}
	}

	rng := rand.New(rand.NewSource(training.RandomSeed))
	weights := initializeWeights(rng, inputSize)
	totalSamples := len(X)

	for epoch := 0; epoch < epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		indices := rng.Perm(totalSamples)

		for i := 0; i < totalSamples; i += batchSize {
			batchEnd := min(i+batchSize, totalSamples)
			gradients := make([]float64, len(weights))

			for j := i; j < batchEnd; j++ {
				idx := indices[j]
				if len(X[idx]) != inputSize {
					return nil, fmt.Errorf("feature size mismatch: expected %d, got %d", inputSize, len(X[idx]))
				}
				// Gradient of log loss through the sigmoid link
				// reduces to (p - y) like squared loss.
				diff := sigmoid(forward(weights, X[idx])) - y[idx]
				gradients[0] += diff
				for k := 0; k < inputSize; k++ {
					gradients[k+1] += diff * X[idx][k]
				}
			}

			for j := range weights {
				gradients[j] /= float64(batchEnd - i)
				weights[j] -= learningRate * gradients[j]
			}
		}
	}

	return &LogisticModel{
		ID:           uuid.NewString(),
		Weights:      weights,
		FeatureCount: inputSize,
		TrainedAt:    time.Now().UTC(),
	}, nil
}

// Score returns accuracy at the 0.5 decision threshold.
func (e *LogisticRegression) Score(ctx context.Context, model training.Model, X [][]float64, y []float64) (float64, error) {
	m, err := asLogisticModel(model)
	if err != nil {
		return 0, err
	}
	if len(X) == 0 {
		return 0, fmt.Errorf("empty scoring data")
	}
	correct := 0
	for i := range X {
		if predictClass(m.Weights, X[i]) == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(X)), nil
}

// CalcIndicators records classification diagnostics against the held-out
// rows, treating label 1 as the positive class.
func (e *LogisticRegression) CalcIndicators(ctx context.Context, model training.Model, X [][]float64, y []float64, ind *training.IndicatorSet) error {
	m, err := asLogisticModel(model)
	if err != nil {
		return err
	}
	var truePos, falsePos, falseNeg, correct, predPos float64
	for i := range X {
		pred := predictClass(m.Weights, X[i])
		if pred == y[i] {
			correct++
		}
		if pred == 1 {
			predPos++
			if y[i] == 1 {
				truePos++
			} else {
				falsePos++
			}
		} else if y[i] == 1 {
			falseNeg++
		}
	}
	n := float64(len(X))
	ind.Set("accuracy", correct/n)
	ind.Set("positive_rate", predPos/n)
	if truePos+falsePos > 0 {
		ind.Set("precision", truePos/(truePos+falsePos))
	}
	if truePos+falseNeg > 0 {
		ind.Set("recall", truePos/(truePos+falseNeg))
	}
	return nil
}

// SaveModel writes the model as a JSON artifact into the output directory.
func (e *LogisticRegression) SaveModel(model training.Model) error {
	m, err := asLogisticModel(model)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	path := filepath.Join(e.outputDir, LogisticModelFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func asLogisticModel(model training.Model) (*LogisticModel, error) {
	m, ok := model.(*LogisticModel)
	if !ok {
		return nil, fmt.Errorf("expected *LogisticModel, got %T", model)
	}
	return m, nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func predictClass(weights, input []float64) float64 {
	if sigmoid(forward(weights, input)) >= 0.5 {
		return 1
	}
	return 0
}
