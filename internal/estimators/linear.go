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

// LinearModelFile is the artifact name for a persisted linear model.
const LinearModelFile = "linear_regression.json"

// LinearModel is a trained linear regression. Weights[0] is the bias.
type LinearModel struct {
	ID           string    `json:"model_id"`
	Weights      []float64 `json:"weights"`
	FeatureCount int       `json:"feature_count"`
	TrainedAt    time.Time `json:"trained_at"`
}

// LinearRegression trains a linear model with mini-batch gradient descent
// on squared loss and scores with R².
type LinearRegression struct {
	base
}

// NewLinearRegression creates a linear regression estimator.
func NewLinearRegression(paramPath, outputDir string) *LinearRegression {
	return &LinearRegression{base{paramPath: paramPath, outputDir: outputDir}}
}

// Fit trains on the given rows. Weight initialization and batch shuffling
// use the fixed seed so identical inputs reproduce identical models.
func (e *LinearRegression) Fit(ctx context.Context, X [][]float64, y []float64, params training.Params) (training.Model, error) {
	if len(X) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("empty training data")
	}
	inputSize := len(X[0])
	epochs := int(floatParam(params, "epochs", 50))
	batchSize := int(floatParam(params, "batch_size", 32))
	learningRate := floatParam(params, "learning_rate", 0.01)
	if batchSize <= 0 {
		return nil, fmt.Errorf("invalid batch size %d", batchSize)
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
				diff := forward(weights, X[idx]) - y[idx]
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

	return &LinearModel{
		ID:           uuid.NewString(),
		Weights:      weights,
		FeatureCount: inputSize,
		TrainedAt:    time.Now().UTC(),
	}, nil
}

// Score returns R² clamped at zero.
func (e *LinearRegression) Score(ctx context.Context, model training.Model, X [][]float64, y []float64) (float64, error) {
	m, err := asLinearModel(model)
	if err != nil {
		return 0, err
	}
	return rSquared(m.Weights, X, y), nil
}

// CalcIndicators records regression diagnostics against the held-out rows.
func (e *LinearRegression) CalcIndicators(ctx context.Context, model training.Model, X [][]float64, y []float64, ind *training.IndicatorSet) error {
	m, err := asLinearModel(model)
	if err != nil {
		return err
	}
	var mse, mae float64
	for i := range X {
		diff := forward(m.Weights, X[i]) - y[i]
		mse += diff * diff
		mae += math.Abs(diff)
	}
	n := float64(len(X))
	ind.Set("mse", mse/n)
	ind.Set("mae", mae/n)
	ind.Set("r2", rSquared(m.Weights, X, y))
	return nil
}

// SaveModel writes the model as a JSON artifact into the output directory.
func (e *LinearRegression) SaveModel(model training.Model) error {
	m, err := asLinearModel(model)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	path := filepath.Join(e.outputDir, LinearModelFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func asLinearModel(model training.Model) (*LinearModel, error) {
	m, ok := model.(*LinearModel)
	if !ok {
		return nil, fmt.Errorf("expected *LinearModel, got %T", model)
	}
	return m, nil
}

func forward(weights, input []float64) float64 {
	prediction := weights[0]
	for i := 0; i < len(weights)-1; i++ {
		prediction += input[i] * weights[i+1]
	}
	return prediction
}

func rSquared(weights []float64, X [][]float64, y []float64) float64 {
	meanLabel := 0.0
	for _, label := range y {
		meanLabel += label
	}
	meanLabel /= float64(len(y))

	totalSS := 0.0
	residualSS := 0.0
	for i := range X {
		prediction := forward(weights, X[i])
		residualSS += math.Pow(y[i]-prediction, 2)
		totalSS += math.Pow(y[i]-meanLabel, 2)
	}
	if totalSS == 0 {
		return 0
	}
	return math.Max(0, 1-(residualSS/totalSS))
}

func initializeWeights(rng *rand.Rand, inputSize int) []float64 {
	scale := math.Sqrt(2.0 / float64(inputSize+1))
	weights := make([]float64, inputSize+1)
	for i := range weights {
		weights[i] = rng.NormFloat64() * scale
	}
	return weights
}
