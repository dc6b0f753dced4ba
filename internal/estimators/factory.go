package estimators

import (
	"fmt"

	"github.com/mlforge/tabtrain/internal/config"
	"github.com/mlforge/tabtrain/internal/training"
)

// New creates an estimator based on model type. The parameter file at
// paramPath supplies the hyperparameters; trained models are written to
// outputDir.
func New(modelType, paramPath, outputDir string) (training.Estimator, error) {
	switch modelType {
	case "linear_regression":
		return NewLinearRegression(paramPath, outputDir), nil
	case "logistic_regression":
		return NewLogisticRegression(paramPath, outputDir), nil
	default:
		return nil, fmt.Errorf("unsupported model type: %s", modelType)
	}
}

// base carries what every concrete estimator shares: the parameter file
// location and the model output directory.
type base struct {
	paramPath string
	outputDir string
}

// Params loads the hyperparameter set from the parameter file.
func (b base) Params() (training.Params, error) {
	return config.LoadParams(b.paramPath)
}

// ChooseEvaluation picks by data volume: small datasets get repeated
// cross-validation to squeeze more signal out of few rows, larger ones a
// single held-out split.
func (b base) ChooseEvaluation(rowCount int) training.EvaluationPolicy {
	if rowCount < 1000 {
		return training.CrossValidation(5, 2)
	}
	return training.HeldOutSplit(0.2)
}

// floatParam reads a numeric hyperparameter, falling back to def when the
// key is absent. JSON numbers decode as float64; ints are accepted too.
func floatParam(params training.Params, key string, def float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}
