package training

import "context"

// Model is an opaque trained-model handle. The orchestrator never inspects
// it; it only flows into Score, CalcIndicators and SaveModel.
type Model interface{}

// Params holds the hyperparameters for one run, loaded once and read-only
// thereafter.
type Params map[string]interface{}

// DataSource yields the feature matrix and label vector for a run.
type DataSource interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Estimator is the capability set a concrete model type must supply. The
// orchestrator drives the full training life cycle through this interface
// and treats every operation as a black box: no retries, no validation of
// numeric output, and any error or NaN fails the run.
type Estimator interface {
	// ChooseEvaluation picks the evaluation policy for a dataset of
	// rowCount rows. It is called exactly once per run; a policy that is
	// neither valid variant aborts the run before any fitting.
	ChooseEvaluation(rowCount int) EvaluationPolicy

	// Params loads the hyperparameters for the run.
	Params() (Params, error)

	// Fit trains a model on the given rows and returns its handle.
	Fit(ctx context.Context, X [][]float64, y []float64, params Params) (Model, error)

	// Score evaluates a trained model against held-out rows and returns a
	// single scalar score.
	Score(ctx context.Context, model Model, X [][]float64, y []float64) (float64, error)

	// CalcIndicators computes additional evaluation indicators for a
	// trained model against held-out rows and records them in ind.
	CalcIndicators(ctx context.Context, model Model, X [][]float64, y []float64, ind *IndicatorSet) error

	// SaveModel persists a trained model to the estimator's output
	// location, in a format of the estimator's choosing.
	SaveModel(model Model) error
}
