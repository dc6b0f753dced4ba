package training

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// ScoreFormat is the machine-parsable score line scraped from run logs by
// external tooling. It is emitted exactly once per successful run.
const ScoreFormat = "MODEL_SCORE=%v;"

// Orchestrator drives the full training life cycle for one run: load
// parameters, load data, choose the evaluation policy, evaluate, persist the
// final model, log the score and flush the indicators. All randomized steps
// use RandomSeed so a run is reproducible from its inputs alone.
type Orchestrator struct {
	estimator Estimator
	data      DataSource
	outputDir string
	log       zerolog.Logger
}

// NewOrchestrator creates an orchestrator writing its indicator artifact to
// outputDir.
func NewOrchestrator(estimator Estimator, data DataSource, outputDir string, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		estimator: estimator,
		data:      data,
		outputDir: outputDir,
		log:       log,
	}
}

// Run executes the life cycle. On failure the error is logged once here and
// returned with its kind sentinel wrapped in; nothing downstream of the
// failed stage is written. A model persisted before a later failure is not
// rolled back.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.run(ctx); err != nil {
		o.log.Error().Err(err).Msg("training failed")
		return err
	}
	return nil
}

func (o *Orchestrator) run(ctx context.Context) error {
	o.log.Info().Msg("start training")

	params, err := o.estimator.Params()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if encoded, err := json.Marshal(params); err == nil {
		o.log.Info().Msg(string(encoded))
	}

	ds, err := o.data.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrData, err)
	}
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrData, err)
	}
	o.log.Info().Msgf("data size: %d", ds.Len())

	policy := o.estimator.ChooseEvaluation(ds.Len())
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	var (
		model Model
		score float64
		heldX [][]float64
		heldY []float64
	)
	switch policy.Method {
	case MethodCrossValidation:
		model, score, heldX, heldY, err = o.crossValidate(ctx, ds, policy, params)
	case MethodHeldOutSplit:
		model, score, heldX, heldY, err = o.holdOut(ctx, ds, policy, params)
	}
	if err != nil {
		return err
	}

	if err := o.estimator.SaveModel(model); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	ind := NewIndicatorSet()
	o.logScore(score, ind)

	if err := o.estimator.CalcIndicators(ctx, model, heldX, heldY, ind); err != nil {
		return fmt.Errorf("indicator calculation: %w", err)
	}

	if err := ind.Save(o.outputDir); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	o.log.Info().Msg("complete training")
	return nil
}

// crossValidate runs the repeated stratified k-fold loop strictly
// sequentially, aggregates the per-fold scores into their mean, then fits the
// model that will be persisted on the entire dataset. The held-out set handed
// to indicator calculation is the test partition of the last fold processed.
func (o *Orchestrator) crossValidate(ctx context.Context, ds *Dataset, policy EvaluationPolicy, params Params) (Model, float64, [][]float64, []float64, error) {
	folds, err := RepeatedStratifiedKFold(ds.Y, policy.Splits, policy.Repeats, RandomSeed)
	if err != nil {
		return nil, 0, nil, nil, fmt.Errorf("%w: %w", ErrData, err)
	}

	scores := make([]float64, 0, len(folds))
	var heldX [][]float64
	var heldY []float64
	for i, fold := range folds {
		trainX, trainY := ds.Subset(fold.TrainIdx)
		testX, testY := ds.Subset(fold.TestIdx)

		model, err := o.estimator.Fit(ctx, trainX, trainY, params)
		if err != nil {
			return nil, 0, nil, nil, fmt.Errorf("%w: fold %d: %w", ErrFit, i, err)
		}
		s, err := o.estimator.Score(ctx, model, testX, testY)
		if err != nil {
			return nil, 0, nil, nil, fmt.Errorf("%w: fold %d: %w", ErrScore, i, err)
		}
		if math.IsNaN(s) {
			return nil, 0, nil, nil, fmt.Errorf("%w: fold %d score is NaN", ErrScore, i)
		}
		scores = append(scores, s)
		heldX, heldY = testX, testY
	}
	score := stat.Mean(scores, nil)

	// Fold models are discarded; the persisted model is fit on all rows.
	model, err := o.estimator.Fit(ctx, ds.X, ds.Y, params)
	if err != nil {
		return nil, 0, nil, nil, fmt.Errorf("%w: final fit: %w", ErrFit, err)
	}
	return model, score, heldX, heldY, nil
}

// holdOut performs the single seeded split, fits on the training partition
// and scores on the held-out partition.
func (o *Orchestrator) holdOut(ctx context.Context, ds *Dataset, policy EvaluationPolicy, params Params) (Model, float64, [][]float64, []float64, error) {
	trainIdx, testIdx, err := SplitHeldOut(ds.Len(), policy.TestFraction, RandomSeed)
	if err != nil {
		return nil, 0, nil, nil, fmt.Errorf("%w: %w", ErrData, err)
	}
	trainX, trainY := ds.Subset(trainIdx)
	testX, testY := ds.Subset(testIdx)

	model, err := o.estimator.Fit(ctx, trainX, trainY, params)
	if err != nil {
		return nil, 0, nil, nil, fmt.Errorf("%w: %w", ErrFit, err)
	}
	score, err := o.estimator.Score(ctx, model, testX, testY)
	if err != nil {
		return nil, 0, nil, nil, fmt.Errorf("%w: %w", ErrScore, err)
	}
	if math.IsNaN(score) {
		return nil, 0, nil, nil, fmt.Errorf("%w: score is NaN", ErrScore)
	}
	return model, score, testX, testY, nil
}

// logScore emits the scraped score line and records the score indicator.
func (o *Orchestrator) logScore(score float64, ind *IndicatorSet) {
	o.log.Info().Msgf(ScoreFormat, score)
	ind.Set("score", score)
}
