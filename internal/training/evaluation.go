package training

import "fmt"

// EvaluationMethod identifies how a trained model is evaluated.
type EvaluationMethod string

const (
	// MethodCrossValidation evaluates with repeated stratified k-fold
	// cross-validation.
	MethodCrossValidation EvaluationMethod = "cv"
	// MethodHeldOutSplit evaluates with a single random train/test split.
	MethodHeldOutSplit EvaluationMethod = "split"
)

// EvaluationPolicy is the evaluation method chosen for a run together with
// its parameters. Exactly one of the two variants is valid; construct with
// CrossValidation or HeldOutSplit.
type EvaluationPolicy struct {
	Method       EvaluationMethod
	Splits       int
	Repeats      int
	TestFraction float64
}

// CrossValidation requests splits partitions repeated repeats times.
// With repeats > 1 the whole dataset is re-partitioned each repeat.
func CrossValidation(splits, repeats int) EvaluationPolicy {
	return EvaluationPolicy{Method: MethodCrossValidation, Splits: splits, Repeats: repeats}
}

// HeldOutSplit requests a single random split holding out testFraction of
// the rows for scoring.
func HeldOutSplit(testFraction float64) EvaluationPolicy {
	return EvaluationPolicy{Method: MethodHeldOutSplit, TestFraction: testFraction}
}

// Validate rejects any policy that is not one of the two defined variants
// with in-range parameters.
func (p EvaluationPolicy) Validate() error {
	switch p.Method {
	case MethodCrossValidation:
		if p.Splits < 2 {
			return fmt.Errorf("cross-validation requires at least 2 splits, got %d", p.Splits)
		}
		if p.Repeats < 1 {
			return fmt.Errorf("cross-validation requires at least 1 repeat, got %d", p.Repeats)
		}
		return nil
	case MethodHeldOutSplit:
		if p.TestFraction <= 0 || p.TestFraction >= 1 {
			return fmt.Errorf("held-out split requires test fraction in (0, 1), got %g", p.TestFraction)
		}
		return nil
	default:
		return fmt.Errorf("unknown evaluation method %q", p.Method)
	}
}
