package training

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// RandomSeed is the fixed seed for every randomized operation in a run.
// Identical inputs always reproduce identical partitions.
const RandomSeed int64 = 592

// Fold is one train/test partition of the row indices [0, N).
type Fold struct {
	TrainIdx []int
	TestIdx  []int
}

// RepeatedStratifiedKFold partitions the rows into splits folds, repeated
// repeats times, preserving the label distribution within each fold. A single
// RNG seeded once drives all repeats, so the fold sequence is a pure function
// of (y, splits, repeats, seed).
func RepeatedStratifiedKFold(y []float64, splits, repeats int, seed int64) ([]Fold, error) {
	if splits < 2 {
		return nil, fmt.Errorf("need at least 2 splits, got %d", splits)
	}
	if repeats < 1 {
		return nil, fmt.Errorf("need at least 1 repeat, got %d", repeats)
	}

	// Group row indices by label, keeping first-seen class order so the
	// result does not depend on map iteration order.
	byClass := make(map[float64][]int)
	var classes []float64
	for i, label := range y {
		if _, ok := byClass[label]; !ok {
			classes = append(classes, label)
		}
		byClass[label] = append(byClass[label], i)
	}
	for _, c := range classes {
		if len(byClass[c]) < splits {
			return nil, fmt.Errorf("class %g has %d members, fewer than %d splits", c, len(byClass[c]), splits)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	folds := make([]Fold, 0, splits*repeats)
	for r := 0; r < repeats; r++ {
		// Shuffle each class independently and deal its members
		// round-robin across the folds.
		testSets := make([][]int, splits)
		for _, c := range classes {
			idx := append([]int(nil), byClass[c]...)
			rng.Shuffle(len(idx), func(i, j int) {
				idx[i], idx[j] = idx[j], idx[i]
			})
			for i, row := range idx {
				testSets[i%splits] = append(testSets[i%splits], row)
			}
		}
		for f := 0; f < splits; f++ {
			test := testSets[f]
			sort.Ints(test)
			inTest := make([]bool, len(y))
			for _, row := range test {
				inTest[row] = true
			}
			train := make([]int, 0, len(y)-len(test))
			for row := range y {
				if !inTest[row] {
					train = append(train, row)
				}
			}
			folds = append(folds, Fold{TrainIdx: train, TestIdx: test})
		}
	}
	return folds, nil
}

// SplitHeldOut partitions [0, n) into a training set and a held-out test set
// of ceil(fraction*n) rows via a single seeded shuffle.
func SplitHeldOut(n int, fraction float64, seed int64) (trainIdx, testIdx []int, err error) {
	if fraction <= 0 || fraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in (0, 1), got %g", fraction)
	}
	testCount := int(math.Ceil(fraction * float64(n)))
	if testCount == 0 || testCount >= n {
		return nil, nil, fmt.Errorf("test fraction %g leaves no rows to train or score with %d rows", fraction, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testIdx = append([]int(nil), perm[:testCount]...)
	trainIdx = append([]int(nil), perm[testCount:]...)
	sort.Ints(testIdx)
	sort.Ints(trainIdx)
	return trainIdx, testIdx, nil
}
