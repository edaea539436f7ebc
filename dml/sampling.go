package dml

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/godml/pkg/errors"
)

// Fold is one train/test pair of observation indices.
type Fold struct {
	Train []int
	Test  []int
}

// KFold partitions {0,...,n-1} into NSplits folds. Per partition, the test
// sets are disjoint and cover every index exactly once.
type KFold struct {
	NSplits int
	Shuffle bool
	// Seed seeds the shuffle PCG. Zero means unseeded: every Split draws
	// a fresh seed from the global source.
	Seed uint64
}

// NewKFold creates a KFold splitter.
func NewKFold(nSplits int, shuffle bool, seed uint64) *KFold {
	return &KFold{NSplits: nSplits, Shuffle: shuffle, Seed: seed}
}

// Split generates the train/test indices for each fold of one partition of
// n observations.
func (kf *KFold) Split(n int) ([]Fold, error) {
	if err := kf.validate(n); err != nil {
		return nil, err
	}
	rng := kf.newRNG()
	return kf.split(n, rng), nil
}

func (kf *KFold) validate(n int) error {
	if kf.NSplits < 2 {
		return errors.NewConfigurationError("n_folds", "must be at least 2", kf.NSplits)
	}
	if kf.NSplits > n {
		return errors.NewConfigurationError("n_folds", "must not exceed the number of observations", kf.NSplits)
	}
	return nil
}

func (kf *KFold) newRNG() *rand.Rand {
	seed := kf.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// split carves one partition out of the supplied RNG stream.
func (kf *KFold) split(n int, rng *rand.Rand) []Fold {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		rng.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := n / kf.NSplits
	remainder := n % kf.NSplits

	isTest := make([]bool, n)
	current := 0
	for k := 0; k < kf.NSplits; k++ {
		testSize := foldSize
		if k < remainder {
			testSize++
		}

		test := make([]int, testSize)
		copy(test, indices[current:current+testSize])
		for _, idx := range test {
			isTest[idx] = true
		}

		train := make([]int, 0, n-testSize)
		for i := 0; i < n; i++ {
			if !isTest[i] {
				train = append(train, i)
			}
		}
		for _, idx := range test {
			isTest[idx] = false
		}

		folds[k] = Fold{Train: train, Test: test}
		current += testSize
	}
	return folds
}

// RepeatedKFold draws NRepeats independent K-fold partitions. All
// repetitions are carved from one seeded PCG stream, so a fixed seed
// reproduces the full sequence of partitions.
type RepeatedKFold struct {
	KFold
	NRepeats int
}

// NewRepeatedKFold creates a RepeatedKFold splitter.
func NewRepeatedKFold(nSplits, nRepeats int, shuffle bool, seed uint64) *RepeatedKFold {
	return &RepeatedKFold{
		KFold:    KFold{NSplits: nSplits, Shuffle: shuffle, Seed: seed},
		NRepeats: nRepeats,
	}
}

// Split generates one partition per repetition.
func (rkf *RepeatedKFold) Split(n int) ([][]Fold, error) {
	if rkf.NRepeats < 1 {
		return nil, errors.NewConfigurationError("n_rep", "must be at least 1", rkf.NRepeats)
	}
	if err := rkf.validate(n); err != nil {
		return nil, err
	}

	rng := rkf.newRNG()
	splits := make([][]Fold, rkf.NRepeats)
	for rep := 0; rep < rkf.NRepeats; rep++ {
		splits[rep] = rkf.split(n, rng)
	}
	return splits, nil
}

// copySplits deep-copies a sample split so callers cannot mutate the
// original through the returned folds.
func copySplits(splits [][]Fold) [][]Fold {
	out := make([][]Fold, len(splits))
	for rep, folds := range splits {
		out[rep] = make([]Fold, len(folds))
		for k, fold := range folds {
			out[rep][k] = Fold{
				Train: append([]int(nil), fold.Train...),
				Test:  append([]int(nil), fold.Test...),
			}
		}
	}
	return out
}

// validateSplits checks an externally supplied sample split against the
// partition invariants: per repetition, test sets are disjoint, cover all n
// indices exactly once, and never intersect their own training set.
func validateSplits(splits [][]Fold, n int) error {
	if len(splits) == 0 {
		return errors.NewConfigurationError("sample_splits", "must contain at least one repetition", len(splits))
	}
	for rep, folds := range splits {
		if len(folds) < 2 {
			return errors.NewConfigurationError("sample_splits", "each repetition needs at least 2 folds", len(folds))
		}
		seen := make([]int, n)
		for k, fold := range folds {
			inTrain := make(map[int]bool, len(fold.Train))
			for _, idx := range fold.Train {
				if idx < 0 || idx >= n {
					return errors.NewConfigurationError("sample_splits", "train index out of range", idx)
				}
				inTrain[idx] = true
			}
			for _, idx := range fold.Test {
				if idx < 0 || idx >= n {
					return errors.NewConfigurationError("sample_splits", "test index out of range", idx)
				}
				if inTrain[idx] {
					return errors.Newf("godml: sample_splits: index %d is in both train and test of repetition %d, fold %d", idx, rep, k)
				}
				seen[idx]++
			}
		}
		for idx, count := range seen {
			if count != 1 {
				return errors.Newf("godml: sample_splits: index %d appears %d times across test sets of repetition %d, want exactly 1", idx, count, rep)
			}
		}
	}
	return nil
}
