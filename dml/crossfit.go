package dml

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/godml/core/model"
	"github.com/YuminosukeSato/godml/core/parallel"
	"github.com/YuminosukeSato/godml/pkg/errors"
)

// LearnerProvider hands out the learner to train for a given repetition and
// fold. It is how per-fold tuned hyperparameters enter the core: the core
// only sees ready-to-fit capabilities, never the tuner.
type LearnerProvider interface {
	LearnerFor(repetition, fold int) model.Learner
}

// cloneProvider satisfies LearnerProvider by cloning one prototype, giving
// every fold a fresh, identically configured learner.
type cloneProvider struct {
	proto model.Learner
}

func (p cloneProvider) LearnerFor(int, int) model.Learner {
	return p.proto.Clone()
}

// ProviderOf wraps a single prototype learner into a LearnerProvider.
func ProviderOf(learner model.Learner) LearnerProvider {
	return cloneProvider{proto: learner}
}

// CrossFitConfig carries the context CrossValPredict needs to annotate
// failures and size its worker pool.
type CrossFitConfig struct {
	// Nuisance names the nuisance function, e.g. "ml_g".
	Nuisance string
	// Repetition is the sample-splitting repetition index.
	Repetition int
	// Jobs is the number of parallel fold workers; <= 1 is sequential.
	Jobs int
}

// CrossValPredict fills a length-n vector of out-of-fold predictions for
// one nuisance function: per fold, a fresh learner from the provider is
// trained on the train subset and its predictions for the test subset are
// scattered into the output. No prediction ever depends on the
// observation's own target value.
//
// Learner errors abort the whole call and surface as a NuisanceFitError
// naming the fold; with parallel workers the lowest failing fold index
// wins.
func CrossValPredict(ctx context.Context, provider LearnerProvider, X mat.Matrix, target []float64, folds []Fold, cfg CrossFitConfig) ([]float64, error) {
	n, _ := X.Dims()
	if len(target) != n {
		return nil, errors.NewDataShapeError("CrossValPredict", n, len(target), 0)
	}

	// Folds write to disjoint test indices, so the output needs no lock.
	out := make([]float64, n)

	task := func(_ context.Context, k int) error {
		fold := folds[k]
		learner := provider.LearnerFor(cfg.Repetition, k)

		trainX := subsetRows(X, fold.Train)
		trainY := subsetVec(target, fold.Train)
		if err := learner.Fit(trainX, trainY); err != nil {
			return errors.NewNuisanceFitError(cfg.Nuisance, cfg.Repetition, k, err)
		}

		testX := subsetRows(X, fold.Test)
		preds, err := learner.Predict(testX)
		if err != nil {
			return errors.NewNuisanceFitError(cfg.Nuisance, cfg.Repetition, k, err)
		}
		if preds.Len() != len(fold.Test) {
			return errors.NewNuisanceFitError(cfg.Nuisance, cfg.Repetition, k,
				errors.NewDataShapeError("predict", len(fold.Test), preds.Len(), 0))
		}

		for i, idx := range fold.Test {
			out[idx] = preds.AtVec(i)
		}
		return nil
	}

	if err := parallel.RunTasks(ctx, cfg.Jobs, len(folds), task); err != nil {
		return nil, err
	}
	return out, nil
}

// subsetRows gathers the given rows of X into a new dense matrix.
func subsetRows(X mat.Matrix, indices []int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(len(indices), c, nil)
	for i, idx := range indices {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(idx, j))
		}
	}
	return out
}

// subsetVec gathers the given entries of v into a new vector.
func subsetVec(v []float64, indices []int) *mat.VecDense {
	out := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		out.SetVec(i, v[idx])
	}
	return out
}
