// Package tuning provides a per-fold grid-search collaborator for nuisance
// learners. The cross-fitting core never depends on this package; it only
// consumes the LearnerProvider built from a tuning result, so any other
// tuner returning per-fold parameter sets can stand in.
package tuning

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/godml/core/model"
	"github.com/YuminosukeSato/godml/dml"
	"github.com/YuminosukeSato/godml/metrics"
	"github.com/YuminosukeSato/godml/pkg/errors"
)

// ParamGrid maps a hyperparameter name to the candidate values to try.
type ParamGrid map[string][]float64

// Result holds, per outer fold, the best parameter set found and its
// cross-validated MSE.
type Result struct {
	BestParams []model.Params
	BestScores []float64
}

// GridSearch tunes a learner per outer training fold with an inner K-fold
// cross-validation, scoring candidates by mean squared error.
type GridSearch struct {
	// Grid holds the candidate hyperparameter values.
	Grid ParamGrid
	// NFolds is the number of inner cross-validation folds (default 5).
	NFolds int
	// Seed seeds the inner fold shuffling.
	Seed uint64
}

// Tune evaluates every parameter combination on each outer training fold
// and returns the per-fold winners. The prototype learner must implement
// model.ParamSetter.
func (gs *GridSearch) Tune(ctx context.Context, proto model.Learner, X mat.Matrix, target []float64, folds []dml.Fold) (*Result, error) {
	if proto == nil {
		return nil, errors.NewConfigurationError("learner", "prototype must not be nil", nil)
	}
	if _, ok := proto.(model.ParamSetter); !ok {
		return nil, errors.NewConfigurationError("learner", "prototype does not accept hyperparameters", proto)
	}
	combos := gs.combinations()
	if len(combos) == 0 {
		return nil, errors.NewConfigurationError("param_grid", "must contain at least one candidate", gs.Grid)
	}
	nFolds := gs.NFolds
	if nFolds == 0 {
		nFolds = 5
	}

	result := &Result{
		BestParams: make([]model.Params, len(folds)),
		BestScores: make([]float64, len(folds)),
	}

	for k, fold := range folds {
		trainX := subsetRows(X, fold.Train)
		trainY := subsetVec(target, fold.Train)

		inner := dml.NewKFold(nFolds, true, gs.Seed)
		innerFolds, err := inner.Split(len(fold.Train))
		if err != nil {
			return nil, err
		}

		bestScore := 0.0
		var bestParams model.Params
		for _, params := range combos {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			score, err := gs.scoreCandidate(ctx, proto, params, trainX, trainY, innerFolds)
			if err != nil {
				return nil, errors.Wrapf(err, "grid search on fold %d", k)
			}
			if bestParams == nil || score < bestScore {
				bestScore = score
				bestParams = params
			}
		}
		result.BestParams[k] = bestParams
		result.BestScores[k] = bestScore
	}
	return result, nil
}

// scoreCandidate cross-validates one parameter combination and returns its
// mean MSE over the inner folds.
func (gs *GridSearch) scoreCandidate(ctx context.Context, proto model.Learner, params model.Params, X *mat.Dense, y *mat.VecDense, folds []dml.Fold) (float64, error) {
	target := make([]float64, y.Len())
	for i := range target {
		target[i] = y.AtVec(i)
	}

	candidate := proto.Clone()
	if err := candidate.(model.ParamSetter).SetParams(params); err != nil {
		return 0, err
	}

	preds, err := dml.CrossValPredict(ctx, dml.ProviderOf(candidate), X, target, folds,
		dml.CrossFitConfig{Nuisance: "tuning", Jobs: 1})
	if err != nil {
		return 0, err
	}

	return metrics.MSE(y, mat.NewVecDense(len(preds), preds))
}

// combinations expands the grid into the cartesian product of all
// candidate values, in deterministic key order. A grid with no keys or an
// empty candidate list yields nil.
func (gs *GridSearch) combinations() []model.Params {
	if len(gs.Grid) == 0 {
		return nil
	}
	names := make([]string, 0, len(gs.Grid))
	for name := range gs.Grid {
		names = append(names, name)
	}
	sort.Strings(names)

	combos := []model.Params{{}}
	for _, name := range names {
		values := gs.Grid[name]
		if len(values) == 0 {
			return nil
		}
		next := make([]model.Params, 0, len(combos)*len(values))
		for _, combo := range combos {
			for _, value := range values {
				expanded := model.Params{}
				for k, v := range combo {
					expanded[k] = v
				}
				expanded[name] = value
				next = append(next, expanded)
			}
		}
		combos = next
	}
	return combos
}

// PerFoldProvider applies per-fold tuned parameters to clones of a
// prototype learner. It satisfies dml.LearnerProvider, which is the only
// surface the core sees.
type PerFoldProvider struct {
	Proto  model.Learner
	Params []model.Params
}

// NewPerFoldProvider builds a provider from a tuning result.
func NewPerFoldProvider(proto model.Learner, result *Result) (*PerFoldProvider, error) {
	if proto == nil {
		return nil, errors.NewConfigurationError("learner", "prototype must not be nil", nil)
	}
	if _, ok := proto.(model.ParamSetter); !ok {
		return nil, errors.NewConfigurationError("learner", "prototype does not accept hyperparameters", proto)
	}
	if result == nil || len(result.BestParams) == 0 {
		return nil, errors.NewConfigurationError("tune_result", "must contain per-fold parameters", result)
	}
	return &PerFoldProvider{Proto: proto, Params: result.BestParams}, nil
}

// LearnerFor clones the prototype and applies the fold's tuned parameters.
func (p *PerFoldProvider) LearnerFor(_, fold int) model.Learner {
	learner := p.Proto.Clone()
	if fold < len(p.Params) {
		// Params were validated when the provider was built.
		_ = learner.(model.ParamSetter).SetParams(p.Params[fold])
	}
	return learner
}

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

func subsetVec(v []float64, indices []int) *mat.VecDense {
	out := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		out.SetVec(i, v[idx])
	}
	return out
}
