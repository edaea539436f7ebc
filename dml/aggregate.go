package dml

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/godml/pkg/errors"
)

// aggregateDML1 solves the moment condition per fold and averages the
// per-fold solutions:
//
//	theta_k = -mean(psi_b[test_k]) / mean(psi_a[test_k])
//
// The repetition theta is the unweighted mean of theta_k, or the
// test-size-weighted mean under SizeWeighted. A degenerate fold denominator
// aborts with a DegenerateMomentError; NaN never escapes.
func aggregateDML1(score ScoreComponents, folds []Fold, weighting FoldWeighting, repetition int) (float64, []float64, error) {
	foldThetas := make([]float64, len(folds))
	weights := make([]float64, len(folds))

	for k, fold := range folds {
		meanA := meanAt(score.PsiA, fold.Test)
		if err := errors.CheckMoment(string(DML1), meanA, repetition, k); err != nil {
			return 0, nil, err
		}
		meanB := meanAt(score.PsiB, fold.Test)
		foldThetas[k] = -meanB / meanA
		weights[k] = float64(len(fold.Test))
	}

	var theta float64
	switch weighting {
	case SizeWeighted:
		theta = stat.Mean(foldThetas, weights)
	default:
		theta = stat.Mean(foldThetas, nil)
	}
	return theta, foldThetas, nil
}

// aggregateDML2 pools the scores of all folds and solves the moment
// condition once. The test sets partition the observations, so the pooled
// means are plain means over the full score vectors.
func aggregateDML2(score ScoreComponents, repetition int) (float64, error) {
	meanA := stat.Mean(score.PsiA, nil)
	if err := errors.CheckMoment(string(DML2), meanA, repetition, -1); err != nil {
		return 0, err
	}
	meanB := stat.Mean(score.PsiB, nil)
	return -meanB / meanA, nil
}

// meanAt averages v over the given indices.
func meanAt(v []float64, indices []int) float64 {
	var sum float64
	for _, idx := range indices {
		sum += v[idx]
	}
	return sum / float64(len(indices))
}
