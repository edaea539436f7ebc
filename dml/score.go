package dml

import (
	"github.com/YuminosukeSato/godml/pkg/errors"
)

// ScoreComponents are the per-observation pieces (psi_a, psi_b) of a linear
// Neyman-orthogonal score: the structural parameter solves
// mean(psi_a)*theta + mean(psi_b) = 0.
type ScoreComponents struct {
	PsiA []float64
	PsiB []float64
}

// validPLRScores and validPLIVScores enumerate the built-in schemes so a
// typo fails at construction, before any model is trained.
var (
	validPLRScores  = map[string]bool{ScoreIVType: true, ScorePartiallingOut: true}
	validPLIVScores = map[string]bool{ScorePartiallingOut: true}
)

// residuals computes a - b elementwise.
func residuals(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// buildPLRScore computes the built-in PLR score components from outcome,
// treatment and out-of-fold nuisance predictions.
//
// With u = y - gHat and v = d - mHat:
//
//	IV-type:  psi_a = -v*d, psi_b = v*u, so theta = mean(v*u)/mean(v*d)
//	DML2018:  psi_a = -v*v, psi_b = v*u, the partialling-out score whose
//	          solution is the no-intercept OLS coefficient of u on v
func buildPLRScore(scheme string, y, d, gHat, mHat []float64) (ScoreComponents, error) {
	if !validPLRScores[scheme] {
		return ScoreComponents{}, errors.NewConfigurationError("inf_model", "invalid PLR score scheme", scheme)
	}

	n := len(y)
	u := residuals(y, gHat)
	v := residuals(d, mHat)

	psiA := make([]float64, n)
	psiB := make([]float64, n)
	switch scheme {
	case ScoreIVType:
		for i := 0; i < n; i++ {
			psiA[i] = -v[i] * d[i]
			psiB[i] = v[i] * u[i]
		}
	case ScorePartiallingOut:
		for i := 0; i < n; i++ {
			psiA[i] = -v[i] * v[i]
			psiB[i] = v[i] * u[i]
		}
	}
	return ScoreComponents{PsiA: psiA, PsiB: psiB}, nil
}

// buildPLIVScore computes the built-in PLIV score components. With
// u = y - gHat, v = z - mHat (instrument residual) and w = d - rHat
// (treatment residual):
//
//	DML2018: psi_a = -w*v, psi_b = v*u
func buildPLIVScore(scheme string, y, z, d, gHat, mHat, rHat []float64) (ScoreComponents, error) {
	if !validPLIVScores[scheme] {
		return ScoreComponents{}, errors.NewConfigurationError("inf_model", "invalid PLIV score scheme", scheme)
	}

	n := len(y)
	u := residuals(y, gHat)
	v := residuals(z, mHat)
	w := residuals(d, rHat)

	psiA := make([]float64, n)
	psiB := make([]float64, n)
	for i := 0; i < n; i++ {
		psiA[i] = -w[i] * v[i]
		psiB[i] = v[i] * u[i]
	}
	return ScoreComponents{PsiA: psiA, PsiB: psiB}, nil
}

// checkScore validates the length invariant on custom score output.
func checkScore(psiA, psiB []float64, n int) error {
	if len(psiA) != n {
		return errors.NewDataShapeError("custom score: psi_a", n, len(psiA), 0)
	}
	if len(psiB) != n {
		return errors.NewDataShapeError("custom score: psi_b", n, len(psiB), 0)
	}
	return nil
}
