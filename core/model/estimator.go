// Package model defines the capability interfaces the cross-fitting core
// consumes and the shared estimator state machinery.
package model

import "gonum.org/v1/gonum/mat"

// Learner is the pluggable regression capability used to estimate nuisance
// functions. The cross-fitting core trains a fresh Clone per fold, so a
// Learner implementation never sees data from more than one training fold.
type Learner interface {
	// Fit trains the learner on a feature matrix and a target vector.
	Fit(X mat.Matrix, y *mat.VecDense) error

	// Predict returns one prediction per row of X.
	Predict(X mat.Matrix) (*mat.VecDense, error)

	// Clone returns an unfitted copy with the same hyperparameters.
	Clone() Learner
}

// Params is a flat hyperparameter assignment, keyed by parameter name.
type Params map[string]float64

// ParamSetter is implemented by learners whose hyperparameters can be set
// from a tuning result.
type ParamSetter interface {
	SetParams(params Params) error
}
