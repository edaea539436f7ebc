package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/godml/core/model"
	"github.com/YuminosukeSato/godml/pkg/errors"
)

// Ridge is L2-regularized least squares. The intercept is not penalized.
type Ridge struct {
	Regression

	// Alpha is the L2 penalty strength. Zero reduces to OLS.
	Alpha float64
}

// NewRidge creates a ridge learner with the given penalty.
func NewRidge(alpha float64, opts ...Option) *Ridge {
	rr := &Ridge{Alpha: alpha}
	rr.fitIntercept = true
	for _, opt := range opts {
		opt(&rr.Regression)
	}
	return rr
}

// Fit learns weights from X and y with the configured penalty.
func (rr *Ridge) Fit(X mat.Matrix, y *mat.VecDense) error {
	if rr.Alpha < 0 {
		return errors.NewValueError("Ridge.Fit", "alpha must be non-negative")
	}
	return rr.fit(X, y, rr.Alpha)
}

// Predict returns X*w + intercept for each row.
func (rr *Ridge) Predict(X mat.Matrix) (*mat.VecDense, error) {
	return rr.predict(X, "Ridge.Predict")
}

// Clone returns an unfitted copy with the same hyperparameters.
func (rr *Ridge) Clone() model.Learner {
	clone := &Ridge{Alpha: rr.Alpha}
	clone.fitIntercept = rr.fitIntercept
	return clone
}

// SetParams accepts the "alpha" hyperparameter, making Ridge tunable by the
// grid-search collaborator.
func (rr *Ridge) SetParams(params model.Params) error {
	for name, value := range params {
		switch name {
		case "alpha":
			if value < 0 {
				return errors.NewValueError("Ridge.SetParams", "alpha must be non-negative")
			}
			rr.Alpha = value
		default:
			return errors.NewValueError("Ridge.SetParams", "unknown parameter '"+name+"'")
		}
	}
	return nil
}
