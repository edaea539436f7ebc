package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/godml/core/model"
	"github.com/YuminosukeSato/godml/pkg/errors"
)

// MeanPredictor predicts the mean of the training target for every input
// row, ignoring the covariates. It is the simplest deterministic capability
// and doubles as a reference learner when validating cross-fitting by hand.
type MeanPredictor struct {
	model.BaseEstimator

	mean float64
}

// NewMeanPredictor creates a MeanPredictor.
func NewMeanPredictor() *MeanPredictor {
	return &MeanPredictor{}
}

// Fit stores the mean of y.
func (m *MeanPredictor) Fit(_ mat.Matrix, y *mat.VecDense) error {
	n := y.Len()
	if n == 0 {
		return errors.Wrap(errors.ErrEmptyData, "MeanPredictor.Fit")
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += y.AtVec(i)
	}
	m.mean = sum / float64(n)
	m.SetFitted()
	return nil
}

// Predict returns the stored training mean for every row of X.
func (m *MeanPredictor) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MeanPredictor", "Predict")
	}
	r, _ := X.Dims()
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		out.SetVec(i, m.mean)
	}
	return out, nil
}

// Clone returns an unfitted copy.
func (m *MeanPredictor) Clone() model.Learner {
	return &MeanPredictor{}
}
