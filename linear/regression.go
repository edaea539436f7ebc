// Package linear provides linear regression learners that satisfy the
// model.Learner capability consumed by the cross-fitting core. They serve
// as deterministic nuisance learners and as the reference capability in
// tests; any external learner with the same capability can replace them.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/godml/core/model"
	"github.com/YuminosukeSato/godml/core/parallel"
	"github.com/YuminosukeSato/godml/pkg/errors"
)

// Regression is ordinary least squares, solved through the normal
// equations with a Cholesky factorization.
type Regression struct {
	model.BaseEstimator

	weights      *mat.VecDense
	intercept    float64
	nFeatures    int
	fitIntercept bool
}

// NewRegression creates an OLS learner.
func NewRegression(opts ...Option) *Regression {
	lr := &Regression{fitIntercept: true}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit learns weights from X and y.
func (lr *Regression) Fit(X mat.Matrix, y *mat.VecDense) error {
	return lr.fit(X, y, 0)
}

// Clone returns an unfitted copy with the same options.
func (lr *Regression) Clone() model.Learner {
	return &Regression{fitIntercept: lr.fitIntercept}
}

// Predict returns X*w + intercept for each row.
func (lr *Regression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	return lr.predict(X, "Regression.Predict")
}

// Weights returns the fitted coefficients, excluding the intercept.
func (lr *Regression) Weights() []float64 {
	if lr.weights == nil {
		return nil
	}
	out := make([]float64, lr.weights.Len())
	copy(out, lr.weights.RawVector().Data)
	return out
}

// Intercept returns the fitted intercept.
func (lr *Regression) Intercept() float64 {
	return lr.intercept
}

// fit solves (X'X + alpha*I) w = X'y on the (optionally) intercept-augmented
// design matrix. The intercept column is never penalized.
func (lr *Regression) fit(X mat.Matrix, y *mat.VecDense, alpha float64) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "linear.fit")
	}
	if y.Len() != r {
		return errors.NewDataShapeError("linear.fit", r, y.Len(), 0)
	}

	lr.nFeatures = c

	cols := c
	if lr.fitIntercept {
		cols++
	}
	design := mat.NewDense(r, cols, nil)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			off := 0
			if lr.fitIntercept {
				design.Set(i, 0, 1.0)
				off = 1
			}
			for j := 0; j < c; j++ {
				design.Set(i, off+j, X.At(i, j))
			}
		}
	})

	// Normal equations: gram = D'D (+ alpha on non-intercept diagonal).
	gram := mat.NewSymDense(cols, nil)
	for i := 0; i < cols; i++ {
		for j := i; j < cols; j++ {
			var sum float64
			for k := 0; k < r; k++ {
				sum += design.At(k, i) * design.At(k, j)
			}
			gram.SetSym(i, j, sum)
		}
	}
	if alpha > 0 {
		start := 0
		if lr.fitIntercept {
			start = 1
		}
		for i := start; i < cols; i++ {
			gram.SetSym(i, i, gram.At(i, i)+alpha)
		}
	}

	rhs := mat.NewVecDense(cols, nil)
	rhs.MulVec(design.T(), y)

	var chol mat.Cholesky
	if !chol.Factorize(gram) {
		return errors.Wrap(errors.ErrSingularMatrix, "linear.fit")
	}
	sol := mat.NewVecDense(cols, nil)
	if err := chol.SolveVecTo(sol, rhs); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, "linear.fit")
	}

	if lr.fitIntercept {
		lr.intercept = sol.AtVec(0)
		lr.weights = mat.NewVecDense(c, nil)
		for j := 0; j < c; j++ {
			lr.weights.SetVec(j, sol.AtVec(j+1))
		}
	} else {
		lr.intercept = 0
		lr.weights = sol
	}

	lr.SetFitted()
	return nil
}

func (lr *Regression) predict(X mat.Matrix, op string) (*mat.VecDense, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("linear.Regression", "Predict")
	}
	r, c := X.Dims()
	if c != lr.nFeatures {
		return nil, errors.NewDataShapeError(op, lr.nFeatures, c, 1)
	}

	out := mat.NewVecDense(r, nil)
	out.MulVec(X, lr.weights)
	if lr.fitIntercept {
		for i := 0; i < r; i++ {
			out.SetVec(i, out.AtVec(i)+lr.intercept)
		}
	}
	return out, nil
}
