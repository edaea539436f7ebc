package errors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "configuration",
			err:  NewConfigurationError("n_folds", "must be at least 2", 1),
			want: "godml: invalid configuration for 'n_folds': must be at least 2 (got: 1)",
		},
		{
			name: "shape rows",
			err:  NewDataShapeError("NewDataset", 100, 99, 0),
			want: "godml: NewDataset: shape mismatch on axis 0 (rows). Expected 100, got 99",
		},
		{
			name: "shape features",
			err:  NewDataShapeError("Predict", 5, 4, 1),
			want: "godml: Predict: shape mismatch on axis 1 (features). Expected 5, got 4",
		},
		{
			name: "nuisance",
			err:  NewNuisanceFitError("ml_g", 0, 2, New("boom")),
			want: "godml: nuisance 'ml_g' failed on repetition 0, fold 2: boom",
		},
		{
			name: "degenerate fold",
			err:  NewDegenerateMomentError("dml1", 1, 3, 0),
			want: "godml: dml1: degenerate moment condition on repetition 1, fold 3: mean(psi_a) = 0",
		},
		{
			name: "degenerate pooled",
			err:  NewDegenerateMomentError("dml2", 0, -1, 0),
			want: "godml: dml2: degenerate moment condition on repetition 0: mean(psi_a) = 0",
		},
		{
			name: "not fitted",
			err:  NewNotFittedError("PLR", "Coef"),
			want: "godml: PLR: this estimator is not fitted yet. Call Fit() before using Coef()",
		},
		{
			name: "value",
			err:  NewValueError("MSE", "length must be positive"),
			want: "godml: MSE: length must be positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAsUnwrapsStackedErrors(t *testing.T) {
	err := Wrap(NewConfigurationError("score", "unknown scheme", "bogus"), "NewPLR")

	var cfgErr *ConfigurationError
	require.True(t, As(err, &cfgErr))
	assert.Equal(t, "score", cfgErr.Param)
	assert.Equal(t, "bogus", cfgErr.Value)
}

func TestNuisanceFitErrorUnwrap(t *testing.T) {
	cause := NewValueError("Ridge.Fit", "alpha must be non-negative")
	err := NewNuisanceFitError("ml_m", 2, 0, cause)

	var valErr *ValueError
	require.True(t, As(err, &valErr))
	assert.Equal(t, "Ridge.Fit", valErr.Op)

	var fitErr *NuisanceFitError
	require.True(t, As(err, &fitErr))
	assert.Equal(t, "ml_m", fitErr.Nuisance)
	assert.Equal(t, 2, fitErr.Repetition)
	assert.Equal(t, 0, fitErr.Fold)
}

func TestCheckMoment(t *testing.T) {
	tests := []struct {
		name        string
		denominator float64
		wantErr     bool
	}{
		{"healthy", -1.5, false},
		{"just above tolerance", 1e-9, false},
		{"zero", 0, true},
		{"below tolerance", 1e-13, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMoment("dml1", tt.denominator, 0, 1)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var momErr *DegenerateMomentError
			require.True(t, As(err, &momErr))
			assert.Equal(t, "dml1", momErr.Procedure)
			assert.Equal(t, 1, momErr.Fold)
		})
	}
}

func TestCheckFinite(t *testing.T) {
	assert.NoError(t, CheckFinite("NewDataset", []float64{1, -2, 0}))
	assert.NoError(t, CheckFinite("NewDataset", nil))

	err := CheckFinite("NewDataset", []float64{1, math.NaN(), 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")

	err = CheckFinite("NewDataset", []float64{math.Inf(-1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 0")
}

func TestRecoverConvertsPanic(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "PLR.Fit")
		panic("learner exploded")
	}

	err := fn()
	require.Error(t, err)

	var panicErr *PanicError
	require.True(t, As(err, &panicErr))
	assert.Equal(t, "PLR.Fit", panicErr.Operation)
	assert.Equal(t, "learner exploded", panicErr.PanicValue)
	assert.NotEmpty(t, panicErr.StackTrace)
}

func TestRecoverNoPanicLeavesErrorAlone(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "PLR.Fit")
		return New("ordinary failure")
	}
	assert.EqualError(t, fn(), "ordinary failure")
}
