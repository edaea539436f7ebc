package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/godml/pkg/errors"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
		want  float64
	}{
		{"perfect", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"constant offset", []float64{1, 2, 3}, []float64{2, 3, 4}, 1},
		{"mixed", []float64{3, -0.5, 2, 7}, []float64{2.5, 0, 2, 8}, 0.375},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(vec(tt.yTrue), vec(tt.yPred))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestRMSE(t *testing.T) {
	got, err := RMSE(vec([]float64{0, 0, 0, 0}), vec([]float64{2, 2, 2, 2}))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-12)
}

func TestMAE(t *testing.T) {
	got, err := MAE(vec([]float64{3, -0.5, 2, 7}), vec([]float64{2.5, 0, 2, 8}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
		want  float64
	}{
		{"perfect", []float64{1, 2, 3, 4}, []float64{1, 2, 3, 4}, 1},
		{"known", []float64{3, -0.5, 2, 7}, []float64{2.5, 0, 2, 8}, 0.9486081370449679},
		{"constant truth perfect", []float64{2, 2, 2}, []float64{2, 2, 2}, 1},
		{"constant truth imperfect", []float64{2, 2, 2}, []float64{1, 2, 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(vec(tt.yTrue), vec(tt.yPred))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestLengthMismatch(t *testing.T) {
	yTrue := vec([]float64{1, 2, 3})
	yPred := vec([]float64{1, 2})

	for _, fn := range []func(a, b *mat.VecDense) (float64, error){MSE, RMSE, MAE, R2Score} {
		_, err := fn(yTrue, yPred)
		require.Error(t, err)
		var shapeErr *errors.DataShapeError
		assert.True(t, errors.As(err, &shapeErr))
	}
}

func vec(v []float64) *mat.VecDense {
	return mat.NewVecDense(len(v), v)
}
