package dml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	godmlerrors "github.com/YuminosukeSato/godml/pkg/errors"
)

func TestBuildPLRScoreIVType(t *testing.T) {
	y := []float64{1, 2, 3, 4}
	d := []float64{2, 1, 0, -1}
	gHat := []float64{0.5, 1.5, 2.5, 3.5}
	mHat := []float64{1, 1, 1, 1}

	score, err := buildPLRScore(ScoreIVType, y, d, gHat, mHat)
	require.NoError(t, err)

	for i := range y {
		u := y[i] - gHat[i]
		v := d[i] - mHat[i]
		assert.InDelta(t, -v*d[i], score.PsiA[i], 1e-15, "psi_a at %d", i)
		assert.InDelta(t, v*u, score.PsiB[i], 1e-15, "psi_b at %d", i)
	}
}

func TestBuildPLRScorePartiallingOutMatchesOLS(t *testing.T) {
	// The partialling-out theta is the no-intercept OLS coefficient of
	// u on v: sum(v*u)/sum(v*v).
	y := []float64{3.2, -1.0, 0.5, 2.2, 4.1, -0.7}
	d := []float64{1.1, -0.4, 0.2, 0.9, 1.8, -0.2}
	gHat := []float64{1.0, -0.5, 0.0, 0.8, 2.0, -0.3}
	mHat := []float64{0.4, -0.1, 0.1, 0.3, 0.9, -0.1}

	score, err := buildPLRScore(ScorePartiallingOut, y, d, gHat, mHat)
	require.NoError(t, err)

	var num, den float64
	for i := range y {
		u := y[i] - gHat[i]
		v := d[i] - mHat[i]
		num += v * u
		den += v * v
	}
	wantTheta := num / den

	theta, err := aggregateDML2(score, 0)
	require.NoError(t, err)
	assert.InDelta(t, wantTheta, theta, 1e-12)
}

func TestBuildPLIVScore(t *testing.T) {
	y := []float64{1, 2, 3}
	z := []float64{0.5, -0.5, 1.5}
	d := []float64{2, 0, 1}
	gHat := []float64{0.9, 1.8, 3.3}
	mHat := []float64{0.2, -0.2, 1.0}
	rHat := []float64{1.5, 0.5, 0.8}

	score, err := buildPLIVScore(ScorePartiallingOut, y, z, d, gHat, mHat, rHat)
	require.NoError(t, err)

	for i := range y {
		u := y[i] - gHat[i]
		v := z[i] - mHat[i]
		w := d[i] - rHat[i]
		assert.InDelta(t, -w*v, score.PsiA[i], 1e-15, "psi_a at %d", i)
		assert.InDelta(t, v*u, score.PsiB[i], 1e-15, "psi_b at %d", i)
	}
}

func TestBuildScoreInvalidScheme(t *testing.T) {
	_, err := buildPLRScore("no-such-scheme", nil, nil, nil, nil)
	require.Error(t, err)
	var confErr *godmlerrors.ConfigurationError
	assert.True(t, godmlerrors.As(err, &confErr))

	// IV-type is PLR-only.
	_, err = buildPLIVScore(ScoreIVType, nil, nil, nil, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, godmlerrors.As(err, &confErr))
}
