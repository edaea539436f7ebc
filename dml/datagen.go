package dml

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// MakePLRData generates a synthetic partially linear regression dataset
// with known structural parameter theta:
//
//	d = m0(X*b) + v,            v ~ N(0,1)
//	y = theta*d + g0(X*b) + e,  e ~ N(0,1)
//
// with g0(s) = sin(s)^2 and m0(s) = 0.5*sinh(1)/(cosh(1)-cos(s)) / pi, the
// nonlinearities of the classic PLR simulation design. b_j = 1/(j+1).
func MakePLRData(n, p int, theta float64, seed uint64) *Dataset {
	rng := rand.New(rand.NewPCG(seed, seed))

	x := mat.NewDense(n, p, nil)
	y := make([]float64, n)
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j < p; j++ {
			v := rng.NormFloat64()
			x.Set(i, j, v)
			s += v / float64(j+1)
		}
		d[i] = plrM0(s) + rng.NormFloat64()
		y[i] = theta*d[i] + plrG0(s) + rng.NormFloat64()
	}

	ds, err := NewDataset(x, y, d)
	if err != nil {
		// The generator controls its own shapes; a failure here is a bug.
		panic(err)
	}
	return ds
}

// MakePLIVData generates a synthetic partially linear IV dataset with known
// theta. The instrument shifts the treatment but enters the outcome only
// through it:
//
//	z = m0(X*b) + v,                   v ~ N(0,1)
//	d = gamma*z + r0(X*b) + u,         u ~ N(0,1)
//	y = theta*d + g0(X*b) + e,         e ~ N(0,1)
func MakePLIVData(n, p int, theta float64, seed uint64) *Dataset {
	const gamma = 0.8

	rng := rand.New(rand.NewPCG(seed, seed))

	x := mat.NewDense(n, p, nil)
	y := make([]float64, n)
	d := make([]float64, n)
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j < p; j++ {
			v := rng.NormFloat64()
			x.Set(i, j, v)
			s += v / float64(j+1)
		}
		z[i] = plrM0(s) + rng.NormFloat64()
		d[i] = gamma*z[i] + math.Cos(s) + rng.NormFloat64()
		y[i] = theta*d[i] + plrG0(s) + rng.NormFloat64()
	}

	ds, err := NewIVDataset(x, y, d, z)
	if err != nil {
		panic(err)
	}
	return ds
}

func plrG0(s float64) float64 {
	sin := math.Sin(s)
	return sin * sin
}

func plrM0(s float64) float64 {
	return 0.5 / math.Pi * math.Sinh(1) / (math.Cosh(1) - math.Cos(s))
}
