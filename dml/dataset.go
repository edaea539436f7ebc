package dml

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/godml/pkg/errors"
)

// Dataset is an immutable view of the observations an estimator consumes:
// covariates X, outcome y, treatment d and, for IV models, instrument z.
// Constructors copy their inputs and validate the shape invariants, so a
// Dataset that exists is safe to share across parallel fold workers.
type Dataset struct {
	x *mat.Dense
	y []float64
	d []float64
	z []float64
}

// NewDataset creates a Dataset for PLR models (no instrument).
func NewDataset(x mat.Matrix, y, d []float64) (*Dataset, error) {
	return newDataset("NewDataset", x, y, d, nil)
}

// NewIVDataset creates a Dataset for PLIV models, with instrument z.
func NewIVDataset(x mat.Matrix, y, d, z []float64) (*Dataset, error) {
	if z == nil {
		return nil, errors.NewValueError("NewIVDataset", "instrument z must not be nil")
	}
	return newDataset("NewIVDataset", x, y, d, z)
}

func newDataset(op string, x mat.Matrix, y, d, z []float64) (*Dataset, error) {
	if x == nil {
		return nil, errors.NewValueError(op, "covariate matrix X must not be nil")
	}
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, op)
	}
	if len(y) != r {
		return nil, errors.NewDataShapeError(op+": y", r, len(y), 0)
	}
	if len(d) != r {
		return nil, errors.NewDataShapeError(op+": d", r, len(d), 0)
	}
	if z != nil && len(z) != r {
		return nil, errors.NewDataShapeError(op+": z", r, len(z), 0)
	}

	ds := &Dataset{
		x: mat.DenseCopyOf(x),
		y: append([]float64(nil), y...),
		d: append([]float64(nil), d...),
	}
	if z != nil {
		ds.z = append([]float64(nil), z...)
	}

	if err := errors.CheckFinite(op+": X", ds.x.RawMatrix().Data); err != nil {
		return nil, err
	}
	if err := errors.CheckFinite(op+": y", ds.y); err != nil {
		return nil, err
	}
	if err := errors.CheckFinite(op+": d", ds.d); err != nil {
		return nil, err
	}
	if ds.z != nil {
		if err := errors.CheckFinite(op+": z", ds.z); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// N returns the number of observations.
func (ds *Dataset) N() int {
	r, _ := ds.x.Dims()
	return r
}

// Features returns the number of covariate columns.
func (ds *Dataset) Features() int {
	_, c := ds.x.Dims()
	return c
}

// X returns the covariate matrix. Callers must not mutate it.
func (ds *Dataset) X() mat.Matrix { return ds.x }

// Y returns the outcome vector. Callers must not mutate it.
func (ds *Dataset) Y() []float64 { return ds.y }

// D returns the treatment vector. Callers must not mutate it.
func (ds *Dataset) D() []float64 { return ds.d }

// Z returns the instrument vector, or nil for a PLR dataset.
func (ds *Dataset) Z() []float64 { return ds.z }

// HasInstrument reports whether the dataset carries an instrument.
func (ds *Dataset) HasInstrument() bool { return ds.z != nil }
