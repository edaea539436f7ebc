// Package godml provides double/debiased machine learning estimators for
// causal parameters in partially linear models.
//
// The library combines flexible machine-learning nuisance estimation with
// cross-fitting to produce root-N-consistent estimates of a low-dimensional
// structural parameter, avoiding the regularization bias of naive plug-in
// estimators.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/godml/dml"
//	    "github.com/YuminosukeSato/godml/linear"
//	)
//
//	func main() {
//	    data := dml.MakePLRData(500, 10, 0.5, 42)
//
//	    est, err := dml.NewPLR(linear.NewRidge(1.0), linear.NewRidge(1.0),
//	        dml.WithFolds(5),
//	        dml.WithSeed(42),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := est.Fit(context.Background(), data); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    theta, _ := est.Coef()
//	    fmt.Println("theta:", theta)
//	}
//
// # Packages
//
//   - dml: cross-fitting core and the PLR / PLIV estimator façades
//   - linear: baseline nuisance learners (OLS, ridge, mean predictor)
//   - tuning: per-fold grid-search collaborator
//   - preprocessing: covariate standardization
//   - metrics: regression metrics
//   - core/model, core/parallel, pkg/errors, pkg/log: shared infrastructure
package godml
