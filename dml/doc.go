// Package dml implements double/debiased machine learning estimators for
// partially linear regression (PLR) and partially linear instrumental
// variable (PLIV) models.
//
// The estimators combine flexible nuisance-function learners with
// cross-fitting: nuisance models are trained on one fold and used to
// predict on the disjoint test fold, the out-of-fold residuals feed a
// Neyman-orthogonal score, and the structural parameter theta is solved
// from the empirical moment condition per fold (dml1) or pooled across
// folds (dml2), averaged across repeated sample splits.
//
// A minimal PLR fit:
//
//	data, err := dml.NewDataset(X, y, d)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	est, err := dml.NewPLR(linear.NewRidge(1.0), linear.NewRidge(1.0),
//	    dml.WithFolds(5),
//	    dml.WithScore(dml.ScorePartiallingOut),
//	    dml.WithSeed(42),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := est.Fit(context.Background(), data); err != nil {
//	    log.Fatal(err)
//	}
//	theta, _ := est.Coef()
package dml
